// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/model"
	"github.com/jeranaias/chatti/internal/ollama"
	"github.com/jeranaias/chatti/internal/ui/components"
	"github.com/jeranaias/chatti/internal/ui/styles"
)

// ResponseCache is the slice of the storage layer the chat screen touches.
// A nil cache disables lookups and stores.
type ResponseCache interface {
	Get(modelName string, temperature float64, prompt string) (string, bool)
	Put(modelName string, temperature float64, prompt, response string) error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen. It is the single
// writer of the conversation state; everything the network produces comes
// in as messages through Update.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	cfg    *config.Config
	client *ollama.Client
	cache  ResponseCache

	conv *model.Conversation

	spin    *components.Spinner
	scroll  *components.ScrollBar
	hscroll *components.HScrollBar
	vp      viewport.Model

	// The prompt under composition. Runes append at the end only; Left and
	// Right slide the visible window, they do not move an insertion point.
	input       []rune
	inputScroll int

	width  int
	height int

	showHelp bool

	// In-flight turn bookkeeping. turnID stamps every message the turn
	// produces so stale ones can be recognized and dropped.
	turnID        string
	stream        <-chan ollama.StreamChunk
	cancelMgr     *cancelManager
	pendingPrompt string
	fromCache     bool

	// First transcript row visible in the message pane.
	lineOffset int
}

// New creates the chat screen. The cache may be nil.
func New(theme *styles.Theme, cfg *config.Config, client *ollama.Client, cache ResponseCache) Model {
	return Model{
		theme:     theme,
		keys:      DefaultKeyMap(),
		cfg:       cfg,
		client:    client,
		cache:     cache,
		conv:      model.NewConversation(),
		spin:      components.NewSpinner(),
		scroll:    components.NewScrollBar(theme),
		hscroll:   components.NewHScrollBar(theme),
		vp:        viewport.New(80, 20),
		cancelMgr: newCancelManager(),
	}
}

// Init implements tea.Model. The first window size message drives the
// initial layout, so nothing needs to run up front.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// VIEWPORT SYNC
// =============================================================================

// syncViewport rebuilds the transcript rows and scrolls the pane so the
// selected message stays visible. Called after every conversation mutation
// and on resize.
func (m *Model) syncViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	lines, selStart, selEnd := m.transcriptLines()

	h := m.vp.Height
	if selStart >= 0 && h > 0 {
		if selStart < m.lineOffset {
			m.lineOffset = selStart
		}
		if selEnd >= m.lineOffset+h {
			m.lineOffset = selEnd - h + 1
		}
	}
	maxOffset := len(lines) - h
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.lineOffset > maxOffset {
		m.lineOffset = maxOffset
	}
	if m.lineOffset < 0 {
		m.lineOffset = 0
	}

	m.vp.SetContent(strings.Join(lines, "\n"))
	m.vp.SetYOffset(m.lineOffset)
}
