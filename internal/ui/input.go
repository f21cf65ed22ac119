// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatti/internal/model"
)

// =============================================================================
// KEY DISPATCH
// =============================================================================

// handleKey routes a key press to the handler for the current mode.
// Unrecognized keys are no-ops in every mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.conv.Mode() {
	case model.ModeEditing:
		return m.handleEditingKey(msg)
	case model.ModeWaiting:
		return m.handleWaitingKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

// =============================================================================
// NORMAL MODE
// =============================================================================

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.conv.BeginEditing()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.conv.ScrollUp()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.conv.ScrollDown()
		m.syncViewport()
		return m, nil
	}
	return m, nil
}

// =============================================================================
// EDITING MODE
// =============================================================================

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.StopEditing):
		m.conv.StopEditing()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.submitInput()

	case key.Matches(msg, m.keys.Left):
		m.inputScroll--
		m.clampInputScroll()
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.inputScroll++
		m.clampInputScroll()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		m.followInputTail()
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		m.followInputTail()
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
		m.followInputTail()
	}
	return m, nil
}

// submitInput drains the compose buffer into a new turn. Blank input is
// rejected by the conversation and leaves the screen in Editing mode.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	content := string(m.input)
	if !m.conv.Submit(content) {
		return m, nil
	}

	m.input = nil
	m.inputScroll = 0
	m.syncViewport()
	return m, m.startTurn(content)
}

// =============================================================================
// WAITING MODE
// =============================================================================

func (m Model) handleWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		m.conv.CancelTurn()
		m.forgetTurn()
		m.syncViewport()
		return m, nil
	}
	return m, nil
}

// =============================================================================
// INPUT WINDOW
// =============================================================================

// maxInputScroll is the rightmost allowed window offset: zero until the
// buffer outgrows the visible box, then buffer length minus the box width.
func (m Model) maxInputScroll() int {
	maxScroll := len(m.input) - m.inputInnerWidth()
	if maxScroll < 0 {
		return 0
	}
	return maxScroll
}

// clampInputScroll keeps the window offset inside [0, maxInputScroll].
func (m *Model) clampInputScroll() {
	if m.inputScroll < 0 {
		m.inputScroll = 0
	}
	if maxScroll := m.maxInputScroll(); m.inputScroll > maxScroll {
		m.inputScroll = maxScroll
	}
}

// followInputTail snaps the window to the end of the buffer, so typing
// beyond the visible width keeps the newest runes in view.
func (m *Model) followInputTail() {
	m.inputScroll = m.maxInputScroll()
}
