// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/chatti/internal/logging"
	"github.com/jeranaias/chatti/internal/model"
	"github.com/jeranaias/chatti/internal/ollama"
)

const (
	// spinnerInterval is the redraw tick while a request is in flight.
	spinnerInterval = 250 * time.Millisecond

	// chunkPollWindow bounds how long the forwarding command blocks on the
	// delta channel before yielding a redraw.
	chunkPollWindow = 100 * time.Millisecond

	// errorPause separates an error report from the drain that follows it,
	// so a failing stream cannot spin the loop.
	errorPause = 300 * time.Millisecond
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SpinnerTickMsg:
		return m.handleSpinnerTick(msg)

	case CacheLookupMsg:
		return m.handleCacheLookup(msg)

	case StreamChunkMsg:
		return m.handleStreamChunk(msg)

	case StreamTimeoutMsg:
		return m.handleStreamTimeout(msg)

	case StreamClosedMsg:
		return m.handleStreamClosed(msg)

	case CompletionMsg:
		return m.handleCompletion(msg)

	case ErrorPauseMsg:
		return m.handleErrorPause(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)
	}
	return m, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// spinnerTick schedules the next animation frame for the given turn.
func spinnerTick(turnID string) tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg{TurnID: turnID, Time: t}
	})
}

// waitForChunk forwards the next event from the delta channel. The poll
// window keeps the loop breathing while the network is quiet: whichever of
// the two cases fires first becomes the next message.
func waitForChunk(turnID string, ch <-chan ollama.StreamChunk) tea.Cmd {
	return func() tea.Msg {
		select {
		case chunk, ok := <-ch:
			if !ok {
				return StreamClosedMsg{TurnID: turnID}
			}
			return StreamChunkMsg{TurnID: turnID, Chunk: chunk}
		case <-time.After(chunkPollWindow):
			return StreamTimeoutMsg{TurnID: turnID}
		}
	}
}

// errorPauseDone schedules the post-error continuation.
func errorPauseDone(turnID string) tea.Cmd {
	return tea.Tick(errorPause, func(time.Time) tea.Msg {
		return ErrorPauseMsg{TurnID: turnID}
	})
}

// lookupCache probes the response cache off the update loop.
func lookupCache(cache ResponseCache, turnID, modelName string, temperature float64, prompt string) tea.Cmd {
	return func() tea.Msg {
		text, ok := cache.Get(modelName, temperature, prompt)
		return CacheLookupMsg{TurnID: turnID, Content: text, Hit: ok}
	}
}

// storeResponse writes a finished turn into the response cache.
func storeResponse(cache ResponseCache, modelName string, temperature float64, prompt, response string) tea.Cmd {
	return func() tea.Msg {
		if err := cache.Put(modelName, temperature, prompt, response); err != nil {
			logging.Warnf("cache store failed: %v", err)
		}
		return nil
	}
}

// =============================================================================
// TURN LIFECYCLE
// =============================================================================

// startTurn opens a new turn for the submitted prompt. The cache is probed
// first when one is wired; otherwise the request goes straight out.
func (m *Model) startTurn(prompt string) tea.Cmd {
	m.turnID = uuid.NewString()
	m.pendingPrompt = prompt
	m.fromCache = false

	if m.cache != nil {
		return tea.Batch(
			spinnerTick(m.turnID),
			lookupCache(m.cache, m.turnID, m.cfg.Model, m.cfg.Temperature, prompt),
		)
	}
	return tea.Batch(spinnerTick(m.turnID), m.beginRequest(prompt))
}

// beginRequest issues the network request for the current turn, honoring
// the streaming flag from the settings.
func (m *Model) beginRequest(prompt string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.setCancelFunc(cancel)

	req := ollama.ChatRequest{
		Model:       m.cfg.Model,
		Messages:    []ollama.Message{ollama.NewUserMessage(prompt)},
		Stream:      m.cfg.Stream,
		Temperature: m.cfg.Temperature,
	}

	if m.cfg.Stream {
		ch := m.client.ChatStreamChan(ctx, req)
		m.stream = ch
		return waitForChunk(m.turnID, ch)
	}

	client, turnID := m.client, m.turnID
	return func() tea.Msg {
		resp, err := client.Chat(ctx, req)
		if err != nil {
			return CompletionMsg{TurnID: turnID, Err: err}
		}
		return CompletionMsg{TurnID: turnID, Content: resp.Message.Content}
	}
}

// finishTurn closes a streaming turn: the accumulated text becomes the
// final assistant message, or the turn is abandoned when nothing arrived.
// Responses that came over the network are handed to the cache.
func (m *Model) finishTurn() tea.Cmd {
	var cmd tea.Cmd
	if m.conv.Mode() == model.ModeWaiting {
		if full := m.conv.PartialResponse(); full != "" {
			m.conv.AddResponse(full)
			if last := m.conv.LastMessage(); last != nil {
				logging.Debugf("turn %s finished: %s", m.turnID, last.Preview(60))
			}
			if m.cache != nil && !m.fromCache {
				cmd = storeResponse(m.cache, m.cfg.Model, m.cfg.Temperature, m.pendingPrompt, full)
			}
		} else {
			m.conv.AbandonTurn()
		}
	}
	m.forgetTurn()
	return cmd
}

// forgetTurn drops every reference to the in-flight request and releases
// its context. Chunks still carrying the old turn id fall through the id
// check from here on.
func (m *Model) forgetTurn() {
	m.turnID = ""
	m.stream = nil
	m.pendingPrompt = ""
	m.fromCache = false
	m.inputScroll = 0
	m.cancelMgr.cancel()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	paneW, paneH := m.paneInnerSize()
	m.vp.Width = paneW
	m.vp.Height = paneH
	m.scroll.SetHeight(paneH)
	m.hscroll.SetWidth(m.inputInnerWidth())
	m.clampInputScroll()
	m.syncViewport()
	return m, nil
}

func (m Model) handleSpinnerTick(msg SpinnerTickMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || m.conv.Mode() != model.ModeWaiting {
		return m, nil
	}
	m.spin.NextFrame()
	m.syncViewport()
	return m, spinnerTick(m.turnID)
}

func (m Model) handleCacheLookup(msg CacheLookupMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || m.conv.Mode() != model.ModeWaiting {
		return m, nil
	}
	if msg.Hit {
		logging.Debugf("cache hit for prompt of turn %s", msg.TurnID)
		m.fromCache = true
		m.conv.UpdateResponse(msg.Content)
		cmd := m.finishTurn()
		m.syncViewport()
		return m, cmd
	}
	return m, m.beginRequest(m.pendingPrompt)
}

func (m Model) handleStreamChunk(msg StreamChunkMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID {
		return m, nil
	}

	chunk := msg.Chunk
	if chunk.Error != nil {
		return m.handleStreamError(chunk.Error)
	}

	if chunk.Content != "" {
		m.conv.UpdateResponse(chunk.Content)
		m.syncViewport()
	}
	if chunk.Done {
		cmd := m.finishTurn()
		m.syncViewport()
		return m, cmd
	}
	return m, waitForChunk(m.turnID, m.stream)
}

// handleStreamError reports a failed request in the transcript. The turn
// state is kept until the pause elapses and the channel drains, so a chunk
// that trails the error is still recognized and dropped.
func (m Model) handleStreamError(err error) (tea.Model, tea.Cmd) {
	if ollama.IsCancelled(err) {
		// Esc already closed this turn; nothing to report.
		return m, nil
	}

	logging.Errorf("request failed: %v", err)
	m.conv.AddResponse(errorNotice(err))
	m.inputScroll = 0
	m.syncViewport()
	return m, errorPauseDone(m.turnID)
}

func (m Model) handleStreamTimeout(msg StreamTimeoutMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || m.stream == nil {
		return m, nil
	}
	return m, waitForChunk(m.turnID, m.stream)
}

func (m Model) handleStreamClosed(msg StreamClosedMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID {
		return m, nil
	}
	cmd := m.finishTurn()
	m.syncViewport()
	return m, cmd
}

func (m Model) handleCompletion(msg CompletionMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID {
		return m, nil
	}
	if msg.Err != nil {
		return m.handleStreamError(msg.Err)
	}
	m.conv.UpdateResponse(msg.Content)
	cmd := m.finishTurn()
	m.syncViewport()
	return m, cmd
}

func (m Model) handleErrorPause(msg ErrorPauseMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID {
		return m, nil
	}
	if m.stream != nil {
		// Drain whatever the producer still writes before forgetting the
		// turn; the close lands as StreamClosedMsg.
		return m, waitForChunk(m.turnID, m.stream)
	}
	cmd := m.finishTurn()
	return m, cmd
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Settings == nil {
		return m, nil
	}
	if msg.Settings.Endpoint != m.cfg.Endpoint {
		m.client = ollama.NewClient(msg.Settings.Endpoint)
	}
	m.cfg = msg.Settings
	logging.Infof("settings reloaded: model=%s endpoint=%s", m.cfg.Model, m.cfg.Endpoint)
	return m, nil
}

// errorNotice is the transcript entry for a failed request, pointing at
// the log file for the full story.
func errorNotice(err error) string {
	return "error: " + ollama.UserFriendly(err) +
		", For more details, please check the log file at: " + logging.Path()
}
