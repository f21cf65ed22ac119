// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"time"

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/ollama"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// Every streaming message carries the id of the turn it belongs to. The
// update loop compares it against the current turn and silently drops
// anything stale, which is how late deltas of a cancelled or superseded
// request are drained without touching the transcript.

// StreamChunkMsg delivers one decoded chunk from the in-flight stream.
type StreamChunkMsg struct {
	TurnID string
	Chunk  ollama.StreamChunk
}

// StreamTimeoutMsg fires when no chunk arrived inside the poll window. It
// exists so the loop redraws and keeps reacting to keys while the network
// is quiet.
type StreamTimeoutMsg struct {
	TurnID string
}

// StreamClosedMsg reports that the delta channel closed. A stream that
// ends without a done sentinel finalizes through this message.
type StreamClosedMsg struct {
	TurnID string
}

// CompletionMsg carries the whole response of a non-streaming request, or
// the error that ended it.
type CompletionMsg struct {
	TurnID  string
	Content string
	Err     error
}

// ErrorPauseMsg fires after the short pause that follows a surfaced stream
// error, before the channel is drained and the turn forgotten.
type ErrorPauseMsg struct {
	TurnID string
}

// =============================================================================
// CACHE MESSAGES
// =============================================================================

// CacheLookupMsg reports the result of a response cache probe for the
// current prompt. On a hit the network request is skipped entirely.
type CacheLookupMsg struct {
	TurnID  string
	Content string
	Hit     bool
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// SpinnerTickMsg advances the waiting spinner. Ticks are stamped with the
// turn id so a tick chain armed for an earlier turn dies out instead of
// doubling the animation speed.
type SpinnerTickMsg struct {
	TurnID string
	Time   time.Time
}

// ConfigReloadedMsg delivers fresh settings picked up by the config file
// watcher. Sent from outside the program via Program.Send.
type ConfigReloadedMsg struct {
	Settings *config.Config
}
