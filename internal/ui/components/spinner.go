// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chatti TUI.
package components

import (
	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER COMPONENT
// =============================================================================

// Spinner cycles through a fixed braille frame sequence while a request is
// in flight. Frames advance on the UI tick, never during rendering, so the
// glyph is stable within a single draw.
type Spinner struct {
	frames  []string
	current int
}

// NewSpinner creates a spinner over the ten-frame braille sequence.
func NewSpinner() *Spinner {
	return &Spinner{frames: spinner.MiniDot.Frames}
}

// NextFrame returns the current glyph and advances the position, wrapping
// back to the first frame after the last.
func (s *Spinner) NextFrame() string {
	frame := s.frames[s.current]
	s.current = (s.current + 1) % len(s.frames)
	return frame
}

// Frame returns the current glyph without advancing.
func (s *Spinner) Frame() string {
	return s.frames[s.current]
}
