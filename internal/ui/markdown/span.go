// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders markdown text as styled terminal lines.
package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// STYLED SPANS
// =============================================================================

// Style is the decoration carried by a span. Bold and italic compose as a
// union when emphasis nests; Color overrides the terminal default when set.
type Style struct {
	Bold   bool
	Italic bool
	Color  lipgloss.TerminalColor
}

// IsZero reports whether the style carries no decoration at all.
func (s Style) IsZero() bool {
	return !s.Bold && !s.Italic && s.Color == nil
}

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style Style
}

// Width returns the display width of the span in terminal columns.
// Wide characters count as two columns.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

// Line is an ordered sequence of spans forming one terminal row.
type Line []Span

// Width returns the display width of the whole line.
func (l Line) Width() int {
	total := 0
	for _, s := range l {
		total += s.Width()
	}
	return total
}

// String returns the line's text with all styling stripped.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render returns the line as ANSI-styled text.
func (l Line) Render() string {
	var b strings.Builder
	for _, s := range l {
		if s.Style.IsZero() {
			b.WriteString(s.Text)
			continue
		}
		st := lipgloss.NewStyle()
		if s.Style.Bold {
			st = st.Bold(true)
		}
		if s.Style.Italic {
			st = st.Italic(true)
		}
		if s.Style.Color != nil {
			st = st.Foreground(s.Style.Color)
		}
		b.WriteString(st.Render(s.Text))
	}
	return b.String()
}

// RenderOn returns the line as ANSI-styled text with a background color
// laid under every span, keeping the per-span decorations. Used for the
// selected-row highlight in the transcript.
func (l Line) RenderOn(bg lipgloss.TerminalColor) string {
	if bg == nil {
		return l.Render()
	}
	var b strings.Builder
	for _, s := range l {
		st := lipgloss.NewStyle().Background(bg)
		if s.Style.Bold {
			st = st.Bold(true)
		}
		if s.Style.Italic {
			st = st.Italic(true)
		}
		if s.Style.Color != nil {
			st = st.Foreground(s.Style.Color)
		}
		b.WriteString(st.Render(s.Text))
	}
	return b.String()
}
