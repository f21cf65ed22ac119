// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chatti TUI.
package components

import (
	"strings"

	"github.com/jeranaias/chatti/internal/ui/styles"
)

const (
	verticalTrackGlyph   = "│"
	verticalThumbGlyph   = "█"
	horizontalTrackGlyph = "─"
	horizontalThumbGlyph = "🬋"
)

// =============================================================================
// VERTICAL SCROLLBAR - transcript position indicator
// =============================================================================

// ScrollBar renders the vertical scrollbar at the right edge of the message
// pane. Content is counted in messages, not lines, matching the selection
// model of the transcript.
type ScrollBar struct {
	height   int
	content  int
	viewport int
	position int
	theme    *styles.Theme
}

// NewScrollBar creates a new ScrollBar.
func NewScrollBar(theme *styles.Theme) *ScrollBar {
	return &ScrollBar{
		height: 20,
		theme:  theme,
	}
}

// SetHeight sets the scrollbar height in rows.
func (sb *ScrollBar) SetHeight(height int) {
	sb.height = height
}

// SetContent sets the total entry count and the number of visible entries.
func (sb *ScrollBar) SetContent(total, visible int) {
	sb.content = total
	sb.viewport = visible
}

// SetPosition sets the selected entry index.
func (sb *ScrollBar) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	sb.position = pos
}

// View renders the scrollbar, one glyph per row.
func (sb *ScrollBar) View() string {
	if sb.height <= 0 {
		return ""
	}

	track := sb.theme.ScrollTrack.Render(verticalTrackGlyph)
	if sb.content <= sb.viewport || sb.content <= 1 {
		// Nothing to scroll, show a faded track.
		rows := make([]string, sb.height)
		for i := range rows {
			rows[i] = track
		}
		return strings.Join(rows, "\n")
	}

	thumbSize := sb.height * sb.viewport / sb.content
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > sb.height {
		thumbSize = sb.height
	}

	fraction := float64(sb.position) / float64(sb.content-1)
	if fraction > 1 {
		fraction = 1
	}
	thumbPos := int(float64(sb.height-thumbSize) * fraction)

	thumb := sb.theme.ScrollThumb.Render(verticalThumbGlyph)
	var b strings.Builder
	for i := 0; i < sb.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbPos && i < thumbPos+thumbSize {
			b.WriteString(thumb)
		} else {
			b.WriteString(track)
		}
	}
	return b.String()
}

// =============================================================================
// HORIZONTAL SCROLLBAR - input box overflow indicator
// =============================================================================

// HScrollBar renders the single-row horizontal scrollbar under the input
// text when the buffer is wider than the visible box. Content is counted
// in columns.
type HScrollBar struct {
	width    int
	content  int
	viewport int
	position int
	theme    *styles.Theme
}

// NewHScrollBar creates a new HScrollBar.
func NewHScrollBar(theme *styles.Theme) *HScrollBar {
	return &HScrollBar{
		width: 80,
		theme: theme,
	}
}

// SetWidth sets the scrollbar width in columns.
func (sb *HScrollBar) SetWidth(width int) {
	sb.width = width
}

// SetContent sets the total column count and the visible column count.
func (sb *HScrollBar) SetContent(total, visible int) {
	sb.content = total
	sb.viewport = visible
}

// SetPosition sets the current scroll offset in columns.
func (sb *HScrollBar) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	sb.position = pos
}

// View renders the scrollbar as a single line.
func (sb *HScrollBar) View() string {
	if sb.width <= 0 {
		return ""
	}

	track := sb.theme.ScrollTrack.Render(horizontalTrackGlyph)
	if sb.content <= sb.viewport || sb.content <= 1 {
		return strings.Repeat(track, sb.width)
	}

	thumbSize := sb.width * sb.viewport / sb.content
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > sb.width {
		thumbSize = sb.width
	}

	// The offset tops out at content-viewport columns.
	maxScroll := sb.content - sb.viewport
	fraction := float64(sb.position) / float64(maxScroll)
	if fraction > 1 {
		fraction = 1
	}
	thumbPos := int(float64(sb.width-thumbSize) * fraction)

	thumb := sb.theme.ScrollThumb.Render(horizontalThumbGlyph)
	var b strings.Builder
	for i := 0; i < sb.width; i++ {
		if i >= thumbPos && i < thumbPos+thumbSize {
			b.WriteString(thumb)
		} else {
			b.WriteString(track)
		}
	}
	return b.String()
}
