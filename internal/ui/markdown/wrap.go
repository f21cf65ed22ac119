// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders markdown text as styled terminal lines.
package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// LINE ASSEMBLY
// =============================================================================

// addText packs the words of text into the current line under the active
// width budget, opening continuation lines as needed. Runs of whitespace
// collapse to single spaces.
func (w *walker) addText(text string, style Style) {
	for _, word := range strings.Fields(text) {
		w.placeWord(word, style)
	}
}

// placeWord appends one word to the current line. A word that does not fit
// the remainder moves to a fresh line; a word wider than a whole line is
// hard-split at the column boundary, never mid-rune.
func (w *walker) placeWord(word string, style Style) {
	for word != "" {
		w.openLine()
		avail := w.budget()
		used := w.current.Width()
		joiner := ""
		if n := len(w.current); n > 0 && !strings.HasSuffix(w.current[n-1].Text, " ") {
			joiner = " "
		}
		free := avail - used - len(joiner)
		if runewidth.StringWidth(word) <= free {
			w.current = append(w.current, Span{Text: joiner + word, Style: style})
			return
		}

		// A fresh line only buys room when the current one holds content
		// beyond its indentation.
		if used > w.indentWidth() {
			w.flushLine()
			continue
		}

		head, rest := splitAtWidth(word, free)
		if head == "" {
			head, rest = firstRune(word)
		}
		w.current = append(w.current, Span{Text: head, Style: style})
		w.flushLine()
		word = rest
	}
}

// openLine seeds an empty line with list indentation.
func (w *walker) openLine() {
	if len(w.current) == 0 && w.listLevel > 0 {
		w.current = append(w.current, Span{Text: strings.Repeat("  ", w.listLevel)})
	}
}

// budget is the column budget for the current line. Lines inside lists give
// up two columns per nesting level.
func (w *walker) budget() int {
	b := w.width - w.indentWidth()
	if b < 1 {
		b = 1
	}
	return b
}

// indentWidth is the display width of the active list indentation.
func (w *walker) indentWidth() int {
	return 2 * w.listLevel
}

// bullet returns the marker span for a list item at the current depth.
// Odd depths use a filled bullet, even depths a hollow one.
func (w *walker) bullet() Span {
	glyph := "• "
	if w.listLevel%2 == 0 {
		glyph = "◦ "
	}
	return Span{Text: strings.Repeat("  ", w.listLevel-1) + glyph}
}

// flushLine moves the current line into the output buffer. Empty lines are
// dropped; blank separators go through blankLine.
func (w *walker) flushLine() {
	if len(w.current) == 0 {
		return
	}
	w.lines = append(w.lines, w.current)
	w.current = nil
}

// blankLine appends an empty separator line.
func (w *walker) blankLine() {
	w.lines = append(w.lines, Line{})
}

// splitAtWidth splits word after the widest prefix whose display width does
// not exceed cols. A wide character straddling the boundary moves wholly
// into the remainder.
func splitAtWidth(word string, cols int) (head, rest string) {
	if cols <= 0 {
		return "", word
	}
	width := 0
	for i, r := range word {
		rw := runewidth.RuneWidth(r)
		if width+rw > cols {
			return word[:i], word[i:]
		}
		width += rw
	}
	return word, ""
}

// firstRune force-splits a single rune off word so degenerate widths still
// make progress.
func firstRune(word string) (head, rest string) {
	_, size := utf8.DecodeRuneInString(word)
	return word[:size], word[size:]
}
