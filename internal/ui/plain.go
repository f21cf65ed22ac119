// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"strings"
	"unicode/utf8"
)

// wrapPlain wraps text at word boundaries for user and system messages.
// Unlike the markdown wrapper it never splits inside a word: a word wider
// than the line keeps its own overlong line. Input lines are wrapped
// independently and blank ones survive as blank output lines.
func wrapPlain(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) > width {
				out = append(out, current)
				current = word
				continue
			}
			current += " " + word
		}
		out = append(out, current)
	}
	return out
}
