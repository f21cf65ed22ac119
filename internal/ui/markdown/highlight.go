// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders markdown text as styled terminal lines.
package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// Highlight tokenizes code and returns one styled line per source line.
// Line breaks are preserved verbatim; nothing is re-wrapped. An unknown
// language falls back to content analysis and then to plain text.
func Highlight(code, language, styleName string) []Line {
	// Get lexer for language
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	// Get style (use terminal-friendly style)
	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plainLines(code)
	}

	var out []Line
	var current Line
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		ts := Style{}
		if entry.Colour.IsSet() {
			ts.Color = lipgloss.Color(entry.Colour.String())
		}
		if entry.Bold == chroma.Yes {
			ts.Bold = true
		}
		if entry.Italic == chroma.Yes {
			ts.Italic = true
		}
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				out = append(out, current)
				current = nil
			}
			if part != "" {
				current = append(current, Span{Text: part, Style: ts})
			}
		}
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// plainLines returns code as unstyled lines when tokenization fails.
func plainLines(code string) []Line {
	code = strings.TrimSuffix(code, "\n")
	if code == "" {
		return nil
	}
	var out []Line
	for _, text := range strings.Split(code, "\n") {
		if text == "" {
			out = append(out, Line{})
			continue
		}
		out = append(out, Line{{Text: text}})
	}
	return out
}
