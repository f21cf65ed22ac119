// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders markdown text as styled terminal lines.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jeranaias/chatti/internal/ui/styles"
)

// DefaultCodeStyle is the chroma theme used for fenced code blocks.
const DefaultCodeStyle = "monokai"

// codeSpanStyle is applied to inline code. It replaces the surrounding
// emphasis rather than composing with it.
var codeSpanStyle = Style{Italic: true, Color: styles.Yellow}

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// Render converts markdown into styled lines wrapped to width columns.
// The result depends only on the inputs; rendering the same content twice
// yields identical lines.
func Render(content string, width int) []Line {
	return RenderWithCodeStyle(content, width, DefaultCodeStyle)
}

// RenderWithCodeStyle renders with a specific chroma theme for code blocks.
func RenderWithCodeStyle(content string, width int, codeStyle string) []Line {
	source := []byte(content)
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source, width: width, codeStyle: codeStyle}
	w.walkBlock(doc)
	w.flushLine()
	return trimTrailingBlanks(w.lines)
}

// walker accumulates styled lines while traversing the parsed document.
type walker struct {
	source    []byte
	width     int
	codeStyle string
	lines     []Line
	current   Line
	listLevel int
}

// =============================================================================
// BLOCK-LEVEL RENDERING
// =============================================================================

func (w *walker) walkBlock(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c)
	}
}

func (w *walker) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Document:
		w.walkBlock(n)

	case *ast.Heading:
		// Headings carry no block styling; the text lands on its own line.
		w.inlines(n, Style{})
		w.flushLine()

	case *ast.Paragraph:
		if len(w.lines) > 0 {
			w.blankLine()
		}
		w.inlines(n, Style{})
		w.flushLine()
		w.blankLine()

	case *ast.TextBlock:
		w.inlines(n, Style{})
		w.flushLine()

	case *ast.Blockquote:
		w.walkBlock(n)

	case *ast.List:
		w.flushLine()
		w.listLevel++
		w.walkBlock(n)
		w.listLevel--
		w.flushLine()

	case *ast.ListItem:
		w.flushLine()
		w.current = append(w.current, w.bullet())
		w.walkBlock(n)

	case *ast.FencedCodeBlock:
		w.flushLine()
		w.codeBlock(n, string(n.Language(w.source)))

	case *ast.CodeBlock:
		w.flushLine()
		w.codeBlock(n, "")

	default:
		if node.HasChildren() {
			w.walkBlock(node)
		}
	}
}

// codeBlock emits a code block verbatim, one styled line per source line,
// bypassing the width budget entirely.
func (w *walker) codeBlock(n ast.Node, language string) {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.source))
	}
	w.lines = append(w.lines, Highlight(b.String(), language, w.codeStyle)...)
}

// =============================================================================
// INLINE RENDERING
// =============================================================================

func (w *walker) inlines(n ast.Node, style Style) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.inline(c, style)
	}
}

func (w *walker) inline(node ast.Node, style Style) {
	switch n := node.(type) {
	case *ast.Text:
		w.addText(string(n.Text(w.source)), style)
		// Soft breaks need no handling: the word joiner supplies the space.
		if n.HardLineBreak() {
			w.flushLine()
		}

	case *ast.String:
		w.addText(string(n.Value), style)

	case *ast.Emphasis:
		st := style
		if n.Level == 2 {
			st.Bold = true
		} else {
			st.Italic = true
		}
		w.inlines(n, st)

	case *ast.CodeSpan:
		w.addText("`"+w.rawText(n)+"`", codeSpanStyle)

	case *ast.Link:
		w.inlines(n, style)

	case *ast.AutoLink:
		w.addText(string(n.URL(w.source)), style)

	case *east.Strikethrough:
		// The span model has no strike decoration; the text renders plain.
		w.inlines(n, style)

	case *ast.RawHTML:
		// Dropped; raw HTML has no terminal rendering.

	default:
		if node.HasChildren() {
			w.inlines(node, style)
		}
	}
}

// rawText collects the literal text beneath an inline node.
func (w *walker) rawText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Text(w.source))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

// trimTrailingBlanks drops empty lines at the end of the output.
func trimTrailingBlanks(lines []Line) []Line {
	for len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}
