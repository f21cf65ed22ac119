// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package markdown renders markdown text as styled terminal lines.

Rendering is a pure function from (markdown text, target width) to an
ordered slice of lines, where each line is a sequence of styled spans. The
package has no dependency on UI state; callers re-render on every frame and
get identical output for identical input.

# Layout Model

Text outside code blocks is packed greedily word by word up to the width
budget. Width accounting is display-column aware: wide (CJK) characters
count as two columns and runes are never split. A word wider than a whole
line is hard-split at the column boundary. List content is indented two
columns per nesting level, with bullet glyphs alternating by depth parity
(filled at odd depths, hollow at even depths). Paragraphs are separated by
blank lines; trailing blanks are trimmed from the final output.

Inline emphasis composes as a union: text nested inside both strong and
emphasis markers carries bold and italic together. Inline code is the
exception, rendered in its own fixed style.

# Code Blocks

Fenced code blocks bypass wrapping entirely. The block's text is run
through Chroma keyed by the fence's language tag (falling back to content
analysis, then plain text) and emitted one line per source line with
per-token colors, preserving the original line breaks.

# Key Types

Line and Span form the output model:

	lines := markdown.Render("**hello** world", 80)
	for _, line := range lines {
		fmt.Println(line.Render()) // ANSI-styled
	}

Line.String returns the unstyled text, Line.Width the display width.
*/
package markdown
