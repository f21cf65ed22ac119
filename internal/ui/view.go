// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
//
// This file holds all rendering: the frame layout, the transcript rows,
// the input box with its drawn cursor, the hint bar and the help overlay.
// Panels are drawn with a hand-built border so the title can sit on the
// top edge and the scrollbars can replace the right and bottom edges, the
// way the transcript and input panels need.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/chatti/internal/model"
	"github.com/jeranaias/chatti/internal/ui/markdown"
	"github.com/jeranaias/chatti/internal/ui/styles"
)

// Layout constants. The outer margin wraps the whole frame; the input box
// is three rows tall (border, text, border) with a one-row hint bar below.
const (
	frameMargin  = 1
	inputBoxRows = 3
	hintBarRows  = 1
)

// =============================================================================
// GEOMETRY
// =============================================================================

// frameSize is the usable area inside the outer margin.
func (m Model) frameSize() (int, int) {
	w := m.width - 2*frameMargin
	h := m.height - 2*frameMargin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// paneInnerSize is the transcript interior: the frame minus the input box,
// the hint bar and the pane border.
func (m Model) paneInnerSize() (int, int) {
	fw, fh := m.frameSize()
	w := fw - 2
	h := fh - inputBoxRows - hintBarRows - 2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// inputInnerWidth is the text row width inside the input box border.
func (m Model) inputInnerWidth() int {
	fw, _ := m.frameSize()
	w := fw - 2
	if w < 0 {
		w = 0
	}
	return w
}

// =============================================================================
// MAIN VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	frame := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderMessagePane(),
		m.renderInputBox(),
		m.renderHintBar(),
	)
	return lipgloss.NewStyle().Margin(frameMargin).Render(frame)
}

// =============================================================================
// MESSAGE PANE
// =============================================================================

func (m Model) renderMessagePane() string {
	paneW, paneH := m.paneInnerSize()
	if paneW <= 0 || paneH <= 0 {
		return ""
	}

	// The scrollbar counts messages, not rows: the thumb follows the
	// transcript selection.
	m.scroll.SetHeight(paneH)
	m.scroll.SetContent(m.conv.Len(), paneH)
	sel := m.conv.Selected()
	if sel < 0 {
		sel = 0
	}
	m.scroll.SetPosition(sel)

	return borderBox(boxOpts{
		title:      "Chatti",
		titleStyle: m.theme.PaneTitle,
		body:       strings.Split(m.vp.View(), "\n"),
		width:      paneW + 2,
		height:     paneH + 2,
		color:      m.theme.ChatPane.GetBorderTopForeground(),
		rightCol:   strings.Split(m.scroll.View(), "\n"),
	})
}

// transcriptLines renders every message to styled rows and reports the row
// range occupied by the selected message, for the follow-scroll in
// syncViewport.
func (m Model) transcriptLines() (lines []string, selStart, selEnd int) {
	selStart, selEnd = -1, -1
	paneW, _ := m.paneInnerSize()
	if paneW <= 0 {
		return nil, selStart, selEnd
	}

	waiting := m.conv.Mode() == model.ModeWaiting
	for i, msg := range m.conv.Messages() {
		selected := i == m.conv.Selected()
		start := len(lines)
		lines = append(lines, m.renderMessage(msg, paneW, waiting, selected)...)
		if selected {
			selStart, selEnd = start, len(lines)-1
		}
	}
	return lines, selStart, selEnd
}

// renderMessage renders one transcript entry. The first row carries the
// role prefix, continuation rows are indented by the prefix display width.
// Assistant bodies go through the markdown renderer, user and system
// bodies through the plain word wrapper; system messages show the spinner
// glyph while a request is in flight.
func (m Model) renderMessage(msg model.Message, width int, waiting, selected bool) []string {
	prefix := msg.Role.Prefix()
	prefixW := runewidth.StringWidth(prefix)
	wrapW := width - prefixW
	if wrapW < 1 {
		wrapW = 1
	}

	content := msg.Content
	if msg.Role == model.RoleSystem && waiting {
		content = m.spin.Frame() + " " + content
	}

	roleStyle := m.theme.PrefixStyle(msg.Role)
	if selected {
		roleStyle = roleStyle.Background(styles.SelectionBg)
	}

	var body []string
	if msg.Role.RendersMarkdown() {
		for _, ln := range markdown.RenderWithCodeStyle(content, wrapW, m.cfg.UI.CodeStyle) {
			if selected {
				body = append(body, ln.RenderOn(styles.SelectionBg))
			} else {
				body = append(body, ln.Render())
			}
		}
	} else {
		for _, ln := range wrapPlain(content, wrapW) {
			body = append(body, roleStyle.Render(ln))
		}
	}
	if len(body) == 0 {
		body = []string{""}
	}

	rows := make([]string, 0, len(body))
	for i, ln := range body {
		var row string
		if i == 0 {
			row = roleStyle.Render(prefix) + ln
		} else {
			row = m.fillCell(prefixW, selected) + ln
		}
		if fill := width - lipgloss.Width(row); fill > 0 {
			row += m.fillCell(fill, selected)
		}
		rows = append(rows, row)
	}
	return rows
}

// fillCell returns n spaces, carrying the selection background when the
// row belongs to the selected message so the highlight forms a block.
func (m Model) fillCell(n int, selected bool) string {
	if n <= 0 {
		return ""
	}
	s := strings.Repeat(" ", n)
	if selected {
		return m.theme.SelectedRow.Render(s)
	}
	return s
}

// =============================================================================
// INPUT BOX
// =============================================================================

func (m Model) renderInputBox() string {
	w := m.inputInnerWidth()
	if w <= 0 {
		return ""
	}
	mode := m.conv.Mode()

	visible, cursorFits := m.visibleInput(w)
	row := m.theme.InputStyle(mode).Render(visible)
	if mode == model.ModeEditing && cursorFits {
		row += cursorCell()
	}

	// The bottom border doubles as a scrollbar once the buffer outgrows
	// the visible box.
	var bottom string
	if len(m.input) > w {
		m.hscroll.SetWidth(w)
		m.hscroll.SetContent(len(m.input), w)
		m.hscroll.SetPosition(m.inputScroll)
		bottom = m.hscroll.View()
	}

	return borderBox(boxOpts{
		body:      []string{row},
		width:     w + 2,
		height:    inputBoxRows,
		color:     m.theme.InputBox(mode).GetBorderTopForeground(),
		bottomRow: bottom,
	})
}

// visibleInput returns the windowed slice of the compose buffer and
// whether the cursor cell just past the last rune still fits. The window
// starts at the scroll offset and stops before a rune would cross the
// right edge.
func (m Model) visibleInput(w int) (string, bool) {
	start := m.inputScroll
	if start > len(m.input) {
		start = len(m.input)
	}

	var b strings.Builder
	cols := 0
	for _, r := range m.input[start:] {
		rw := runewidth.RuneWidth(r)
		if cols+rw > w {
			return b.String(), false
		}
		cols += rw
		b.WriteRune(r)
	}
	return b.String(), cols < w
}

// cursorCell is the drawn cursor: one reversed cell past the text.
func cursorCell() string {
	return lipgloss.NewStyle().Reverse(true).Render(" ")
}

// =============================================================================
// HINT BAR
// =============================================================================

func (m Model) renderHintBar() string {
	t := m.theme.HintText
	k := m.theme.HintKey

	switch m.conv.Mode() {
	case model.ModeEditing:
		return t.Render("Press ") + k.Render("Esc") + t.Render(" to stop editing, ") +
			k.Render("Enter") + t.Render(" to send the message")
	case model.ModeWaiting:
		return t.Render("Press ") + k.Render("Esc") + t.Render(" to cancel request")
	default:
		return t.Render("Press ") + k.Render("q") + t.Render(" to exit, ") +
			k.Render("e") + t.Render(" to start editing, ") +
			k.Render("?") + t.Render(" to show help menu")
	}
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// helpEntries are the overlay rows: a binding rendered in the key style
// followed by its description, or a plain line when the binding is empty.
var helpEntries = []struct {
	key  string
	text string
}{
	{"", "Shortcut Information"},
	{"", ""},
	{"?", " to toggle/untoggle this help menu"},
	{"q", " to quit the application"},
	{"Esc", " to exit from Editing Mode"},
	{"Left/Right key", " to scrolling horizontally"},
	{"Up/Down key", " to scrolling vertically"},
}

// renderHelpOverlay draws the centered help panel on a cleared screen. The
// panel takes half the terminal in each dimension, offset a quarter of the
// width from the left and a fifth of the height from the top.
func (m Model) renderHelpOverlay() string {
	boxW := m.width / 2
	boxH := m.height / 2
	x := m.width / 4
	y := m.height / 5
	if boxW < 2 || boxH < 2 {
		return ""
	}
	innerW := boxW - 2

	// Entries wider than the panel wrap onto the next row, each row
	// centered on its own.
	body := make([]string, 0, len(helpEntries))
	for _, e := range helpEntries {
		for i, ln := range wrapPlain(e.key+e.text, innerW) {
			pad := (innerW - runewidth.StringWidth(ln)) / 2
			if pad < 0 {
				pad = 0
			}
			row := strings.Repeat(" ", pad)
			if i == 0 && e.key != "" && strings.HasPrefix(ln, e.key) {
				row += m.theme.HelpKey.Render(e.key)
				row += m.theme.HelpText.Render(strings.TrimPrefix(ln, e.key))
			} else {
				row += m.theme.HelpText.Render(ln)
			}
			body = append(body, row)
		}
	}

	box := borderBox(boxOpts{
		title:      "Help",
		titleStyle: m.theme.HelpTitle,
		body:       body,
		width:      boxW,
		height:     boxH,
		color:      m.theme.HelpBox.GetBorderTopForeground(),
	})

	indent := strings.Repeat(" ", x)
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", y))
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent + line)
	}
	return b.String()
}

// =============================================================================
// BORDERED PANELS
// =============================================================================

// boxOpts configures one hand-drawn bordered panel.
type boxOpts struct {
	title      string
	titleStyle lipgloss.Style
	body       []string // interior rows, padded or clipped to height-2
	width      int      // outer columns
	height     int      // outer rows
	color      lipgloss.TerminalColor
	rightCol   []string // optional per-row replacement for the right edge
	bottomRow  string   // optional replacement for the bottom edge interior
}

// borderBox draws a bordered panel in the normal border glyph set. The
// title sits directly on the top edge after the corner; rightCol and
// bottomRow let scrollbars take over an edge.
func borderBox(o boxOpts) string {
	if o.width < 2 || o.height < 2 {
		return ""
	}
	b := lipgloss.NormalBorder()
	edge := lipgloss.NewStyle().Foreground(o.color)
	innerW := o.width - 2
	innerH := o.height - 2

	rows := make([]string, 0, o.height)

	title := o.title
	if runewidth.StringWidth(title) > innerW {
		title = ""
	}
	top := edge.Render(b.TopLeft)
	if title != "" {
		top += o.titleStyle.Render(title)
	}
	fill := innerW - runewidth.StringWidth(title)
	top += edge.Render(strings.Repeat(b.Top, fill) + b.TopRight)
	rows = append(rows, top)

	left := edge.Render(b.Left)
	right := edge.Render(b.Right)
	for i := 0; i < innerH; i++ {
		var body string
		if i < len(o.body) {
			body = o.body[i]
		}
		if pad := innerW - lipgloss.Width(body); pad > 0 {
			body += strings.Repeat(" ", pad)
		}
		r := right
		if i < len(o.rightCol) {
			r = o.rightCol[i]
		}
		rows = append(rows, left+body+r)
	}

	interior := o.bottomRow
	if interior == "" {
		interior = edge.Render(strings.Repeat(b.Bottom, innerW))
	}
	rows = append(rows, edge.Render(b.BottomLeft)+interior+edge.Render(b.BottomRight))

	return strings.Join(rows, "\n")
}
