// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/ollama"
	"github.com/jeranaias/chatti/internal/ui/styles"
)

func TestViewBeforeFirstResize(t *testing.T) {
	m := New(styles.NewTheme(), config.Default(), ollama.NewClient(testEndpoint), nil)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before sizing = %q, want %q", got, "Loading...")
	}
}

func TestViewNormalMode(t *testing.T) {
	m := newTestModel(t)
	view := stripANSI(m.View())

	if !strings.Contains(view, "Chatti") {
		t.Errorf("view lacks the pane title")
	}
	if !strings.Contains(view, "┌") || !strings.Contains(view, "└") {
		t.Errorf("view lacks border corners")
	}
	if !strings.Contains(view, "Press q to exit, e to start editing, ? to show help menu") {
		t.Errorf("view lacks the normal mode hint:\n%s", view)
	}
}

func TestViewEditingMode(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')
	for _, r := range "hey" {
		m = pressRune(t, m, r)
	}
	view := stripANSI(m.View())

	if !strings.Contains(view, "hey") {
		t.Errorf("view lacks the compose buffer text")
	}
	if !strings.Contains(view, "Press Esc to stop editing, Enter to send the message") {
		t.Errorf("view lacks the editing mode hint:\n%s", view)
	}
}

func TestViewWaitingMode(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")
	view := stripANSI(m.View())

	if !strings.Contains(view, "You: hi") {
		t.Errorf("view lacks the submitted prompt:\n%s", view)
	}
	if !strings.Contains(view, "⠋ Generating...") {
		t.Errorf("view lacks the animated placeholder:\n%s", view)
	}
	if !strings.Contains(view, "Press Esc to cancel request") {
		t.Errorf("view lacks the waiting mode hint:\n%s", view)
	}
}

func TestViewWrappedRowsNotReprefixed(t *testing.T) {
	m := newTestModel(t)
	m = resize(t, m, 30, 20)
	m = beginTurn(t, m, "aaaa bbbb cccc dddd eeee")
	view := stripANSI(m.View())

	if n := strings.Count(view, "You: "); n != 1 {
		t.Errorf("prefix appears %d times, want 1 (continuation rows indent instead):\n%s", n, view)
	}
	if !strings.Contains(view, "eeee") {
		t.Errorf("wrapped tail missing from the view:\n%s", view)
	}
}

func TestViewHelpOverlayReplacesFrame(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, '?')
	view := stripANSI(m.View())

	// The longest entry wraps inside the half-width panel, so only its
	// first segment is asserted whole.
	for _, want := range []string{
		"Help",
		"Shortcut Information",
		"q to quit the application",
		"Left/Right key to scrolling",
		"horizontally",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("help overlay lacks %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Chatti") {
		t.Errorf("help overlay still shows the chat frame")
	}

	m = pressRune(t, m, '?')
	if view := stripANSI(m.View()); !strings.Contains(view, "Chatti") {
		t.Errorf("closing help did not restore the chat frame")
	}
}

func TestViewInputScrollbarOnOverflow(t *testing.T) {
	m := newTestModel(t)
	m = resize(t, m, 30, 20)

	if view := stripANSI(m.View()); strings.Contains(view, "🬋") {
		t.Fatalf("scrollbar thumb drawn with an empty buffer")
	}

	m = pressRune(t, m, 'e')
	for i := 0; i < 40; i++ {
		m = pressRune(t, m, 'a')
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "🬋") {
		t.Errorf("overflowing buffer did not draw the horizontal scrollbar:\n%s", view)
	}
}

func TestViewSurvivesTinySizes(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")

	for _, size := range []struct{ w, h int }{{1, 1}, {2, 2}, {4, 3}, {8, 6}, {10, 5}} {
		next, _ := m.Update(tea.WindowSizeMsg{Width: size.w, Height: size.h})
		small := next.(Model)
		_ = small.View()
	}
}
