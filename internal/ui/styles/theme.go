// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatti TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/chatti/internal/model"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// MESSAGE PANE STYLES
	// ==========================================================================

	ChatPane    lipgloss.Style
	PaneTitle   lipgloss.Style
	SelectedRow lipgloss.Style

	// ==========================================================================
	// INPUT BOX STYLES
	// ==========================================================================

	InputText        lipgloss.Style
	InputTextEditing lipgloss.Style
	InputTextWaiting lipgloss.Style

	// ==========================================================================
	// HINT BAR STYLES
	// ==========================================================================

	HintText lipgloss.Style
	HintKey  lipgloss.Style

	// ==========================================================================
	// HELP OVERLAY STYLES
	// ==========================================================================

	HelpBox   lipgloss.Style
	HelpTitle lipgloss.Style
	HelpKey   lipgloss.Style
	HelpText  lipgloss.Style

	// ==========================================================================
	// WAITING INDICATOR STYLES
	// ==========================================================================

	Spinner lipgloss.Style

	// ==========================================================================
	// SCROLLBAR STYLES
	// ==========================================================================

	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style

	// ==========================================================================
	// MARKDOWN AND CLI STYLES
	// ==========================================================================

	InlineCode lipgloss.Style
	ErrorText  lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Message pane
	t.ChatPane = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay)

	t.PaneTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SelectedRow = lipgloss.NewStyle().
		Background(SelectionBg)

	// Input box text, one style per mode
	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputTextEditing = lipgloss.NewStyle().
		Foreground(Yellow)

	t.InputTextWaiting = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Hint bar
	t.HintText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.HintKey = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// Help overlay
	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Align(lipgloss.Center)

	t.HelpTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.HelpText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Waiting indicator
	t.Spinner = lipgloss.NewStyle().
		Foreground(Yellow)

	// Scrollbars
	t.ScrollThumb = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ScrollTrack = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Markdown inline code and CLI error output
	t.InlineCode = lipgloss.NewStyle().
		Foreground(Yellow).
		Italic(true)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// PrefixStyle returns the style for a message's role prefix.
func (t *Theme) PrefixStyle(role model.Role) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(RoleColor(role))
}

// InputBox returns the bordered input box style for a mode. The border
// tracks the mode accent so Editing reads yellow and Waiting reads dim.
func (t *Theme) InputBox(mode model.Mode) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ModeBorder(mode))
}

// InputStyle returns the input text style for a mode.
func (t *Theme) InputStyle(mode model.Mode) lipgloss.Style {
	switch mode {
	case model.ModeEditing:
		return t.InputTextEditing
	case model.ModeWaiting:
		return t.InputTextWaiting
	default:
		return t.InputText
	}
}
