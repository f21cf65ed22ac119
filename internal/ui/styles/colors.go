// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatti TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatti/internal/model"
)

// =============================================================================
// ROLE COLORS
// =============================================================================

// Blue - user messages, shortcut keys in the help overlay
var Blue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// Green - assistant messages
var Green = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Yellow - system messages, Editing-mode accents, inline code
var Yellow = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// roleColors maps each role to its transcript color, indexed by model.Role.
var roleColors = [...]lipgloss.AdaptiveColor{
	model.RoleUser:      Blue,
	model.RoleAssistant: Green,
	model.RoleSystem:    Yellow,
}

// RoleColor returns the transcript color for a role. Out-of-range values
// fall back to the system color, mirroring the role trait table.
func RoleColor(role model.Role) lipgloss.AdaptiveColor {
	if role < 0 || int(role) >= len(roleColors) {
		return Yellow
	}
	return roleColors[role]
}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - error output on the plain CLI surfaces
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Overlay - pane and input borders in Normal mode
var Overlay = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// SelectionBg - background highlight for the selected transcript row
var SelectionBg = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#44475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - hint bar text, help body text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Waiting-mode input text and border, scrollbar tracks
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MODE COLORS
// =============================================================================

// modeBorders maps each input mode to the input box accent color, indexed
// by model.Mode. Normal keeps the neutral border, Editing turns yellow and
// Waiting dims while a request is in flight.
var modeBorders = [...]lipgloss.AdaptiveColor{
	model.ModeNormal:  Overlay,
	model.ModeEditing: Yellow,
	model.ModeWaiting: TextMuted,
}

// ModeBorder returns the input box border color for a mode.
func ModeBorder(mode model.Mode) lipgloss.AdaptiveColor {
	if mode < 0 || int(mode) >= len(modeBorders) {
		return Overlay
	}
	return modeBorders[mode]
}
