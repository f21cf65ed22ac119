// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the chatti TUI.

This package contains the small set of widgets the chat view composes on
top of the Bubble Tea and Lip Gloss libraries.

# Core Components

Spinner (spinner.go) - Deterministic braille spinner shown beside the
generating placeholder while a request is in flight.

ScrollBar / HScrollBar (scrollbar.go) - Vertical transcript position
indicator and the horizontal overflow indicator for the input box.

# Key Types

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	sb := components.NewScrollBar(theme)
	sb.SetHeight(20)
	sb.SetContent(len(messages), visibleRows)
	sb.SetPosition(selected)
	view := sb.View()

The spinner advances only when the caller asks it to, so rendering the
same frame twice yields the same glyph:

	sp := components.NewSpinner()
	glyph := sp.NextFrame() // advance on the UI tick
	same := sp.Frame()      // read without advancing
*/
package components
