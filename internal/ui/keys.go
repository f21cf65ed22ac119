// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the chat screen. The same physical
// key may appear twice when its meaning depends on the mode: Esc stops
// editing in Editing mode and cancels the request in Waiting mode.
type KeyMap struct {
	// Normal mode
	Quit key.Binding
	Edit key.Binding
	Help key.Binding
	Up   key.Binding
	Down key.Binding

	// Editing mode
	Send        key.Binding
	StopEditing key.Binding
	Left        key.Binding
	Right       key.Binding

	// Waiting mode
	Cancel key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "start editing"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "select previous message"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "select next message"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send message"),
		),
		StopEditing: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "scroll input left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "scroll input right"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel request"),
		),
	}
}
