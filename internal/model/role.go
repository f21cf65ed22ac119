// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation state for chatti.
package model

// =============================================================================
// ROLES
// =============================================================================

// Role identifies who authored a message. The set is closed; rendering code
// switches on it exhaustively instead of comparing strings.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
)

// roleTraits are the rendering-relevant facts about a role. Colors live in
// the ui/styles package; everything else about how a role is presented is
// decided here.
type roleTraits struct {
	name     string
	prefix   string
	markdown bool
}

// roleTable is the single lookup table for role presentation.
var roleTable = [...]roleTraits{
	RoleUser:      {name: "user", prefix: "You: ", markdown: false},
	RoleAssistant: {name: "assistant", prefix: "AI: ", markdown: true},
	RoleSystem:    {name: "system", prefix: "", markdown: false},
}

func (r Role) traits() roleTraits {
	if r < 0 || int(r) >= len(roleTable) {
		return roleTable[RoleSystem]
	}
	return roleTable[r]
}

// String returns the wire name of the role ("user", "assistant", "system").
func (r Role) String() string {
	return r.traits().name
}

// Prefix returns the literal transcript prefix for the role. Continuation
// lines of a wrapped message are indented by this prefix's width.
func (r Role) Prefix() string {
	return r.traits().prefix
}

// RendersMarkdown reports whether messages of this role go through the
// markdown renderer. User and system text is wrapped verbatim.
func (r Role) RendersMarkdown() bool {
	return r.traits().markdown
}

// =============================================================================
// MODES
// =============================================================================

// Mode is the interaction mode of the conversation view.
type Mode int

const (
	// ModeNormal browses the transcript; q quits, e edits, ? shows help.
	ModeNormal Mode = iota

	// ModeEditing composes a message in the input box.
	ModeEditing

	// ModeWaiting means a request is in flight; only Escape (cancel) acts.
	ModeWaiting
)

// String returns a human-readable mode name for logs and tests.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeEditing:
		return "editing"
	case ModeWaiting:
		return "waiting"
	default:
		return "unknown"
	}
}
