// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation state for chatti.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/chatti/internal/util"
)

// =============================================================================
// TRANSCRIPT CONSTANTS
// =============================================================================

const (
	// GeneratingPlaceholder is the transient system entry shown while a
	// request is in flight. It is removed when the turn completes.
	GeneratingPlaceholder = "Generating..."

	// CancelledNotice is appended when the user cancels a request.
	CancelledNotice = "request cancelled"
)

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single transcript entry.
type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// NewMessage creates a message with a fresh ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return NewMessage(RoleSystem, content)
}

// IsPlaceholder reports whether this is the transient generating entry.
func (m Message) IsPlaceholder() bool {
	return m.Role == RoleSystem && m.Content == GeneratingPlaceholder
}

// Preview returns a shortened single-line form for logs. Runs of
// whitespace, including newlines, collapse to single spaces.
func (m Message) Preview(maxRunes int) string {
	flat := strings.Join(strings.Fields(m.Content), " ")
	return util.TruncateRunes(flat, maxRunes)
}
