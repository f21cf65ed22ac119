// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation state for chatti.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation holds the transcript, the interaction mode and the selection
// cursor. It is mutated only from the UI goroutine (single writer); the
// network side communicates through delta messages, never by touching this
// struct.
type Conversation struct {
	ID       string
	messages []Message

	mode     Mode
	selected int // index of the selected message, -1 when empty

	// PERFORMANCE: strings.Builder avoids quadratic allocations while a
	// response streams in token by token.
	accumulator strings.Builder
}

// NewConversation creates an empty conversation in Normal mode.
func NewConversation() *Conversation {
	return &Conversation{
		ID:       uuid.NewString(),
		selected: -1,
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Mode returns the current interaction mode.
func (c *Conversation) Mode() Mode {
	return c.mode
}

// Messages returns the transcript. Callers must treat it as read-only.
func (c *Conversation) Messages() []Message {
	return c.messages
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Selected returns the index of the selected message, or -1 when the
// transcript is empty.
func (c *Conversation) Selected() int {
	return c.selected
}

// LastMessage returns the trailing message, or nil when empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.messages) == 0 {
		return nil
	}
	return &c.messages[len(c.messages)-1]
}

// PartialResponse returns the accumulated streaming text of the current
// turn. Empty outside a streaming turn.
func (c *Conversation) PartialResponse() string {
	return c.accumulator.String()
}

// =============================================================================
// MODE TRANSITIONS
// =============================================================================

// BeginEditing moves Normal -> Editing. Any other start mode is a no-op.
func (c *Conversation) BeginEditing() bool {
	if c.mode != ModeNormal {
		return false
	}
	c.mode = ModeEditing
	return true
}

// StopEditing moves Editing -> Normal, keeping the transcript untouched.
func (c *Conversation) StopEditing() bool {
	if c.mode != ModeEditing {
		return false
	}
	c.mode = ModeNormal
	return true
}

// Submit records a submitted prompt: the user message is appended, the
// generating placeholder follows it, and the mode becomes Waiting. Only
// valid in Editing mode with non-empty content.
func (c *Conversation) Submit(content string) bool {
	if c.mode != ModeEditing || strings.TrimSpace(content) == "" {
		return false
	}

	c.append(NewUserMessage(content))
	c.append(NewSystemMessage(GeneratingPlaceholder))
	c.mode = ModeWaiting
	return true
}

// =============================================================================
// STREAMING OPERATIONS
// =============================================================================

// StartNewResponse opens the streaming assistant message for the current
// turn. Requires Waiting mode.
func (c *Conversation) StartNewResponse() {
	if c.mode != ModeWaiting {
		return
	}
	c.accumulator.Reset()
	c.append(NewAssistantMessage(""))
}

// UpdateResponse applies one streamed delta to the trailing assistant
// message, creating it if a stray state left none. Deltas are accumulated
// in arrival order; the full accumulated text replaces the trailing content
// each time. Ignored outside Waiting mode, which is what drops late deltas
// after a cancellation.
func (c *Conversation) UpdateResponse(delta string) {
	if c.mode != ModeWaiting {
		return
	}

	c.accumulator.WriteString(delta)

	followed := c.selected == len(c.messages)-1
	if last := c.LastMessage(); last != nil && last.Role == RoleAssistant {
		last.Content = c.accumulator.String()
	} else {
		c.append(NewAssistantMessage(c.accumulator.String()))
	}

	// Keep the cursor pinned to the live message while the user has not
	// scrolled away.
	if followed {
		c.selected = len(c.messages) - 1
	}
}

// AddResponse finalizes the current turn with the given assistant text.
// The streaming partial and the generating placeholder are removed first.
// The mode returns to Normal and the final message becomes selected.
func (c *Conversation) AddResponse(content string) {
	c.closeTurn()
	c.append(NewAssistantMessage(content))
	c.mode = ModeNormal
	c.selected = len(c.messages) - 1
}

// CancelTurn abandons the in-flight turn: the partial response and the
// placeholder are dropped and an informational notice is appended. Only
// valid in Waiting mode.
func (c *Conversation) CancelTurn() {
	if c.mode != ModeWaiting {
		return
	}
	c.closeTurn()
	c.append(NewSystemMessage(CancelledNotice))
	c.mode = ModeNormal
	c.selected = len(c.messages) - 1
}

// AbandonTurn ends a turn that produced nothing (stream closed with no
// content). The partial and placeholder are removed without appending
// anything.
func (c *Conversation) AbandonTurn() {
	if c.mode != ModeWaiting {
		return
	}
	c.closeTurn()
	c.mode = ModeNormal
	if len(c.messages) > 0 {
		c.selected = len(c.messages) - 1
	} else {
		c.selected = -1
	}
}

// closeTurn removes the streaming artifacts of the current turn: the
// trailing partial assistant message while Waiting, then the placeholder
// if it is now trailing. Also resets the accumulator.
func (c *Conversation) closeTurn() {
	if c.mode == ModeWaiting {
		if last := c.LastMessage(); last != nil && last.Role == RoleAssistant {
			c.messages = c.messages[:len(c.messages)-1]
		}
	}
	if last := c.LastMessage(); last != nil && last.IsPlaceholder() {
		c.messages = c.messages[:len(c.messages)-1]
	}
	c.accumulator.Reset()
}

// =============================================================================
// SELECTION
// =============================================================================

// ScrollUp moves the selection one message up, clamped at the top.
func (c *Conversation) ScrollUp() {
	if len(c.messages) == 0 {
		return
	}
	if c.selected > 0 {
		c.selected--
	} else if c.selected < 0 {
		c.selected = 0
	}
}

// ScrollDown moves the selection one message down, clamped at the bottom.
func (c *Conversation) ScrollDown() {
	if len(c.messages) == 0 {
		return
	}
	if c.selected < len(c.messages)-1 {
		c.selected++
	}
}

// append adds a message, keeping the selection pinned to the tail when it
// was already there or nothing was selected yet. A reader who scrolled up
// stays where they are.
func (c *Conversation) append(m Message) {
	followed := c.selected < 0 || c.selected == len(c.messages)-1
	c.messages = append(c.messages, m)
	if followed {
		c.selected = len(c.messages) - 1
	}
}
