// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for chat completion APIs.
package ollama

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message represents a chat message in a request body.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatRequest is the request body for the chat endpoint. Temperature is a
// top-level field, matching what llama-server style endpoints accept.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature float64   `json:"temperature"`
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the single-document response of a non-streaming request.
type ChatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// streamLine is the wire shape of one NDJSON line. Error is set by servers
// that report failures mid-stream instead of via HTTP status.
type streamLine struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done  bool   `json:"done"`
	Error string `json:"error"`
}

// apiError is the JSON error payload servers return on non-success status.
type apiError struct {
	Error string `json:"error"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is one decoded delta delivered to the consumer.
type StreamChunk struct {
	// Content is the text delta from this line, possibly empty.
	Content string

	// Done is true on the final chunk of the stream.
	Done bool

	// Model is the model name reported by the server, when present.
	Model string

	// Error terminates the stream when set. A chunk with Error set always
	// has Done true.
	Error error
}
