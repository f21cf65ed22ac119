// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for chat completion APIs.
package ollama

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the chat client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota

	// ErrTypeTransport covers request send failures and unreadable bodies.
	ErrTypeTransport

	// ErrTypeAPI covers non-success status codes and server error payloads.
	ErrTypeAPI

	// ErrTypeMalformedLine marks an NDJSON line that failed to parse. It is
	// recovered internally and never reaches the user.
	ErrTypeMalformedLine

	// ErrTypeChannelFull means the delta consumer stopped draining.
	ErrTypeChannelFull

	// ErrTypeCancelled means the user cancelled the request. Informational,
	// not a failure.
	ErrTypeCancelled
)

// Sentinel errors for easy checking.
var (
	ErrChannelFull = &ClientError{Type: ErrTypeChannelFull, Message: "response channel is full"}
	ErrCancelled   = &ClientError{Type: ErrTypeCancelled, Message: "request cancelled"}
)

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// IsCancelled reports whether the error represents a user cancellation.
func IsCancelled(err error) bool {
	if errors.Is(err, ErrCancelled) {
		return true
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeCancelled
	}
	return false
}

// IsChannelFull reports whether the error is a saturated delta channel.
func IsChannelFull(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeChannelFull
	}
	return errors.Is(err, ErrChannelFull)
}

// UserFriendly converts an error into the short description shown in the
// chat transcript. Server-reported errors pass through verbatim; everything
// else maps to a stable phrase so transient network details stay in the log
// file rather than the conversation.
func UserFriendly(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Type {
		case ErrTypeAPI:
			return clientErr.Message
		case ErrTypeTransport:
			return "There was a problem connecting to the server"
		case ErrTypeMalformedLine:
			return "There was an issue processing the server response"
		case ErrTypeChannelFull:
			return "An unexpected error occurred"
		case ErrTypeCancelled:
			return "request cancelled"
		}
	}
	return "An unexpected error occurred"
}
