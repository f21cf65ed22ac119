// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the conversation state for chatti.
//
// A Conversation is a list of messages plus an interaction mode (Normal,
// Editing, Waiting) and a selection cursor. All mutation goes through the
// operations on Conversation; the UI goroutine is the only writer, so the
// type carries no locks.
//
// # Streaming Turn Lifecycle
//
//	Submit("question")   ->  user message + "Generating..." placeholder, mode Waiting
//	StartNewResponse()   ->  empty assistant message appended
//	UpdateResponse(d)    ->  accumulating delta rewrites the trailing assistant message
//	AddResponse(full)    ->  placeholder and partial replaced by final text, mode Normal
//	CancelTurn()         ->  placeholder and partial dropped, "request cancelled" notice, mode Normal
package model
