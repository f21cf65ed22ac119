// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for chat completion APIs.
//
// The client speaks the Ollama /api/chat protocol: a single JSON document
// for non-streaming requests, or newline-delimited JSON (NDJSON) when
// streaming. Each NDJSON line carries a message.content delta and a done
// flag; the line that sets done terminates the stream.
//
// # Key Types
//
//   - Client: HTTP client bound to one endpoint URL
//   - ChatRequest: request body with model, messages, stream, temperature
//   - StreamChunk: one decoded delta from a streaming response
//   - ClientError: categorized error with a user-facing description
//
// # Usage
//
// Non-streaming:
//
//	client := ollama.NewClient(cfg.Endpoint)
//	resp, err := client.Chat(ctx, req)
//
// Streaming over a channel:
//
//	for chunk := range client.ChatStreamChan(ctx, req) {
//	    if chunk.Error != nil { ... }
//	    print(chunk.Content)
//	}
//
// # Protocol Tolerance
//
// Streaming bodies are decoded line by line with lossy UTF-8 handling, and
// lines that fail to parse as JSON are skipped rather than failing the
// stream. Skipped lines are visible at debug log level.
package ollama
