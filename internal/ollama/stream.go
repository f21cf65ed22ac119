// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for chat completion APIs.
package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/time/rate"

	"github.com/jeranaias/chatti/internal/logging"
	"github.com/jeranaias/chatti/internal/util"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader decodes an NDJSON streaming body line by line.
//
// Tolerance rules: each line is decoded as UTF-8 lossily (invalid sequences
// become U+FFFD instead of failing the stream), and a line that does not
// parse as JSON is skipped. Both cases are logged at debug level. The first
// line with done=true ends the stream; bytes after it are never read.
type StreamReader struct {
	reader *bufio.Reader
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
	model       string
	skipped     int

	// Caps malformed-line logging so a broken server cannot flood the log.
	// The skipped counter still counts every tolerated line.
	logLimiter *rate.Limiter
}

// NewStreamReader creates a stream reader from a response body.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader:     bufio.NewReader(r),
		logLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// Process reads the stream and calls the callback for each chunk, in order.
// Blocks until the done sentinel, end of body, or context cancellation.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return &ClientError{Type: ErrTypeTransport, Message: "failed to read stream", Cause: err}
			}

			if chunk == nil {
				continue
			}

			if chunk.Error != nil {
				return chunk.Error
			}

			callback(*chunk)
			if chunk.Done {
				return nil
			}
		}
	}
}

// readChunk reads and parses a single line. A nil chunk with nil error
// means the line was empty or malformed and should be skipped.
func (s *StreamReader) readChunk() (*StreamChunk, error) {
	raw, err := s.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(raw) == 0 {
			return nil, io.EOF
		}
		// A final line without trailing newline is still processed.
		if len(raw) == 0 {
			return nil, err
		}
	}

	// UNICODE: lossy decode keeps the stream alive across invalid bytes.
	decoded, _ := unicode.UTF8.NewDecoder().Bytes(raw)
	text := strings.TrimRight(string(decoded), "\r\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var line streamLine
	if err := json.Unmarshal([]byte(text), &line); err != nil {
		// Malformed lines are protocol tolerance, not failures.
		s.skipped++
		if s.logLimiter.Allow() {
			logging.Debugf("skipped malformed stream line: %s", util.TruncateRunes(text, 120))
		}
		return nil, nil
	}

	// Servers may report failures as an in-band error line.
	if line.Error != "" {
		return &StreamChunk{
			Done:  true,
			Error: &ClientError{Type: ErrTypeAPI, Message: line.Error},
		}, nil
	}

	if line.Model != "" {
		s.model = line.Model
	}

	if line.Message.Content != "" {
		s.accumulator.WriteString(line.Message.Content)
	}

	return &StreamChunk{
		Content: line.Message.Content,
		Done:    line.Done,
		Model:   s.model,
	}, nil
}

// Accumulated returns all content seen so far, joined in arrival order.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// Model returns the model name reported by the stream, if any.
func (s *StreamReader) Model() string {
	return s.model
}

// SkippedLines returns how many malformed lines were tolerated.
func (s *StreamReader) SkippedLines() int {
	return s.skipped
}
