// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for chat completion APIs.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// =============================================================================
// CLIENT
// =============================================================================

const (
	// requestTimeout bounds non-streaming requests.
	requestTimeout = 30 * time.Second

	// streamChannelCapacity is the delta queue size between the network
	// reader and the UI consumer.
	streamChannelCapacity = 100

	// sendTimeout is how long a delta send may block on a full channel
	// before the stream is failed. The consumer polls every ~100ms, so a
	// queue that stays full this long is not being drained.
	sendTimeout = 5 * time.Second
)

// Client handles communication with a chat completion endpoint.
// It is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client bound to the given chat endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Endpoint returns the chat endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the server behind the endpoint is reachable.
// It probes the server root, not the chat path, so it works before any
// model is loaded.
func (c *Client) CheckRunning(ctx context.Context) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "invalid endpoint URL", Cause: err}
	}
	root := u.Scheme + "://" + u.Host

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "server is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeAPI,
			Message: "unexpected status from server: " + resp.Status,
		}
	}
	return nil
}

// =============================================================================
// NON-STREAMING CHAT
// =============================================================================

// Chat sends a request and returns the complete response as one document.
// The request's Stream field is forced to false.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.Stream = false

	resp, err := c.post(ctx, c.httpClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// StreamCallback is called for each decoded chunk, in arrival order.
type StreamCallback func(chunk StreamChunk)

// ChatStream sends a streaming request and calls the callback for each
// chunk until the done sentinel, the end of the body, or an error. The
// request's Stream field is forced to true.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest, callback StreamCallback) error {
	req.Stream = true

	// No client timeout for streaming; generation can outlast any fixed
	// deadline. Cancellation arrives via ctx.
	streamClient := &http.Client{}

	resp, err := c.post(ctx, streamClient, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	reader := NewStreamReader(resp.Body)
	return reader.Process(ctx, callback)
}

// ChatStreamChan sends a streaming request and returns a bounded channel of
// chunks. The channel is closed when the stream ends. Errors, including a
// saturated channel, are delivered as a final chunk with Error set.
func (c *Client) ChatStreamChan(ctx context.Context, req ChatRequest) <-chan StreamChunk {
	ch := make(chan StreamChunk, streamChannelCapacity)

	go func() {
		defer close(ch)

		// A saturation failure must stop the network read as well; the
		// derived context lets the send path abort Process.
		streamCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		var sendErr error
		err := c.ChatStream(streamCtx, req, func(chunk StreamChunk) {
			if sendErr != nil {
				return
			}

			select {
			case ch <- chunk:
			case <-streamCtx.Done():
			case <-time.After(sendTimeout):
				sendErr = ErrChannelFull
				cancel()
			}
		})

		if sendErr != nil {
			err = sendErr
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			select {
			case ch <- StreamChunk{Error: err, Done: true}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// post marshals and sends a chat request, classifying failures.
func (c *Client) post(ctx context.Context, client *http.Client, req ChatRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, &ClientError{Type: ErrTypeTransport, Message: "request failed", Cause: err}
	}
	return resp, nil
}

// checkStatus converts a non-success response into an API error carrying
// the server-provided error text when present. The body is consumed on the
// error path.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var payload apiError
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return &ClientError{Type: ErrTypeAPI, Message: payload.Error}
	}
	return &ClientError{Type: ErrTypeAPI, Message: "unknown API error"}
}
