// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command for the chatti CLI.
//
// Handles "chatti ask", which sends one question and prints the answer to
// stdout. On a terminal the finished answer is re-rendered as markdown;
// piped output streams through as plain text so it stays machine-readable.
//
// Examples:
//   chatti ask "What is the capital of France?"
//   echo "explain this error" | chatti ask
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/logging"
	"github.com/jeranaias/chatti/internal/ollama"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders finished answers for terminal display.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		// Fall back to plain text when the renderer cannot initialize
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display. Returns the
// original content if rendering fails or the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// QUESTION ASSEMBLY
// =============================================================================

// joinQuestion builds the question from the remaining command line words.
func joinQuestion(words []string) string {
	return strings.TrimSpace(strings.Join(words, " "))
}

// readStdinQuestion reads the question from stdin when it is a pipe rather
// than a terminal. Returns "" when stdin has nothing to offer.
func readStdinQuestion() string {
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return ""
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// Ask sends one question and prints the answer to stdout.
func Ask(cfg *config.Config, words []string) error {
	question := joinQuestion(words)
	if question == "" {
		question = readStdinQuestion()
	}
	if question == "" {
		return errors.New(`no question provided. Usage: chatti ask "your question"`)
	}

	client := ollama.NewClient(cfg.Endpoint)
	ctx := context.Background()

	if err := client.CheckRunning(ctx); err != nil {
		logging.Errorf("ask: server check failed: %v", err)
		return errors.New(ollama.UserFriendly(err))
	}

	req := ollama.ChatRequest{
		Model:       cfg.Model,
		Messages:    []ollama.Message{ollama.NewUserMessage(question)},
		Stream:      cfg.Stream,
		Temperature: cfg.Temperature,
	}

	if cfg.Stream {
		return askStreaming(ctx, client, req)
	}
	return askComplete(ctx, client, req)
}

// askStreaming prints the answer as it arrives. On a terminal the deltas are
// collected and the finished answer re-rendered as markdown instead, so
// formatting spans the whole document.
func askStreaming(ctx context.Context, client *ollama.Client, req ollama.ChatRequest) error {
	useMarkdown := IsStdoutTTY()

	var full strings.Builder
	var streamErr error

	err := client.ChatStream(ctx, req, func(chunk ollama.StreamChunk) {
		if chunk.Error != nil {
			streamErr = chunk.Error
			return
		}
		full.WriteString(chunk.Content)
		if !useMarkdown {
			fmt.Print(chunk.Content)
		}
	})
	if err == nil {
		err = streamErr
	}
	if err != nil {
		logging.Errorf("ask: streaming failed: %v", err)
		return errors.New(ollama.UserFriendly(err))
	}

	if useMarkdown {
		fmt.Print(renderMarkdown(full.String()))
	}
	fmt.Println()
	return nil
}

// askComplete requests the whole answer as one document.
func askComplete(ctx context.Context, client *ollama.Client, req ollama.ChatRequest) error {
	resp, err := client.Chat(ctx, req)
	if err != nil {
		logging.Errorf("ask: request failed: %v", err)
		return errors.New(ollama.UserFriendly(err))
	}

	answer := resp.Message.Content
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Print(answer)
	}
	fmt.Println()
	return nil
}
