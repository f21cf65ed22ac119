// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive prompt loop for the chatti CLI.
//
// Handles "chatti repl", a line-oriented alternative to the full screen
// interface. Each line is sent as its own question and the answer streams
// inline. History lives in memory for the session only; Ctrl+C during a
// generation cancels that generation, Ctrl+D or "exit" leaves the loop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/logging"
	"github.com/jeranaias/chatti/internal/ollama"
	"github.com/jeranaias/chatti/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().Foreground(styles.Green).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(styles.TextMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(styles.Rose)
)

// =============================================================================
// REPL LOOP
// =============================================================================

// Repl runs the interactive prompt loop until the user exits.
func Repl(cfg *config.Config) error {
	rl := liner.NewLiner()
	rl.SetCtrlCAborts(true)
	defer rl.Close()

	client := ollama.NewClient(cfg.Endpoint)

	if err := client.CheckRunning(context.Background()); err != nil {
		logging.Errorf("repl: server check failed: %v", err)
		return errors.New(ollama.UserFriendly(err))
	}

	fmt.Printf("chatti repl, model %s at %s\n", cfg.Model, cfg.Endpoint)
	fmt.Println(infoStyle.Render("Ctrl+C cancels a running generation. Ctrl+D or \"exit\" quits."))
	fmt.Println()

	// Ctrl+C at the prompt is swallowed by liner; during a generation the
	// terminal is cooked and SIGINT lands here, where it cancels only the
	// turn in flight.
	var mu sync.Mutex
	var cancelTurn context.CancelFunc

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		for range sigChan {
			mu.Lock()
			if cancelTurn != nil {
				cancelTurn()
			}
			mu.Unlock()
		}
	}()

	for {
		line, err := rl.Prompt(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if isExitCommand(question) {
			return nil
		}
		rl.AppendHistory(question)

		ctx, cancel := context.WithCancel(context.Background())
		mu.Lock()
		cancelTurn = cancel
		mu.Unlock()

		runTurn(ctx, client, cfg, question)

		mu.Lock()
		cancelTurn = nil
		mu.Unlock()
		cancel()
	}
}

// isExitCommand reports whether the line asks to leave the loop.
func isExitCommand(line string) bool {
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}

// runTurn sends one question and streams the answer inline. Errors are
// printed rather than returned so the loop survives a failed turn.
func runTurn(ctx context.Context, client *ollama.Client, cfg *config.Config, question string) {
	req := ollama.ChatRequest{
		Model:       cfg.Model,
		Messages:    []ollama.Message{ollama.NewUserMessage(question)},
		Stream:      cfg.Stream,
		Temperature: cfg.Temperature,
	}

	if !cfg.Stream {
		resp, err := client.Chat(ctx, req)
		if err != nil {
			reportTurnError(err)
			return
		}
		fmt.Println(resp.Message.Content)
		fmt.Println()
		return
	}

	var streamErr error
	err := client.ChatStream(ctx, req, func(chunk ollama.StreamChunk) {
		if chunk.Error != nil {
			streamErr = chunk.Error
			return
		}
		fmt.Print(chunk.Content)
	})
	if err == nil {
		err = streamErr
	}
	if err != nil {
		fmt.Println()
		reportTurnError(err)
		return
	}
	fmt.Println()
	fmt.Println()
}

// reportTurnError prints a turn failure without ending the session.
func reportTurnError(err error) {
	if ollama.IsCancelled(err) {
		fmt.Println(infoStyle.Render("[generation cancelled]"))
		fmt.Println()
		return
	}
	logging.Errorf("repl: turn failed: %v", err)
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+ollama.UserFriendly(err)))
	fmt.Println()
}
