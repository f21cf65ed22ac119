// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatti/internal/model"
	"github.com/jeranaias/chatti/internal/ollama"
)

// =============================================================================
// CHUNK POLL RACE
// =============================================================================

func TestWaitForChunkDeliversInOrder(t *testing.T) {
	ch := make(chan ollama.StreamChunk, 3)
	ch <- ollama.StreamChunk{Content: "a"}
	ch <- ollama.StreamChunk{Content: "b"}
	ch <- ollama.StreamChunk{Content: "c"}

	var got []string
	for i := 0; i < 3; i++ {
		msg := waitForChunk("turn", ch)()
		chunkMsg, ok := msg.(StreamChunkMsg)
		require.True(t, ok, "message %d is %T, want StreamChunkMsg", i, msg)
		require.Equal(t, "turn", chunkMsg.TurnID)
		got = append(got, chunkMsg.Chunk.Content)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestWaitForChunkPrefersDataOverTimer(t *testing.T) {
	ch := make(chan ollama.StreamChunk, 1)
	ch <- ollama.StreamChunk{Content: "fast", Done: true}

	start := time.Now()
	msg := waitForChunk("turn", ch)()
	require.Less(t, time.Since(start), chunkPollWindow)

	chunkMsg, ok := msg.(StreamChunkMsg)
	require.True(t, ok, "message is %T, want StreamChunkMsg", msg)
	require.Equal(t, "fast", chunkMsg.Chunk.Content)
	require.True(t, chunkMsg.Chunk.Done)
}

func TestWaitForChunkTimesOutOnSilence(t *testing.T) {
	ch := make(chan ollama.StreamChunk)

	start := time.Now()
	msg := waitForChunk("turn", ch)()
	elapsed := time.Since(start)

	timeoutMsg, ok := msg.(StreamTimeoutMsg)
	require.True(t, ok, "message is %T, want StreamTimeoutMsg", msg)
	require.Equal(t, "turn", timeoutMsg.TurnID)
	require.GreaterOrEqual(t, elapsed, chunkPollWindow)
	require.Less(t, elapsed, 10*chunkPollWindow)
}

func TestWaitForChunkReportsClose(t *testing.T) {
	ch := make(chan ollama.StreamChunk)
	close(ch)

	msg := waitForChunk("turn", ch)()
	closedMsg, ok := msg.(StreamClosedMsg)
	require.True(t, ok, "message is %T, want StreamClosedMsg", msg)
	require.Equal(t, "turn", closedMsg.TurnID)
}

// =============================================================================
// FULL TURN LOOP
// =============================================================================

// driveTurn runs the poll/update cycle the way the runtime would, feeding each
// produced message back into Update until the turn stops re-arming.
func driveTurn(t *testing.T, m Model, ch chan ollama.StreamChunk) Model {
	t.Helper()

	var current tea.Model = m
	cmd := waitForChunk(m.turnID, ch)
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 200, "turn did not settle")
		current, cmd = current.Update(cmd())
	}
	return current.(Model)
}

func TestTurnLoopAssemblesDeltasInOrder(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")

	ch := make(chan ollama.StreamChunk, 8)
	m.stream = ch

	parts := []string{"the ", "quick ", "brown ", "fox"}
	go func() {
		for _, p := range parts {
			ch <- ollama.StreamChunk{Content: p}
		}
		ch <- ollama.StreamChunk{Done: true}
		close(ch)
	}()

	m = driveTurn(t, m, ch)

	last := m.conv.LastMessage()
	require.NotNil(t, last)
	require.Equal(t, model.RoleAssistant, last.Role)
	require.Equal(t, strings.Join(parts, ""), last.Content)
	require.Equal(t, model.ModeNormal, m.conv.Mode())
	require.Empty(t, m.turnID)
}

func TestTurnLoopSurvivesSlowProducer(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")

	ch := make(chan ollama.StreamChunk)
	m.stream = ch

	// Gaps longer than the poll window force timeout re-arms between deltas.
	go func() {
		time.Sleep(chunkPollWindow + 20*time.Millisecond)
		ch <- ollama.StreamChunk{Content: "slow "}
		time.Sleep(chunkPollWindow + 20*time.Millisecond)
		ch <- ollama.StreamChunk{Content: "reply", Done: true}
		close(ch)
	}()

	m = driveTurn(t, m, ch)

	last := m.conv.LastMessage()
	require.NotNil(t, last)
	require.Equal(t, "slow reply", last.Content)
	require.Equal(t, model.ModeNormal, m.conv.Mode())
}

func TestTurnLoopClosedWithoutDoneStillFinishes(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")

	ch := make(chan ollama.StreamChunk, 2)
	m.stream = ch

	// A producer that dies mid-stream closes the channel without a done
	// marker. The partial text must still be finalized.
	ch <- ollama.StreamChunk{Content: "partial"}
	close(ch)

	m = driveTurn(t, m, ch)

	last := m.conv.LastMessage()
	require.NotNil(t, last)
	require.Equal(t, model.RoleAssistant, last.Role)
	require.Equal(t, "partial", last.Content)
	require.Equal(t, model.ModeNormal, m.conv.Mode())
}
