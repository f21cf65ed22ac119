// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/model"
	"github.com/jeranaias/chatti/internal/ollama"
	"github.com/jeranaias/chatti/internal/ui/styles"
)

// The endpoint is never reachable; tests drive the update loop by hand and
// never execute the returned network commands.
const testEndpoint = "http://127.0.0.1:0/api/chat"

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(styles.NewTheme(), config.Default(), ollama.NewClient(testEndpoint), nil)
	return resize(t, m, 80, 24)
}

func resize(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func pressRune(t *testing.T, m Model, r rune) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model)
}

func pressKey(t *testing.T, m Model, kt tea.KeyType) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: kt})
	return next.(Model)
}

// beginTurn types the prompt and submits it, leaving the model in Waiting.
func beginTurn(t *testing.T, m Model, prompt string) Model {
	t.Helper()
	m = pressRune(t, m, 'e')
	for _, r := range prompt {
		m = pressRune(t, m, r)
	}
	m = pressKey(t, m, tea.KeyEnter)
	if m.conv.Mode() != model.ModeWaiting {
		t.Fatalf("after submit mode = %v, want %v", m.conv.Mode(), model.ModeWaiting)
	}
	if m.turnID == "" {
		t.Fatalf("after submit no turn id was assigned")
	}
	return m
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// =============================================================================
// MODE TRANSITIONS
// =============================================================================

func TestNormalEnterEditing(t *testing.T) {
	m := newTestModel(t)
	if m.conv.Mode() != model.ModeNormal {
		t.Fatalf("fresh model mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}

	m = pressRune(t, m, 'e')
	if m.conv.Mode() != model.ModeEditing {
		t.Errorf("after e mode = %v, want %v", m.conv.Mode(), model.ModeEditing)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not produce a quit message")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, '?')
	if !m.showHelp {
		t.Errorf("? did not open the help overlay")
	}
	m = pressRune(t, m, '?')
	if m.showHelp {
		t.Errorf("second ? did not close the help overlay")
	}
}

func TestUnrecognizedKeysAreNoOps(t *testing.T) {
	m := newTestModel(t)
	before := m.conv.Len()

	m = pressRune(t, m, 'z')
	m = pressKey(t, m, tea.KeyTab)
	m = pressKey(t, m, tea.KeyEsc)

	if m.conv.Mode() != model.ModeNormal || m.conv.Len() != before {
		t.Errorf("unrecognized keys changed state: mode=%v len=%d", m.conv.Mode(), m.conv.Len())
	}
}

// =============================================================================
// EDITING
// =============================================================================

func TestSubmitFlow(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')
	m = pressRune(t, m, 'h')
	m = pressRune(t, m, 'i')

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Errorf("submit returned no command")
	}

	msgs := m.conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("after submit transcript has %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "hi" {
		t.Errorf("first message = (%v, %q), want (user, \"hi\")", msgs[0].Role, msgs[0].Content)
	}
	if msgs[1].Role != model.RoleSystem || msgs[1].Content != model.GeneratingPlaceholder {
		t.Errorf("second message = (%v, %q), want the generating placeholder", msgs[1].Role, msgs[1].Content)
	}
	if m.conv.Mode() != model.ModeWaiting {
		t.Errorf("after submit mode = %v, want %v", m.conv.Mode(), model.ModeWaiting)
	}
	if len(m.input) != 0 || m.inputScroll != 0 {
		t.Errorf("submit left input %q scroll %d, want empty at 0", string(m.input), m.inputScroll)
	}
}

func TestEditingBackspace(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')
	for _, r := range "abc" {
		m = pressRune(t, m, r)
	}
	m = pressKey(t, m, tea.KeyBackspace)
	m = pressKey(t, m, tea.KeyEnter)

	if got := m.conv.Messages()[0].Content; got != "ab" {
		t.Errorf("submitted %q, want %q", got, "ab")
	}
}

func TestEditingSpace(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')
	m = pressRune(t, m, 'a')
	m = pressKey(t, m, tea.KeySpace)
	m = pressRune(t, m, 'b')
	m = pressKey(t, m, tea.KeyEnter)

	if got := m.conv.Messages()[0].Content; got != "a b" {
		t.Errorf("submitted %q, want %q", got, "a b")
	}
}

func TestEditingEscapeKeepsBuffer(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')
	m = pressRune(t, m, 'x')
	m = pressKey(t, m, tea.KeyEsc)

	if m.conv.Mode() != model.ModeNormal {
		t.Errorf("after Esc mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}
	if m.conv.Len() != 0 {
		t.Errorf("Esc sent a message: transcript has %d entries", m.conv.Len())
	}
	if string(m.input) != "x" {
		t.Errorf("Esc dropped the compose buffer: %q", string(m.input))
	}
}

func TestBlankSubmitStaysEditing(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')
	m = pressKey(t, m, tea.KeySpace)
	m = pressKey(t, m, tea.KeyEnter)

	if m.conv.Mode() != model.ModeEditing {
		t.Errorf("blank submit left mode %v, want %v", m.conv.Mode(), model.ModeEditing)
	}
	if m.conv.Len() != 0 {
		t.Errorf("blank submit appended %d messages", m.conv.Len())
	}
}

func TestInputWindowFollowsTail(t *testing.T) {
	m := newTestModel(t)
	m = pressRune(t, m, 'e')

	visible := m.inputInnerWidth()
	for i := 0; i < visible+4; i++ {
		m = pressRune(t, m, 'a')
	}
	if m.inputScroll != 4 {
		t.Fatalf("after overflow inputScroll = %d, want 4", m.inputScroll)
	}

	m = pressKey(t, m, tea.KeyLeft)
	if m.inputScroll != 3 {
		t.Errorf("after Left inputScroll = %d, want 3", m.inputScroll)
	}

	for i := 0; i < 10; i++ {
		m = pressKey(t, m, tea.KeyRight)
	}
	if m.inputScroll != 4 {
		t.Errorf("Right overran the clamp: inputScroll = %d, want 4", m.inputScroll)
	}

	for i := 0; i < 20; i++ {
		m = pressKey(t, m, tea.KeyLeft)
	}
	if m.inputScroll != 0 {
		t.Errorf("Left underran the clamp: inputScroll = %d, want 0", m.inputScroll)
	}
}

// =============================================================================
// SELECTION
// =============================================================================

func TestSelectionScrollClamps(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")
	id := m.turnID
	next, _ := m.Update(StreamChunkMsg{TurnID: id, Chunk: ollama.StreamChunk{Content: "hello", Done: true}})
	m = next.(Model)

	if m.conv.Selected() != 1 {
		t.Fatalf("selection = %d, want 1 (last message)", m.conv.Selected())
	}

	m = pressKey(t, m, tea.KeyUp)
	if m.conv.Selected() != 0 {
		t.Errorf("after Up selection = %d, want 0", m.conv.Selected())
	}
	m = pressKey(t, m, tea.KeyUp)
	if m.conv.Selected() != 0 {
		t.Errorf("Up ran past the top: selection = %d", m.conv.Selected())
	}
	m = pressKey(t, m, tea.KeyDown)
	m = pressKey(t, m, tea.KeyDown)
	if m.conv.Selected() != 1 {
		t.Errorf("Down ran past the bottom: selection = %d", m.conv.Selected())
	}
}

// =============================================================================
// STREAMING
// =============================================================================

func TestStreamChunkFlow(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")
	id := m.turnID

	next, cmd := m.Update(StreamChunkMsg{TurnID: id, Chunk: ollama.StreamChunk{Content: "He"}})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("delta did not re-arm the stream")
	}
	if m.conv.PartialResponse() != "He" {
		t.Errorf("partial = %q, want %q", m.conv.PartialResponse(), "He")
	}

	next, _ = m.Update(StreamChunkMsg{TurnID: id, Chunk: ollama.StreamChunk{Content: "llo", Done: true}})
	m = next.(Model)

	last := m.conv.LastMessage()
	if last == nil || last.Role != model.RoleAssistant || last.Content != "Hello" {
		t.Fatalf("final message = %+v, want assistant %q", last, "Hello")
	}
	if m.conv.Len() != 2 {
		t.Errorf("transcript has %d messages, want 2 (placeholder replaced)", m.conv.Len())
	}
	if m.conv.Mode() != model.ModeNormal {
		t.Errorf("after done mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}
	if m.turnID != "" || m.stream != nil {
		t.Errorf("turn state not cleared: id=%q stream=%v", m.turnID, m.stream != nil)
	}
}

func TestStreamCloseWithoutContentAbandons(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")
	id := m.turnID

	next, _ := m.Update(StreamClosedMsg{TurnID: id})
	m = next.(Model)

	if m.conv.Len() != 1 {
		t.Fatalf("transcript has %d messages, want only the user prompt", m.conv.Len())
	}
	if m.conv.Mode() != model.ModeNormal {
		t.Errorf("mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}
}

func TestStreamTimeoutRearms(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")

	_, cmd := m.Update(StreamTimeoutMsg{TurnID: m.turnID})
	if cmd == nil {
		t.Errorf("timeout for the live turn did not re-arm")
	}

	_, cmd = m.Update(StreamTimeoutMsg{TurnID: "stale"})
	if cmd != nil {
		t.Errorf("timeout for a stale turn re-armed")
	}
}

func TestCancelWaiting(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")
	oldID := m.turnID

	m = pressKey(t, m, tea.KeyEsc)

	if m.conv.Mode() != model.ModeNormal {
		t.Fatalf("after Esc mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}
	last := m.conv.LastMessage()
	if last == nil || last.Role != model.RoleSystem || last.Content != model.CancelledNotice {
		t.Fatalf("after Esc last message = %+v, want the cancelled notice", last)
	}
	if m.turnID != "" {
		t.Errorf("turn id survived cancellation: %q", m.turnID)
	}

	// Late deltas for the cancelled turn are drained without effect.
	before := m.conv.Len()
	next, cmd := m.Update(StreamChunkMsg{TurnID: oldID, Chunk: ollama.StreamChunk{Content: "late"}})
	m = next.(Model)
	if cmd != nil {
		t.Errorf("stale chunk re-armed the stream")
	}
	if m.conv.Len() != before || m.conv.PartialResponse() != "" {
		t.Errorf("stale chunk mutated the transcript")
	}
}

func TestStreamErrorSurfaced(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")
	id := m.turnID

	apiErr := &ollama.ClientError{Type: ollama.ErrTypeAPI, Message: "model not found"}
	next, cmd := m.Update(StreamChunkMsg{TurnID: id, Chunk: ollama.StreamChunk{Error: apiErr, Done: true}})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("error report did not schedule the pause")
	}

	last := m.conv.LastMessage()
	if last == nil || last.Role != model.RoleAssistant {
		t.Fatalf("error not surfaced in the transcript: %+v", last)
	}
	if !strings.HasPrefix(last.Content, "error: model not found") {
		t.Errorf("error text = %q, want prefix %q", last.Content, "error: model not found")
	}
	if !strings.Contains(last.Content, "please check the log file at: ") {
		t.Errorf("error text lacks the log pointer: %q", last.Content)
	}
	if m.conv.Mode() != model.ModeNormal {
		t.Errorf("after error mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}

	// The turn is kept through the pause so the drain can match its id.
	if m.turnID != id {
		t.Fatalf("turn id dropped before the drain")
	}
	next, cmd = m.Update(ErrorPauseMsg{TurnID: id})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("pause did not re-arm the drain")
	}
	next, _ = m.Update(StreamClosedMsg{TurnID: id})
	m = next.(Model)
	if m.turnID != "" {
		t.Errorf("turn state not cleared after the drain")
	}
	if last := m.conv.LastMessage(); last == nil || !strings.HasPrefix(last.Content, "error: ") {
		t.Errorf("drain disturbed the surfaced error: %+v", last)
	}
}

func TestNonStreamingCompletion(t *testing.T) {
	cfg := config.Default()
	cfg.Stream = false
	m := New(styles.NewTheme(), cfg, ollama.NewClient(testEndpoint), nil)
	m = resize(t, m, 80, 24)
	m = beginTurn(t, m, "hi")

	if m.stream != nil {
		t.Fatalf("non-streaming submit opened a delta channel")
	}

	next, _ := m.Update(CompletionMsg{TurnID: m.turnID, Content: "done"})
	m = next.(Model)

	last := m.conv.LastMessage()
	if last == nil || last.Role != model.RoleAssistant || last.Content != "done" {
		t.Fatalf("final message = %+v, want assistant %q", last, "done")
	}
	if m.conv.Mode() != model.ModeNormal {
		t.Errorf("mode = %v, want %v", m.conv.Mode(), model.ModeNormal)
	}
}

// =============================================================================
// SPINNER
// =============================================================================

func TestSpinnerTickAdvancesWhileWaiting(t *testing.T) {
	m := newTestModel(t)
	m = beginTurn(t, m, "hi")

	before := m.spin.Frame()
	next, cmd := m.Update(SpinnerTickMsg{TurnID: m.turnID})
	m = next.(Model)
	if cmd == nil {
		t.Errorf("tick did not re-arm while waiting")
	}
	if m.spin.Frame() == before {
		t.Errorf("tick did not advance the spinner")
	}

	_, cmd = m.Update(SpinnerTickMsg{TurnID: "stale"})
	if cmd != nil {
		t.Errorf("stale tick re-armed")
	}
}

// =============================================================================
// CACHE
// =============================================================================

type stubCache struct {
	response string
	hit      bool
	puts     []string
}

func (c *stubCache) Get(modelName string, temperature float64, prompt string) (string, bool) {
	return c.response, c.hit
}

func (c *stubCache) Put(modelName string, temperature float64, prompt, response string) error {
	c.puts = append(c.puts, prompt+"="+response)
	return nil
}

func TestCacheHitShortCircuits(t *testing.T) {
	cache := &stubCache{response: "cached answer", hit: true}
	m := New(styles.NewTheme(), config.Default(), ollama.NewClient(testEndpoint), cache)
	m = resize(t, m, 80, 24)
	m = beginTurn(t, m, "hi")

	next, _ := m.Update(CacheLookupMsg{TurnID: m.turnID, Content: "cached answer", Hit: true})
	m = next.(Model)

	last := m.conv.LastMessage()
	if last == nil || last.Role != model.RoleAssistant || last.Content != "cached answer" {
		t.Fatalf("final message = %+v, want the cached answer", last)
	}
	if m.conv.Mode() != model.ModeNormal || m.turnID != "" {
		t.Errorf("cache hit did not close the turn")
	}
	if len(cache.puts) != 0 {
		t.Errorf("cache hit was written back: %v", cache.puts)
	}
}

func TestCacheMissStartsRequest(t *testing.T) {
	cache := &stubCache{}
	m := New(styles.NewTheme(), config.Default(), ollama.NewClient(testEndpoint), cache)
	m = resize(t, m, 80, 24)
	m = beginTurn(t, m, "hi")

	next, cmd := m.Update(CacheLookupMsg{TurnID: m.turnID, Hit: false})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("cache miss did not start the request")
	}
	if m.stream == nil {
		t.Errorf("cache miss did not open the delta channel")
	}
}

func TestFinishedTurnStoredInCache(t *testing.T) {
	cache := &stubCache{}
	m := New(styles.NewTheme(), config.Default(), ollama.NewClient(testEndpoint), cache)
	m = resize(t, m, 80, 24)
	m = beginTurn(t, m, "hi")

	next, _ := m.Update(CacheLookupMsg{TurnID: m.turnID, Hit: false})
	m = next.(Model)

	next, cmd := m.Update(StreamChunkMsg{TurnID: m.turnID, Chunk: ollama.StreamChunk{Content: "Hi!", Done: true}})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("finished turn returned no store command")
	}
	if msg := cmd(); msg != nil {
		t.Errorf("store command produced a message: %v", msg)
	}
	if len(cache.puts) != 1 || cache.puts[0] != "hi=Hi!" {
		t.Errorf("cache writes = %v, want [hi=Hi!]", cache.puts)
	}
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigReloadSwapsSettings(t *testing.T) {
	m := newTestModel(t)

	fresh := config.Default()
	fresh.Model = "mistral"
	fresh.Endpoint = "http://10.0.0.1:11434/api/chat"

	next, _ := m.Update(ConfigReloadedMsg{Settings: fresh})
	m = next.(Model)

	if m.cfg.Model != "mistral" {
		t.Errorf("model = %q, want %q", m.cfg.Model, "mistral")
	}
	if m.client.Endpoint() != fresh.Endpoint {
		t.Errorf("client endpoint = %q, want %q", m.client.Endpoint(), fresh.Endpoint)
	}

	next, _ = m.Update(ConfigReloadedMsg{Settings: nil})
	m = next.(Model)
	if m.cfg.Model != "mistral" {
		t.Errorf("nil reload disturbed the settings")
	}
}
