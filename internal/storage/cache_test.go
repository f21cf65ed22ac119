// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the on-disk response cache for chatti.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/chatti/internal/config"
)

func testCache(t *testing.T, cfg config.CacheConfig) *ResponseCache {
	t.Helper()

	c, err := NewResponseCacheAt(filepath.Join(t.TempDir(), "cache.db"), cfg)
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// backdate rewrites a row's creation time so TTL behavior is testable
// without waiting.
func backdate(t *testing.T, c *ResponseCache, modelName string, temperature float64, prompt string, age time.Duration) {
	t.Helper()

	createdAt := time.Now().Add(-age).UnixNano()
	if _, err := c.db.Exec(
		"UPDATE responses SET created_at = ? WHERE key = ?",
		createdAt, cacheKey(modelName, temperature, prompt),
	); err != nil {
		t.Fatalf("Failed to backdate row: %v", err)
	}
}

// =============================================================================
// LOOKUP AND STORE TESTS
// =============================================================================

func TestResponseCache_PutAndGet(t *testing.T) {
	c := testCache(t, config.CacheConfig{TTLHours: 24, MaxEntries: 10})

	if _, ok := c.Get("llama3.2", 0.7, "hi"); ok {
		t.Fatalf("Get on an empty cache reported a hit")
	}

	if err := c.Put("llama3.2", 0.7, "hi", "Hello!"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := c.Get("llama3.2", 0.7, "hi")
	if !ok {
		t.Fatalf("Get after Put missed")
	}
	if got != "Hello!" {
		t.Errorf("Get = %q, want %q", got, "Hello!")
	}
}

func TestResponseCache_KeyCoversAllInputs(t *testing.T) {
	c := testCache(t, config.CacheConfig{TTLHours: 24, MaxEntries: 10})

	if err := c.Put("llama3.2", 0.7, "hi", "Hello!"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	tests := []struct {
		name        string
		model       string
		temperature float64
		prompt      string
	}{
		{"different model", "mistral", 0.7, "hi"},
		{"different temperature", "llama3.2", 0.5, "hi"},
		{"different prompt", "llama3.2", 0.7, "hi there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := c.Get(tt.model, tt.temperature, tt.prompt); ok {
				t.Errorf("Get(%q, %v, %q) hit, want miss", tt.model, tt.temperature, tt.prompt)
			}
		})
	}
}

func TestResponseCache_ReplaceExisting(t *testing.T) {
	c := testCache(t, config.CacheConfig{TTLHours: 24, MaxEntries: 10})

	if err := c.Put("llama3.2", 0.7, "hi", "first"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Put("llama3.2", 0.7, "hi", "second"); err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}

	got, ok := c.Get("llama3.2", 0.7, "hi")
	if !ok || got != "second" {
		t.Errorf("Get = (%q, %v), want the replacing response", got, ok)
	}
	if s := c.Stats(); s.Entries != 1 {
		t.Errorf("Entries = %d, want 1", s.Entries)
	}
}

func TestResponseCache_PersistsAcrossOpen(t *testing.T) {
	cfg := config.CacheConfig{TTLHours: 24, MaxEntries: 10}
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := NewResponseCacheAt(path, cfg)
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	if err := c.Put("llama3.2", 0.7, "hi", "Hello!"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewResponseCacheAt(path, cfg)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("llama3.2", 0.7, "hi")
	if !ok || got != "Hello!" {
		t.Errorf("Get after reopen = (%q, %v), want the stored response", got, ok)
	}
}

// =============================================================================
// EXPIRY AND LIMIT TESTS
// =============================================================================

func TestResponseCache_TTLExpiry(t *testing.T) {
	c := testCache(t, config.CacheConfig{TTLHours: 24, MaxEntries: 10})

	if err := c.Put("llama3.2", 0.7, "hi", "Hello!"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	backdate(t, c, "llama3.2", 0.7, "hi", 25*time.Hour)

	if _, ok := c.Get("llama3.2", 0.7, "hi"); ok {
		t.Errorf("expired row reported a hit")
	}

	removed, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d rows, want 1", removed)
	}
	if s := c.Stats(); s.Entries != 0 {
		t.Errorf("Entries after prune = %d, want 0", s.Entries)
	}
}

func TestResponseCache_ZeroTTLNeverExpires(t *testing.T) {
	c := testCache(t, config.CacheConfig{TTLHours: 0, MaxEntries: 10})

	if err := c.Put("llama3.2", 0.7, "hi", "Hello!"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	backdate(t, c, "llama3.2", 0.7, "hi", 1000*time.Hour)

	if _, ok := c.Get("llama3.2", 0.7, "hi"); !ok {
		t.Errorf("row expired with TTL disabled")
	}
}

func TestResponseCache_EntryLimitEvictsOldest(t *testing.T) {
	c := testCache(t, config.CacheConfig{TTLHours: 24, MaxEntries: 2})

	if err := c.Put("llama3.2", 0.7, "first", "1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	backdate(t, c, "llama3.2", 0.7, "first", 3*time.Hour)
	if err := c.Put("llama3.2", 0.7, "second", "2"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	backdate(t, c, "llama3.2", 0.7, "second", 2*time.Hour)

	// The third write pushes the cache over the limit; the oldest row goes.
	if err := c.Put("llama3.2", 0.7, "third", "3"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, ok := c.Get("llama3.2", 0.7, "first"); ok {
		t.Errorf("oldest entry survived the limit")
	}
	for _, prompt := range []string{"second", "third"} {
		if _, ok := c.Get("llama3.2", 0.7, prompt); !ok {
			t.Errorf("entry %q evicted, want kept", prompt)
		}
	}
	if s := c.Stats(); s.Entries != 2 {
		t.Errorf("Entries = %d, want 2", s.Entries)
	}
}

// =============================================================================
// KEY DERIVATION TESTS
// =============================================================================

func TestCacheKey(t *testing.T) {
	a := cacheKey("llama3.2", 0.7, "hi")
	b := cacheKey("llama3.2", 0.7, "hi")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
	if cacheKey("llama3.2", 0.7, "hi\x00x") == cacheKey("llama3.2", 0.7, "hi") {
		t.Errorf("NUL in the prompt collided with a shorter prompt")
	}
}
