// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the on-disk response cache for chatti.
package storage

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/logging"
)

// =============================================================================
// RESPONSE CACHE
// =============================================================================

// ResponseCache is an exact-match prompt cache backed by SQLite.
type ResponseCache struct {
	db         *sql.DB
	path       string
	ttl        time.Duration
	maxEntries int
}

// NewResponseCache opens the cache at the default location, ~/.chatti/cache.db.
func NewResponseCache(cfg config.CacheConfig) (*ResponseCache, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	return NewResponseCacheAt(filepath.Join(dir, "cache.db"), cfg)
}

// NewResponseCacheAt opens the cache at a custom path.
func NewResponseCacheAt(path string, cfg config.CacheConfig) (*ResponseCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	c := &ResponseCache{
		db:         db,
		path:       path,
		ttl:        time.Duration(cfg.TTLHours) * time.Hour,
		maxEntries: cfg.MaxEntries,
	}

	// Startup prune keeps the database from accumulating dead rows across
	// runs. Failure is not fatal, the rows just stay until the next write.
	if _, err := c.Prune(); err != nil {
		logging.Debugf("cache: startup prune failed: %v", err)
	}

	return c, nil
}

// Close closes the underlying database.
func (c *ResponseCache) Close() error {
	return c.db.Close()
}

// =============================================================================
// LOOKUP AND STORE
// =============================================================================

// Get returns the cached response for the exact (model, temperature, prompt)
// combination. Expired rows and lookup failures both read as misses.
func (c *ResponseCache) Get(modelName string, temperature float64, prompt string) (string, bool) {
	var response string
	var createdAt int64
	err := c.db.QueryRow(
		"SELECT response, created_at FROM responses WHERE key = ?",
		cacheKey(modelName, temperature, prompt),
	).Scan(&response, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		logging.Debugf("cache: lookup failed: %v", err)
		return "", false
	}
	if c.ttl > 0 && time.Now().UnixNano()-createdAt > int64(c.ttl) {
		return "", false
	}
	return response, true
}

// Put stores the final response of a completed turn, replacing any previous
// entry for the same key.
func (c *ResponseCache) Put(modelName string, temperature float64, prompt, response string) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO responses (key, model, response, created_at) VALUES (?, ?, ?, ?)",
		cacheKey(modelName, temperature, prompt), modelName, response, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}

	// The stored row is already durable; pruning afterwards is bookkeeping.
	if _, err := c.Prune(); err != nil {
		logging.Debugf("cache: prune after store failed: %v", err)
	}
	return nil
}

// Prune removes expired rows and enforces the entry limit, oldest rows
// first. It returns the number of rows removed.
func (c *ResponseCache) Prune() (int, error) {
	removed := 0

	if c.ttl > 0 {
		cutoff := time.Now().Add(-c.ttl).UnixNano()
		res, err := c.db.Exec("DELETE FROM responses WHERE created_at < ?", cutoff)
		if err != nil {
			return removed, fmt.Errorf("failed to prune expired rows: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}

	if c.maxEntries > 0 {
		res, err := c.db.Exec(`
			DELETE FROM responses WHERE key NOT IN (
				SELECT key FROM responses ORDER BY created_at DESC LIMIT ?
			)`, c.maxEntries)
		if err != nil {
			return removed, fmt.Errorf("failed to enforce entry limit: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}

	return removed, nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats reports cache size for diagnostics.
type Stats struct {
	Entries      int
	DatabaseSize int64
}

// Stats returns current cache statistics.
func (c *ResponseCache) Stats() Stats {
	var s Stats
	if err := c.db.QueryRow("SELECT COUNT(*) FROM responses").Scan(&s.Entries); err != nil {
		logging.Debugf("cache: stats query failed: %v", err)
	}
	if info, err := os.Stat(c.path); err == nil {
		s.DatabaseSize = info.Size()
	}
	return s
}

// =============================================================================
// KEY DERIVATION
// =============================================================================

// cacheKey digests every input that shapes a response. NUL separators keep
// the field boundaries unambiguous; FormatFloat with -1 precision yields the
// shortest exact form, so the digest is stable across runs.
func cacheKey(modelName string, temperature float64, prompt string) string {
	preimage := modelName + "\x00" + strconv.FormatFloat(temperature, 'f', -1, 64) + "\x00" + prompt
	sum := blake2b.Sum256([]byte(preimage))
	return hex.EncodeToString(sum[:])
}
