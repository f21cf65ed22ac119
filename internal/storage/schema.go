// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the on-disk response cache for chatti.
package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the response cache
const Schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Responses table: one row per cached prompt/response pair
CREATE TABLE IF NOT EXISTS responses (
    key TEXT PRIMARY KEY,       -- blake2b-256 digest of (model, temperature, prompt)
    model TEXT NOT NULL,
    response TEXT NOT NULL,
    created_at INTEGER NOT NULL -- Unix nanoseconds
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_responses_created_at ON responses(created_at);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
