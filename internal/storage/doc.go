// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package storage provides the on-disk response cache for chatti.

The cache maps a digest of (model, temperature, prompt) to the final
assistant text of a completed turn. Only exact repeats hit: the digest
covers every input that shapes a response, so a different temperature or
model never serves a stale answer.

# Storage

Entries live in a single SQLite database, by default at
~/.chatti/cache.db. Rows carry their creation time; reads treat rows
older than the configured TTL as misses, and writes prune expired rows
and enforce the entry limit. The cache never stores conversation
history, only individual prompt/response pairs.
*/
package storage
