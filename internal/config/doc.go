// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages chatti's configuration.
//
// Configuration lives at ~/.chatti/config.toml. On first run a default file
// is written so users have something to edit. Values can be overridden per
// process with CHATTI_* environment variables, and the file can be watched
// for edits while the app is running.
//
// # Loading Order
//
//  1. Built-in defaults
//  2. config.toml (created with defaults when missing)
//  3. Environment variable overrides (CHATTI_ENDPOINT, CHATTI_MODEL,
//     CHATTI_STREAM, CHATTI_TEMPERATURE, CHATTI_CACHE)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // a validation problem, not a missing file
//	}
//	client := ollama.NewClient(cfg.Endpoint)
package config
