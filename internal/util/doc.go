// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helper functions shared across chatti.
//
// This package contains the few helpers that do not belong to a specific
// subsystem: UTF-8 safe string truncation, numeric formatting for display,
// and crash-safe file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - RuneLen: character count for UTF-8 strings
//
// Numeric Formatting:
//   - IntToString, Int64ToString: numeric to string conversion
//   - FloatToString: fixed two-decimal float formatting
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Truncate long prompts safely for log output
//	preview := util.TruncateRunes(prompt, 50)
//
//	// Write the config file atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
