// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the shared file logger for chatti.
//
// The TUI owns the terminal, so diagnostics never go to stdout or stderr.
// Everything is appended to a log file under the config directory and
// user-facing error messages point at that file. Setup must be called once
// at startup; before that, all log calls are discarded.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// =============================================================================
// LEVELS
// =============================================================================

// Level controls which messages are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level tag used in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// =============================================================================
// LOGGER STATE
// =============================================================================

var (
	mu       sync.Mutex
	logger   = log.New(io.Discard, "", log.LstdFlags)
	logFile  *os.File
	logPath  string
	minLevel = LevelInfo
)

// DefaultPath returns the log file location used by Setup, even before Setup
// has run. Error messages shown in the chat embed this path so the user can
// find details.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "chatti", "logs", "chatti.log")
	}
	return filepath.Join(home, ".chatti", "logs", "chatti.log")
}

// Setup opens the log file and activates the logger. The parent directory is
// created with owner-only permissions. CHATTI_DEBUG=1 lowers the level to
// debug so skipped protocol lines become visible.
func Setup() error {
	return SetupAt(DefaultPath())
}

// SetupAt is Setup with an explicit file location, used by tests.
func SetupAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path
	logger = log.New(f, "", log.LstdFlags)

	if v := os.Getenv("CHATTI_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		minLevel = LevelDebug
	}

	return nil
}

// Close flushes and closes the log file. Safe to call when Setup never ran.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = log.New(io.Discard, "", log.LstdFlags)
	return err
}

// Path returns the active log file path, or the default location when the
// logger is not set up. Never returns an empty string.
func Path() string {
	mu.Lock()
	defer mu.Unlock()

	if logPath != "" {
		return logPath
	}
	return DefaultPath()
}

// SetLevel changes the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// =============================================================================
// LOGGING FUNCTIONS
// =============================================================================

func write(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if l < minLevel {
		return
	}
	logger.Printf("["+l.String()+"] "+format, args...)
}

// Debugf logs at debug level. Used for per-line protocol noise such as
// skipped malformed NDJSON lines.
func Debugf(format string, args ...any) {
	write(LevelDebug, format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	write(LevelInfo, format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	write(LevelWarn, format, args...)
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	write(LevelError, format, args...)
}
