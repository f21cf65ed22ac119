// chatti - chat with a local model without leaving the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatti/internal/cli"
	"github.com/jeranaias/chatti/internal/config"
	"github.com/jeranaias/chatti/internal/logging"
	"github.com/jeranaias/chatti/internal/ollama"
	"github.com/jeranaias/chatti/internal/storage"
	"github.com/jeranaias/chatti/internal/ui"
	"github.com/jeranaias/chatti/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async delivery from the config watcher
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

const usage = `chatti - terminal chat for local models

Usage:
  chatti              start the full screen interface
  chatti ask <text>   ask one question and print the answer
  chatti repl         line oriented prompt loop
  chatti --version    print version information
  chatti --help       show this help

With no question on the command line, "chatti ask" reads one from stdin:
  echo "explain this error" | chatti ask
`

func main() {
	if err := logging.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "chatti: logging disabled: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatti: using default config: %v\n", err)
		cfg = config.Default()
	}
	config.SetGlobal(cfg)

	args := os.Args[1:]
	if len(args) == 0 {
		runTUI(cfg)
		return
	}

	switch args[0] {
	case "--version", "-v", "version":
		fmt.Printf("chatti %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)

	case "--help", "-h", "help":
		fmt.Print(usage)

	case "ask":
		if err := cli.Ask(cfg, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "chatti: %v\n", err)
			os.Exit(1)
		}

	case "repl":
		if err := cli.Repl(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "chatti: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "chatti: unknown command %q\n\n%s", args[0], usage)
		os.Exit(2)
	}
}

// runTUI starts the full screen interface.
func runTUI(cfg *config.Config) {
	theme := styles.NewTheme()
	client := ollama.NewClient(cfg.Endpoint)

	// A nil interface disables caching; assigning a failed *ResponseCache
	// would produce a non-nil interface holding a nil pointer.
	var cache ui.ResponseCache
	if cfg.Cache.Enabled {
		rc, err := storage.NewResponseCache(cfg.Cache)
		if err != nil {
			logging.Warnf("response cache disabled: %v", err)
		} else {
			cache = rc
			defer rc.Close()
		}
	}

	p := tea.NewProgram(
		ui.New(theme, cfg, client, cache),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	// Store program reference for async operations
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if w := startConfigWatcher(); w != nil {
		defer w.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatti: %v\n", err)
		os.Exit(1)
	}
}

// startConfigWatcher hot-reloads config.toml while the TUI runs, handing
// fresh settings to the program between turns. Losing the watcher only
// costs hot reload, so failures are logged instead of fatal.
func startConfigWatcher() *config.Watcher {
	path, err := config.ConfigPath()
	if err != nil {
		logging.Warnf("config watcher disabled: %v", err)
		return nil
	}

	w, err := config.NewWatcher(path, func(fresh *config.Config) {
		config.SetGlobal(fresh)

		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(ui.ConfigReloadedMsg{Settings: fresh})
		}
	})
	if err != nil {
		logging.Warnf("config watcher disabled: %v", err)
		return nil
	}

	if err := w.Watch(); err != nil {
		logging.Warnf("config watcher disabled: %v", err)
		w.Close()
		return nil
	}
	return w
}
