// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the non-interactive paths of chatti.

Two commands bypass the TUI entirely:

	chatti ask <question...>   one prompt, answer to stdout
	chatti repl                line-oriented prompt loop

Both share the ollama client and configuration with the TUI. ask streams
plainly when stdout is piped and re-renders the finished answer through
glamour on a terminal; repl keeps line editing and in-memory history via
liner, with Ctrl+C cancelling only the in-flight generation.
*/
package cli
