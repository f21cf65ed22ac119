// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package ui implements the interactive chat screen for chatti.

The package is a single Bubble Tea model wired to the conversation state in
internal/model and the streaming client in internal/ollama. The update loop
owns every mutation of the conversation; the network side never touches
shared state and communicates only through messages, so no locking is needed
around the transcript.

# Interaction Modes

The screen follows the conversation's three modes:

  - Normal: q quits, e starts editing, ? toggles the help overlay and the
    arrow keys move the transcript selection.
  - Editing: typed runes extend the prompt, Backspace removes the last one,
    Left/Right slide the input window sideways, Enter submits and Esc backs
    out without sending.
  - Waiting: a request is in flight; Esc cancels it and everything else is
    ignored.

# Streaming

Submitting a prompt opens a turn identified by a fresh uuid. Deltas arrive
over the client's chunk channel and are forwarded into the update loop by a
command that races the channel against a short poll timer, so the screen
keeps redrawing and reacting to Esc while the network is quiet. Chunks
stamped with a stale turn id are dropped, which is how a cancelled turn
drains late output without applying it.

# Layout

The frame is a bordered transcript pane above a three-row input box and a
one-line key hint bar. Assistant messages render through internal/ui/markdown;
user and system messages use a plain word wrapper. The vertical scrollbar
tracks the message selection and a horizontal one appears under the input
when the prompt outgrows the visible box.
*/
package ui
