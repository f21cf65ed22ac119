// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive chat screen for chatti.
package ui

import (
	"context"
	"sync"
)

// cancelManager owns the context cancel function of the in-flight request.
// The model is held behind a pointer to this struct because Bubble Tea
// copies the model on every update while commands finish on other
// goroutines; the mutex keeps set and cancel safe across those copies.
type cancelManager struct {
	mu         sync.Mutex
	cancelFunc context.CancelFunc
}

// newCancelManager creates an empty cancel manager.
func newCancelManager() *cancelManager {
	return &cancelManager{}
}

// setCancelFunc stores the cancel function for the current request,
// cancelling any previous one first so an abandoned request cannot linger.
func (cm *cancelManager) setCancelFunc(cancel context.CancelFunc) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
	}
	cm.cancelFunc = cancel
}

// cancel invokes and forgets the stored cancel function. Safe to call when
// nothing is in flight, and after a request completed on its own.
func (cm *cancelManager) cancel() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
}
