// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package dispatch

import (
	"sync"

	"github.com/dispatchkit/hookkernel/internal/hook"
	"github.com/dispatchkit/hookkernel/internal/kernelerr"
)

// SpecTable is the kernel's table of registered hook specs, separate
// from the plugin registry because a spec is a per-hook-name singleton
// with no notion of a priority key.
type SpecTable struct {
	mu    sync.RWMutex
	specs map[string]hook.Spec
	// warned tracks, per hook name, whether the warn_sync_impl_on_async
	// diagnostic has already fired.
	warned map[string]bool
}

// NewSpecTable builds an empty spec table.
func NewSpecTable() *SpecTable {
	return &SpecTable{
		specs:  make(map[string]hook.Spec),
		warned: make(map[string]bool),
	}
}

// Register adds a spec. A hook name may only be registered once.
func (t *SpecTable) Register(spec hook.Spec) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.specs[spec.Name]; ok {
		return kernelerr.DuplicateSpec(spec.Name)
	}
	t.specs[spec.Name] = spec
	return nil
}

// Get returns the spec registered under name.
func (t *SpecTable) Get(name string) (hook.Spec, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.specs[name]
	return s, ok
}

// markWarned reports whether this is the first call for hookName, and
// marks it warned either way — callers emit the diagnostic iff the return
// is true.
func (t *SpecTable) markWarned(hookName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.warned[hookName] {
		return false
	}
	t.warned[hookName] = true
	return true
}
