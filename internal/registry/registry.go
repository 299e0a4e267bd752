// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package registry is the hook dispatch kernel's insertion-ordered table
// of registered plugins, their attached impls, and the priority ordering
// dispatch reads from.
package registry

import (
	"sort"
	"sync"

	"github.com/dispatchkit/hookkernel/internal/hook"
)

// PriorityKey is the three-tuple execution-order key. It is grounded
// directly on simplug's own tuple construction, widened from a pair to a
// triple so registration order within a single batch and a
// declared-priority override are both representable without a second
// pass:
//
//	First  - the declared priority if the plugin reports one, else the
//	         batch index (the position of the Register call, not the
//	         plugin, within the registry's lifetime).
//	Second - the batch index, always. Breaks ties between a plugin with a
//	         declared priority equal to some other batch's index.
//	Sub    - the registration order within the batch. Breaks ties between
//	         plugins registered by the same Register call.
//
// Keys sort ascending: smaller First runs first.
type PriorityKey struct {
	First  int
	Second int
	Sub    int
}

// Less reports whether k sorts before other.
func (k PriorityKey) Less(other PriorityKey) bool {
	if k.First != other.First {
		return k.First < other.First
	}
	if k.Second != other.Second {
		return k.Second < other.Second
	}
	return k.Sub < other.Sub
}

// Plugin is a registered plugin object together with the bookkeeping the
// registry and dispatcher need about it.
type Plugin struct {
	Name     string
	Version  string
	Object   any
	Priority PriorityKey
	Enabled  bool

	impls map[string]hook.Impl // hook name -> impl
}

// Impls returns a copy of this plugin's attached impls, keyed by hook name.
func (p *Plugin) Impls() map[string]hook.Impl {
	cp := make(map[string]hook.Impl, len(p.impls))
	for k, v := range p.impls {
		cp[k] = v
	}
	return cp
}

// Registry is the insertion-ordered table of plugins, safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	order      []string // insertion order, for ListAll/ListEnabled stability before priority sort
	plugins    map[string]*Plugin
	batchCount int
}

// New builds an empty registry.
func New() *Registry {
	return &Registry{plugins: make(map[string]*Plugin)}
}

// RegisterResult reports, per object, whether it was newly registered.
type RegisterResult struct {
	Name  string
	Fresh bool
}

// Register adds a batch of plugin objects, all sharing one batch index.
//
// Re-registering an object already present under the same name is
// idempotent (the existing Plugin is left untouched, Fresh is false).
// Registering a different object under a name that already resolves to
// something else is a duplicate-name error, reported by the caller using
// the resolved name (the registry itself has no notion of host-level error
// codes).
func (r *Registry) Register(objects []RegisterRequest) ([]RegisterResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := r.batchCount
	r.batchCount++

	results := make([]RegisterResult, 0, len(objects))
	for i, req := range objects {
		if existing, ok := r.plugins[req.Name]; ok {
			if existing.Object == req.Object {
				results = append(results, RegisterResult{Name: req.Name, Fresh: false})
				continue
			}
			return nil, &DuplicateNameError{Name: req.Name}
		}

		first := batch
		if req.HasPriority {
			first = req.Priority
		}

		r.plugins[req.Name] = &Plugin{
			Name:     req.Name,
			Version:  req.Version,
			Object:   req.Object,
			Enabled:  true,
			Priority: PriorityKey{First: first, Second: batch, Sub: i},
			impls:    make(map[string]hook.Impl),
		}
		r.order = append(r.order, req.Name)
		results = append(results, RegisterResult{Name: req.Name, Fresh: true})
	}

	return results, nil
}

// RegisterRequest is one plugin to register, its name and priority already
// resolved by the caller (the registry does not import the name-resolution
// helpers in this package to keep Register a pure bookkeeping operation —
// see ResolveName, ResolveVersion, ResolvePriority).
type RegisterRequest struct {
	Name        string
	Version     string
	Object      any
	HasPriority bool
	Priority    int
}

// DuplicateNameError reports a name collision between two distinct
// objects.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "registry: a different plugin is already registered as " + e.Name
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// SetEnabled flips a plugin's enabled flag. Returns false if name is not
// registered.
func (r *Registry) SetEnabled(name string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plugins[name]
	if !ok {
		return false
	}
	p.Enabled = enabled
	return true
}

// AttachImpl binds impl to the named plugin. The impl is attached even if
// no spec with this name exists yet or ever will — signature
// validation against a spec happens later, in the dispatcher, at the point
// a spec is actually looked up.
func (r *Registry) AttachImpl(pluginName string, impl hook.Impl) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plugins[pluginName]
	if !ok {
		return false
	}
	p.impls[impl.HookName] = impl
	return true
}

// ListAll returns every registered plugin in insertion order.
func (r *Registry) ListAll() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.plugins[name])
	}
	return out
}

// EligibleForHook returns every enabled plugin with an impl attached for
// hookName, sorted by PriorityKey ascending. Ties are broken by
// insertion order via Sub/Second, so the sort below is purely for the
// cross-batch ordering; within-batch order is already encoded in the keys.
func (r *Registry) EligibleForHook(hookName string) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Plugin, 0)
	for _, name := range r.order {
		p := r.plugins[name]
		if !p.Enabled {
			continue
		}
		if _, ok := p.impls[hookName]; !ok {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Less(out[j].Priority)
	})
	return out
}
