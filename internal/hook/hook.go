// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package hook holds the hook dispatch kernel's declaration records: a
// hook's own declaration and each of its realizations, submitted by a
// host for a named extension point.
package hook

import (
	"context"

	"github.com/dispatchkit/hookkernel/internal/signature"
	"github.com/dispatchkit/hookkernel/internal/strategy"
)

// AsyncResult is what an async impl or async user reducer eventually
// produces, delivered over a channel (Go's stand-in for "await" — see
// Suspension points).
type AsyncResult struct {
	Value any
	Err   error
}

// SyncFunc is the shape of a synchronous impl or spec-level receiver fill.
type SyncFunc func(ctx context.Context, args any) (any, error)

// AsyncFunc is the shape of an asynchronous impl: it returns immediately
// with a channel that yields exactly one AsyncResult.
type AsyncFunc func(ctx context.Context, args any) <-chan AsyncResult

// ReducerCall is one eligible, not-yet-invoked impl handed to a
// user-supplied Reducer.
type ReducerCall struct {
	PluginName string
	Invoke     func() (any, error)
}

// Reducer is the sync user-reducer contract: it receives the ordered list
// of eligible calls, unexecuted, and owns execution entirely.
type Reducer func(calls []ReducerCall) (any, error)

// AsyncReducer is the async user-reducer contract.
type AsyncReducer func(ctx context.Context, calls []ReducerCall) <-chan AsyncResult

// ResultPolicy is a HookSpec's strategy field: either one of
// the twenty named strategies, or an opaque reducer whose sync/async
// nature must match the spec's.
type ResultPolicy struct {
	named        strategy.Strategy
	reducer      Reducer
	asyncReducer AsyncReducer
	custom       bool
}

// Named builds a ResultPolicy from one of the twenty named strategies.
func Named(s strategy.Strategy) ResultPolicy {
	return ResultPolicy{named: s}
}

// WithReducer builds a ResultPolicy from a user-supplied sync reducer.
func WithReducer(r Reducer) ResultPolicy {
	return ResultPolicy{reducer: r, custom: true}
}

// WithAsyncReducer builds a ResultPolicy from a user-supplied async
// reducer.
func WithAsyncReducer(r AsyncReducer) ResultPolicy {
	return ResultPolicy{asyncReducer: r, custom: true}
}

// IsCustom reports whether this policy is a user reducer rather than a
// named strategy.
func (p ResultPolicy) IsCustom() bool { return p.custom }

// Strategy returns the named strategy. Only meaningful when !IsCustom().
func (p ResultPolicy) Strategy() strategy.Strategy { return p.named }

// Reducer returns the sync reducer, if any.
func (p ResultPolicy) Reducer() Reducer { return p.reducer }

// AsyncReducer returns the async reducer, if any.
func (p ResultPolicy) AsyncReducer() AsyncReducer { return p.asyncReducer }

// Spec is a hook's declaration, registered exactly once per kernel.
type Spec struct {
	Name                string
	Signature           signature.Signature
	Async               bool
	Required            bool
	WarnSyncImplOnAsync bool
	Result              ResultPolicy
}

// Impl is a single realization of a hook, bound to a plugin at
// registration time.
type Impl struct {
	HookName  string
	Async     bool
	Signature signature.Signature
	Sync      SyncFunc
	Async_    AsyncFunc // named to avoid colliding with the Async flag field
}
