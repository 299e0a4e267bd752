// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hookkernel

import (
	"github.com/dispatchkit/hookkernel/internal/dispatch"
	"github.com/dispatchkit/hookkernel/internal/hook"
	"github.com/dispatchkit/hookkernel/internal/signature"
	"github.com/dispatchkit/hookkernel/internal/strategy"
)

// Signature is the ordered, receiver-aware parameter-name identity a
// host declares for a Spec and for each Impl bound to it.
type Signature = signature.Signature

// NewSignature builds a receiver-less signature.
func NewSignature(names ...string) Signature { return signature.New(names...) }

// NewSignatureWithReceiver builds a signature whose first parameter is a
// receiver, erased before signature comparison. Impls of a spec with this
// signature receive their arguments wrapped as a ReceiverArgs.
func NewSignatureWithReceiver(receiverName string, names ...string) Signature {
	return signature.NewWithReceiver(receiverName, names...)
}

// Strategy is one of the twenty named result-collection strategies.
type Strategy = strategy.Strategy

// The twenty named result strategies.
const (
	ALL              = strategy.ALL
	ALLAvails        = strategy.ALLAvails
	ALLFirst         = strategy.ALLFirst
	TryALLFirst      = strategy.TryALLFirst
	ALLLast          = strategy.ALLLast
	TryALLLast       = strategy.TryALLLast
	ALLFirstAvail    = strategy.ALLFirstAvail
	TryALLFirstAvail = strategy.TryALLFirstAvail
	ALLLastAvail     = strategy.ALLLastAvail
	TryALLLastAvail  = strategy.TryALLLastAvail
	First            = strategy.First
	TryFirst         = strategy.TryFirst
	Last             = strategy.Last
	TryLast          = strategy.TryLast
	FirstAvail       = strategy.FirstAvail
	TryFirstAvail    = strategy.TryFirstAvail
	LastAvail        = strategy.LastAvail
	TryLastAvail     = strategy.TryLastAvail
	Single           = strategy.Single
	TrySingle        = strategy.TrySingle
)

// ResultPolicy is a HookSpec's strategy field: one of the constants above,
// or a user-supplied reducer.
type ResultPolicy = hook.ResultPolicy

// NamedStrategy builds a ResultPolicy from one of the named strategies.
func NamedStrategy(s Strategy) ResultPolicy { return hook.Named(s) }

// ReducerCall is one eligible, not-yet-invoked impl handed to a
// user-supplied Reducer.
type ReducerCall = hook.ReducerCall

// Reducer is the sync user-reducer contract.
type Reducer = hook.Reducer

// AsyncReducer is the async user-reducer contract.
type AsyncReducer = hook.AsyncReducer

// AsyncResult is what an async impl or async reducer eventually produces.
type AsyncResult = hook.AsyncResult

// WithReducer builds a ResultPolicy from a sync user reducer.
func WithReducer(r Reducer) ResultPolicy { return hook.WithReducer(r) }

// WithAsyncReducer builds a ResultPolicy from an async user reducer.
func WithAsyncReducer(r AsyncReducer) ResultPolicy { return hook.WithAsyncReducer(r) }

// Spec is a hook's declaration, registered exactly once per kernel via
// Kernel.RegisterSpec.
type Spec = hook.Spec

// Impl is a single realization of a hook, bound to a plugin.
type Impl = hook.Impl

// SyncFunc is the shape of a synchronous impl.
type SyncFunc = hook.SyncFunc

// AsyncFunc is the shape of an asynchronous impl.
type AsyncFunc = hook.AsyncFunc

// ImplProvider is the Go re-expression of simplug's decorator-based impl
// scanning: Go has no runtime attribute-walk over a registered object, so
// a plugin that wants to bind impls declares them explicitly by
// implementing this interface. Register calls Impls() once per object and
// attaches every entry.
type ImplProvider interface {
	Impls() []Impl
}

// CallOption configures one Dispatch call. Built with WithTarget /
// WithReceiver.
type CallOption = dispatch.CallOption

// WithTarget supplies the routing key consumed by SINGLE/TRY_SINGLE.
func WithTarget(pluginName string) CallOption { return dispatch.WithTarget(pluginName) }

// WithReceiver supplies the value injected into a spec's receiver slot.
func WithReceiver(v any) CallOption { return dispatch.WithReceiver(v) }

// ReceiverArgs is what an impl sees when its spec declares a receiver
// parameter: the dispatcher wraps the call
// arguments so the receiver and the rest of the arguments stay distinct
// without the impl needing to know the dispatcher's internal wrapper type.
type ReceiverArgs interface {
	Receiver() any
	Args() any
}

// Named, Versioned, Prioritized, and Constructor are the optional
// interfaces a registered plugin object may implement to participate in
// name resolution, versioning, priority, and auto-instantiation.
// Re-exported here so hosts implementing plugins do not need to
// import an internal package.
type (
	Named       = interface{ Name() string }
	Versioned   = interface{ Version() string }
	Prioritized = interface{ Priority() int }
	Constructor = interface{ New() any }
)
