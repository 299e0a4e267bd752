// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package diag defines the Diagnostics sink the dispatcher reports
// non-fatal conditions through. It lives under internal so
// internal/dispatch and the root façade share one type identity instead of
// each declaring a structurally-similar but distinct interface.
package diag

// Kind names a non-fatal condition the kernel surfaces through a
// Diagnostics sink instead of an error.
type Kind string

const (
	// KindSyncImplOnAsyncSpec fires the first time an async spec sees a
	// synchronous impl bound to it, when the spec opted into the warning
	// (HookSpec.WarnSyncImplOnAsync).
	KindSyncImplOnAsyncSpec Kind = "sync-impl-on-async-spec"

	// KindSingleWithoutTarget fires when a SINGLE/TRY_SINGLE dispatch has
	// no routing key and falls back to the last eligible impl.
	KindSingleWithoutTarget Kind = "single-without-target"
)

// Sink is the pluggable sink for non-fatal conditions. The kernel never
// logs directly; every loggable condition is routed through a Sink, which
// the host supplies. A nil Sink is legal and silently discards everything.
type Sink interface {
	Emit(kind Kind, message string, context map[string]any)
}

// Noop discards every diagnostic. Used when the host supplies a nil Sink.
type Noop struct{}

func (Noop) Emit(Kind, string, map[string]any) {}
