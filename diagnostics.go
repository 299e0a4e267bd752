// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hookkernel

import "github.com/dispatchkit/hookkernel/internal/diag"

// DiagnosticKind names a non-fatal condition the kernel surfaces through a
// Diagnostics sink instead of an error.
type DiagnosticKind = diag.Kind

const (
	KindSyncImplOnAsyncSpec = diag.KindSyncImplOnAsyncSpec
	KindSingleWithoutTarget = diag.KindSingleWithoutTarget
)

// Diagnostics is the pluggable sink for non-fatal conditions.
// The kernel never logs directly; every loggable condition is routed
// through a Diagnostics implementation, which the host supplies. A nil
// Diagnostics is legal and silently discards everything.
type Diagnostics = diag.Sink
