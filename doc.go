// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package hookkernel is a host-embedded plugin dispatch kernel. It lets an
// application declare named extension points ("hook specs") and lets third
// parties register implementations ("hook impls") discovered either
// directly or through a PluginSource. At call time the kernel selects the
// eligible impls for a hook, orders them deterministically, invokes each
// with validated arguments, and reduces their return values through a
// named collection strategy.
//
// The core concepts:
//
//   - Signature (internal/signature): the ordered parameter-name identity
//     of a callable, used to validate impls against their spec.
//   - Spec and Impl (internal/hook): a hook's declaration and each of its
//     bound realizations.
//   - Registry (internal/registry): the ordered set of registered plugins,
//     their enabled state, scoped snapshot/restore, and priority-based
//     execution order.
//   - Dispatcher (internal/dispatch): invokes the eligible impls for a hook
//     in canonical order and folds their outcomes through a Strategy.
//   - Strategy (internal/strategy): the twenty named result-collection
//     strategies plus the user-reducer escape hatch.
//   - Kernel (this package): binds the above behind a small façade and
//     maintains the process-wide project-name identity map.
//
// Supporting packages: internal/diag (the Diagnostics sink type),
// internal/kernelerr (the oops-based error taxonomy), internal/scopelang
// (the scoped() mini-language grammar), and internal/metrics (Prometheus
// recorder feeding the dispatcher's telemetry hook).
package hookkernel
