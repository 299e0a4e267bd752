// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hookkernel

import "github.com/dispatchkit/hookkernel/internal/kernelerr"

// Error codes for the kernel's error taxonomy. Checked with
// oops's own As helpers, e.g. `if o, ok := oops.AsOops(err); ok { o.Code() }`.
const (
	CodeNoSuchPlugin        = kernelerr.CodeNoSuchPlugin
	CodeDuplicatePluginName = kernelerr.CodeDuplicatePluginName
	CodeNoSuchHookSpec      = kernelerr.CodeNoSuchHookSpec
	CodeDuplicateSpec       = kernelerr.CodeDuplicateSpec
	CodeSignatureMismatch   = kernelerr.CodeSignatureMismatch
	CodeHookRequired        = kernelerr.CodeHookRequired
	CodeResultUnavailable   = kernelerr.CodeResultUnavailable
	CodeImplFailure         = kernelerr.CodeImplFailure
	CodeScopeSyntax         = kernelerr.CodeScopeSyntax
)

// ErrNoSuchPlugin is returned by enable/disable/get operations for a name
// that has never been registered.
func ErrNoSuchPlugin(name string) error { return kernelerr.NoSuchPlugin(name) }

// ErrDuplicatePluginName is returned when a *different* object is
// registered under a name that already resolves to another object.
func ErrDuplicatePluginName(name string) error { return kernelerr.DuplicatePluginName(name) }

// ErrNoSuchHookSpec is returned when dispatching a hook name with no
// registered HookSpec. Attaching an impl for such a name is not an error.
func ErrNoSuchHookSpec(name string) error { return kernelerr.NoSuchHookSpec(name) }

// ErrDuplicateSpec is returned when a HookSpec name is registered twice.
func ErrDuplicateSpec(name string) error { return kernelerr.DuplicateSpec(name) }

// ErrSignatureMismatch is returned when an impl's parameter names diverge
// from its spec's after receiver erasure.
func ErrSignatureMismatch(specName, pluginName string, expected, got []string) error {
	return kernelerr.SignatureMismatch(specName, pluginName, expected, got)
}

// ErrHookRequired is returned when a required hook has no enabled impl at
// dispatch time.
func ErrHookRequired(name string) error { return kernelerr.HookRequired(name) }

// ErrResultUnavailable is returned when a non-TRY_ strategy finds nothing
// to reduce.
func ErrResultUnavailable(name string) error { return kernelerr.ResultUnavailable(name) }

// ErrImplFailure wraps an error returned by an impl during dispatch. A
// panicking impl is not recovered.
func ErrImplFailure(pluginName, hookName string, cause error) error {
	return kernelerr.ImplFailure(pluginName, hookName, cause)
}
