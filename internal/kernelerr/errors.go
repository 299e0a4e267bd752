// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package kernelerr is the hook dispatch kernel's error taxonomy, built
// with samber/oops so every error carries a stable code plus
// structured context. It lives under internal so both the root façade and
// internal/dispatch can construct these errors without an import cycle;
// the root package re-exports the pieces a host needs to see.
package kernelerr

import (
	"github.com/samber/oops"
)

const (
	CodeNoSuchPlugin        = "NO_SUCH_PLUGIN"
	CodeDuplicatePluginName = "DUPLICATE_PLUGIN_NAME"
	CodeNoSuchHookSpec      = "NO_SUCH_HOOK_SPEC"
	CodeDuplicateSpec       = "DUPLICATE_SPEC"
	CodeSignatureMismatch   = "SIGNATURE_MISMATCH"
	CodeHookRequired        = "HOOK_REQUIRED"
	CodeResultUnavailable   = "RESULT_UNAVAILABLE"
	CodeImplFailure         = "IMPL_FAILURE"
	CodeScopeSyntax         = "SCOPE_SYNTAX"
)

// NoSuchPlugin is returned by enable/disable/get operations for a name
// that has never been registered.
func NoSuchPlugin(name string) error {
	return oops.Code(CodeNoSuchPlugin).
		With("plugin", name).
		Errorf("no such plugin: %s", name)
}

// DuplicatePluginName is returned when a *different* object is registered
// under a name that already resolves to another object.
func DuplicatePluginName(name string) error {
	return oops.Code(CodeDuplicatePluginName).
		With("plugin", name).
		Errorf("a different plugin is already registered as %q", name)
}

// NoSuchHookSpec is returned when dispatching a hook name with no
// registered HookSpec. Attaching an impl for such a name is not an error.
func NoSuchHookSpec(name string) error {
	return oops.Code(CodeNoSuchHookSpec).
		With("hook", name).
		Errorf("no such hook spec: %s", name)
}

// DuplicateSpec is returned when a HookSpec name is registered twice.
func DuplicateSpec(name string) error {
	return oops.Code(CodeDuplicateSpec).
		With("hook", name).
		Errorf("hook spec already registered: %s", name)
}

// SignatureMismatch is returned when an impl's parameter names diverge
// from its spec's after receiver erasure.
func SignatureMismatch(specName, pluginName string, expected, got []string) error {
	return oops.Code(CodeSignatureMismatch).
		With("hook", specName).
		With("plugin", pluginName).
		With("expected", expected).
		With("got", got).
		Errorf("%s in plugin %s: expected signature %v, got %v", specName, pluginName, expected, got)
}

// HookRequired is returned when a required hook has no enabled impl at
// dispatch time.
func HookRequired(name string) error {
	return oops.Code(CodeHookRequired).
		With("hook", name).
		Errorf("hook %s is required but has no implementation", name)
}

// ResultUnavailable is returned when a non-TRY_ strategy finds nothing to
// reduce.
func ResultUnavailable(name string) error {
	return oops.Code(CodeResultUnavailable).
		With("hook", name).
		Errorf("no result available for hook %s", name)
}

// ImplFailure wraps an error returned by an impl during dispatch. A
// panicking impl is not recovered.
func ImplFailure(pluginName, hookName string, cause error) error {
	return oops.Code(CodeImplFailure).
		With("plugin", pluginName).
		With("hook", hookName).
		Wrap(cause)
}

// ScopeSyntax is returned when a scoped() spec mixes bare and +/- prefixed
// names, or contains an unparseable item.
func ScopeSyntax(detail string) error {
	return oops.Code(CodeScopeSyntax).Errorf("%s", detail)
}
