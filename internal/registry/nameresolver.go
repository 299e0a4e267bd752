// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

import (
	"errors"
	"reflect"
	"strings"
)

// ErrNoPluginName is returned when a plugin's name cannot be resolved by
// any of the strategies below — a host-side programming error, not a
// runtime dispatch condition.
var ErrNoPluginName = errors.New("registry: plugin has no resolvable name")

// Named lets a plugin object report its own name, the Go analogue of
// simplug's `name` attribute probe.
type Named interface {
	Name() string
}

// Versioned lets a plugin object report an optional version string.
type Versioned interface {
	Version() string
}

// Prioritized lets a plugin object report its own declared priority.
type Prioritized interface {
	Priority() int
}

// Constructor marks a plugin value as a factory rather than an instance —
// the Go re-expression of "the registered object is a type/class" from
// simplug's auto-instantiation rule. The kernel calls New and registers
// its result instead of the Constructor itself.
type Constructor interface {
	New() any
}

// ResolveName implements the name-resolution priority order:
//
//  1. override — set by a PluginSource before registration ("_name"),
//     always wins.
//  2. the Named interface ("name" attribute).
//  3. the Go type name of the value, lowercased — the closest analogue
//     Go has to "__name__ / __class__.__name__"; Go preserves no runtime
//     distinction between a bound instance and "the class itself" the way
//     simplug's introspection does, so both of simplug's later fallback
//     tiers collapse into this one reflect-based fallback (documented as
//     an Open Question resolution in DESIGN.md).
func ResolveName(override string, plugin any) (string, error) {
	if override != "" {
		return override, nil
	}

	if named, ok := plugin.(Named); ok {
		if n := named.Name(); n != "" {
			return n, nil
		}
	}

	t := reflect.TypeOf(plugin)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToLower(t.Name()), nil
	}

	return "", ErrNoPluginName
}

// ResolveVersion implements the optional version lookup: the
// Versioned interface, else empty.
func ResolveVersion(plugin any) string {
	if v, ok := plugin.(Versioned); ok {
		return v.Version()
	}
	return ""
}

// ResolvePriority implements the optional declared-priority lookup: the
// Prioritized interface, else nil (meaning "use batch index").
func ResolvePriority(plugin any) (int, bool) {
	if p, ok := plugin.(Prioritized); ok {
		return p.Priority(), true
	}
	return 0, false
}

// Instantiate applies the auto-instantiation rule: if plugin
// is a Constructor, it is called and its result registered in place of
// the Constructor value itself. Anything else is registered as-is.
func Instantiate(plugin any) any {
	if ctor, ok := plugin.(Constructor); ok {
		return ctor.New()
	}
	return plugin
}
