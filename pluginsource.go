// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hookkernel

import "context"

// DiscoveredPlugin is one (entry_name, object) pair yielded by a
// PluginSource. Name, when non-empty, overrides any name the
// plugin object would otherwise resolve to ("_name" always wins).
type DiscoveredPlugin struct {
	Name   string
	Plugin any
}

// PluginSource abstracts package-ecosystem discovery.
// Implementations live under pkg/pluginsource; the core never imports
// them.
type PluginSource interface {
	// Discover yields the plugins belonging to group. group defaults to
	// the kernel's project name when the caller passes an empty string.
	Discover(ctx context.Context, group string) ([]DiscoveredPlugin, error)
}

// OnlyFilter restricts Discover results to a set of entry names. An empty
// filter matches everything. Patterns may be exact names or globs (an
// extension over simplug's exact-name-only `only`; matched
// with gobwas/glob by implementations that support it).
type OnlyFilter []string

// Matches reports whether name passes the filter. An empty filter passes
// everything. Matches compares exact names only; a glob pattern matches
// only a name spelled identically.
func (f OnlyFilter) Matches(name string) bool {
	if len(f) == 0 {
		return true
	}
	for _, pattern := range f {
		if pattern == name {
			return true
		}
	}
	return false
}
