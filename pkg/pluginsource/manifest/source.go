// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/gobwas/glob"

	"github.com/dispatchkit/hookkernel"
)

// Loader turns a validated manifest plus its directory into a live plugin
// object implementing hookkernel.ImplProvider. Implementations live in
// pkg/luaimpl (Lua) and pkg/pluginsource/goplugin (binary, over go-plugin).
type Loader interface {
	Load(ctx context.Context, m *Manifest, dir string) (hookkernel.ImplProvider, error)
}

// Source is a hookkernel.PluginSource backed by a directory of
// subdirectories, each holding one plugin.yaml manifest (grounded on the
// host application's own plugin.Manager.Discover/LoadAll).
type Source struct {
	RootDir string
	Loaders map[Type]Loader
	// Only restricts discovery to plugin names matching any of these glob
	// patterns (gobwas/glob); empty means no restriction. This extends the
	// core's exact-name-only OnlyFilter to support globs, as the core's own
	// doc comment anticipates.
	Only []string
}

// Discover implements hookkernel.PluginSource. group is accepted for
// interface compliance but unused: manifests on disk have no notion of
// project grouping, every discovered plugin belongs to whichever kernel
// calls RegisterFrom.
func (s *Source) Discover(ctx context.Context, _ string) ([]hookkernel.DiscoveredPlugin, error) {
	entries, err := os.ReadDir(s.RootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugins directory: %w", err)
	}

	globs, err := compileGlobs(s.Only)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)

	var out []hookkernel.DiscoveredPlugin
	for _, dirName := range dirs {
		dir := filepath.Join(s.RootDir, dirName)
		manifestPath := filepath.Join(dir, "plugin.yaml")

		data, err := os.ReadFile(manifestPath) //nolint:gosec // manifestPath is built from ReadDir entries
		if err != nil {
			slog.Warn("skipping plugin without manifest", "dir", dirName, "error", err)
			continue
		}

		m, err := Parse(data)
		if err != nil {
			slog.Warn("skipping plugin with invalid manifest", "dir", dirName, "error", err)
			continue
		}

		if !matchesAny(globs, m.Name) {
			continue
		}

		if err := validateVersion(m.Version); err != nil {
			slog.Warn("skipping plugin with invalid version", "plugin", m.Name, "error", err)
			continue
		}

		loader, ok := s.Loaders[m.Type]
		if !ok {
			slog.Warn("no loader configured for plugin type, skipping", "plugin", m.Name, "type", m.Type)
			continue
		}

		impl, err := loader.Load(ctx, m, dir)
		if err != nil {
			slog.Warn("failed to load plugin", "plugin", m.Name, "error", err)
			continue
		}

		out = append(out, hookkernel.DiscoveredPlugin{
			Name:   m.Name,
			Plugin: wrap(m, impl),
		})
	}

	return out, nil
}

// Plugin wraps a manifest and its loaded impl provider so the kernel's
// name/version/priority resolution sees the manifest's
// declared values rather than whatever the loader's own type happens to
// report.
type Plugin struct {
	Manifest *Manifest
	Impl     hookkernel.ImplProvider
}

// Name implements hookkernel.Named.
func (p *Plugin) Name() string { return p.Manifest.Name }

// Version implements hookkernel.Versioned.
func (p *Plugin) Version() string { return p.Manifest.Version }

// Impls implements hookkernel.ImplProvider by delegating to the loaded
// runtime (Lua VM or go-plugin binary).
func (p *Plugin) Impls() []hookkernel.Impl { return p.Impl.Impls() }

// prioritizedPlugin adds hookkernel.Prioritized on top of Plugin.
// Priority resolution treats "implements Prioritized at all"
// as "has a declared priority" — since a manifest's priority field is
// optional per-plugin rather than per-type, that distinction is made here
// by choosing which wrapper to return, not by a sentinel value.
type prioritizedPlugin struct {
	*Plugin
	priority int
}

// Priority implements hookkernel.Prioritized.
func (p *prioritizedPlugin) Priority() int { return p.priority }

func wrap(m *Manifest, impl hookkernel.ImplProvider) any {
	base := &Plugin{Manifest: m, Impl: impl}
	if m.Priority == nil {
		return base
	}
	return &prioritizedPlugin{Plugin: base, priority: *m.Priority}
}

func validateVersion(v string) error {
	_, err := semver.NewVersion(v)
	return err
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	if len(globs) == 0 {
		return true
	}
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
