// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package manifest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/hookkernel"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

type stubLoader struct {
	provider hookkernel.ImplProvider
	err      error
}

func (s *stubLoader) Load(context.Context, *manifest.Manifest, string) (hookkernel.ImplProvider, error) {
	return s.provider, s.err
}

type stubProvider struct{}

func (stubProvider) Impls() []hookkernel.Impl { return nil }

func writePlugin(t *testing.T, root, name, yaml string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.yaml"), []byte(yaml), 0o600))
}

func TestSource_Discover_LoadsEachManifest(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "greeter", `
name: greeter
version: 1.0.0
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)

	src := &manifest.Source{
		RootDir: root,
		Loaders: map[manifest.Type]manifest.Loader{
			manifest.TypeLua: &stubLoader{provider: stubProvider{}},
		},
	}

	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, discovered, 1)
	assert.Equal(t, "greeter", discovered[0].Name)

	named, ok := discovered[0].Plugin.(hookkernel.Named)
	require.True(t, ok)
	assert.Equal(t, "greeter", named.Name())
}

func TestSource_Discover_AppliesPriorityWrapper(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "sentinel", `
name: sentinel
version: 1.0.0
type: binary
hooks: [onJoin]
priority: 7
binary-plugin:
  executable: sentinel-plugin
`)

	src := &manifest.Source{
		RootDir: root,
		Loaders: map[manifest.Type]manifest.Loader{
			manifest.TypeBinary: &stubLoader{provider: stubProvider{}},
		},
	}

	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, discovered, 1)

	prioritized, ok := discovered[0].Plugin.(hookkernel.Prioritized)
	require.True(t, ok)
	assert.Equal(t, 7, prioritized.Priority())
}

func TestSource_Discover_SkipsPluginWithoutLoader(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "mystery", `
name: mystery
version: 1.0.0
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)

	src := &manifest.Source{RootDir: root, Loaders: map[manifest.Type]manifest.Loader{}}

	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, discovered)
}

func TestSource_Discover_SkipsInvalidVersion(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "greeter", `
name: greeter
version: not-a-version
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)

	src := &manifest.Source{
		RootDir: root,
		Loaders: map[manifest.Type]manifest.Loader{
			manifest.TypeLua: &stubLoader{provider: stubProvider{}},
		},
	}

	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, discovered)
}

func TestSource_Discover_OnlyFilterRestrictsByGlob(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "greeter", `
name: greeter
version: 1.0.0
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)
	writePlugin(t, root, "sentinel", `
name: sentinel
version: 1.0.0
type: lua
hooks: [onJoin]
lua-plugin:
  entry: entry.lua
`)

	src := &manifest.Source{
		RootDir: root,
		Loaders: map[manifest.Type]manifest.Loader{
			manifest.TypeLua: &stubLoader{provider: stubProvider{}},
		},
		Only: []string{"greet*"},
	}

	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, discovered, 1)
	assert.Equal(t, "greeter", discovered[0].Name)
}

func TestSource_Discover_MissingRootDirReturnsEmpty(t *testing.T) {
	src := &manifest.Source{RootDir: filepath.Join(t.TempDir(), "missing")}
	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, discovered)
}

func TestSource_Discover_SkipsWhenLoaderFails(t *testing.T) {
	root := t.TempDir()
	writePlugin(t, root, "greeter", `
name: greeter
version: 1.0.0
type: lua
hooks: [onGreet]
lua-plugin:
  entry: entry.lua
`)

	src := &manifest.Source{
		RootDir: root,
		Loaders: map[manifest.Type]manifest.Loader{
			manifest.TypeLua: &stubLoader{err: assertErr2("boom")},
		},
	}

	discovered, err := src.Discover(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, discovered)
}

type assertErr2 string

func (e assertErr2) Error() string { return string(e) }
