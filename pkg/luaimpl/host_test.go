// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package luaimpl

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

func writeEntry(t *testing.T, dir, name, code string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(code), 0o600))
	return path
}

func TestHost_Load_RejectsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "entry.lua", `function onGreet(args return "broken" end`)

	m := &manifest.Manifest{
		Name:      "greeter",
		Type:      manifest.TypeLua,
		Hooks:     []string{"onGreet"},
		LuaPlugin: &manifest.LuaConfig{Entry: "entry.lua"},
	}

	h := NewHost()
	_, err := h.Load(context.Background(), m, dir)
	assert.Error(t, err)
}

func TestHost_Load_And_Dispatch(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "entry.lua", `
function onGreet(args)
  return "hello, " .. args.name
end
`)

	m := &manifest.Manifest{
		Name:      "greeter",
		Type:      manifest.TypeLua,
		Hooks:     []string{"onGreet"},
		LuaPlugin: &manifest.LuaConfig{Entry: "entry.lua"},
	}

	h := NewHost()
	provider, err := h.Load(context.Background(), m, dir)
	require.NoError(t, err)

	impls := provider.Impls()
	require.Len(t, impls, 1)
	assert.Equal(t, "onGreet", impls[0].HookName)

	result, err := impls[0].Sync(context.Background(), map[string]any{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello, world", result)
}

func TestHost_Dispatch_MissingHookFunction(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "entry.lua", `function somethingElse() end`)

	m := &manifest.Manifest{
		Name:      "greeter",
		Type:      manifest.TypeLua,
		Hooks:     []string{"onGreet"},
		LuaPlugin: &manifest.LuaConfig{Entry: "entry.lua"},
	}

	h := NewHost()
	provider, err := h.Load(context.Background(), m, dir)
	require.NoError(t, err)

	impls := provider.Impls()
	require.Len(t, impls, 1)

	_, err = impls[0].Sync(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestHost_Dispatch_UnwrapsReceiverArgs(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "entry.lua", `
function onGreet(args)
  return args.receiver .. ":" .. args.args.name
end
`)

	m := &manifest.Manifest{
		Name:      "greeter",
		Type:      manifest.TypeLua,
		Hooks:     []string{"onGreet"},
		LuaPlugin: &manifest.LuaConfig{Entry: "entry.lua"},
	}

	h := NewHost()
	provider, err := h.Load(context.Background(), m, dir)
	require.NoError(t, err)

	impls := provider.Impls()
	require.Len(t, impls, 1)

	result, err := impls[0].Sync(context.Background(), receiverArgs{receiver: "room-1", args: map[string]any{"name": "world"}})
	require.NoError(t, err)
	assert.Equal(t, "room-1:world", result)
}

type receiverArgs struct {
	receiver any
	args     any
}

func (r receiverArgs) Receiver() any { return r.receiver }
func (r receiverArgs) Args() any     { return r.args }

var _ hookkernel.ReceiverArgs = receiverArgs{}
