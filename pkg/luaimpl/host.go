// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package luaimpl

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/dispatchkit/hookkernel"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

// Host loads Lua plugins and turns each into a hookkernel.ImplProvider,
// one impl per hook name the plugin's manifest declares. Every dispatch
// gets a fresh Lua state instead of the long-lived interpreter per
// plugin the host application's event-delivery model used, since a hook
// impl here is called far more granularly than a MUSH event handler.
type Host struct {
	factory *StateFactory
}

// NewHost creates a Lua plugin loader.
func NewHost() *Host {
	return &Host{factory: NewStateFactory()}
}

// Load implements manifest.Loader: it reads and syntax-checks the entry
// file named by the manifest, and returns a provider that runs it fresh
// for every impl invocation.
func (h *Host) Load(ctx context.Context, m *manifest.Manifest, dir string) (hookkernel.ImplProvider, error) {
	entryPath := filepath.Join(dir, m.LuaPlugin.Entry)
	code, err := os.ReadFile(filepath.Clean(entryPath))
	if err != nil {
		return nil, oops.In("luaimpl").With("plugin", m.Name).With("path", entryPath).Wrapf(err, "reading entry file")
	}

	L, err := h.factory.NewState(ctx)
	if err != nil {
		return nil, oops.In("luaimpl").With("plugin", m.Name).Wrapf(err, "creating validation state")
	}
	defer L.Close()

	if err := L.DoString(string(code)); err != nil {
		return nil, oops.In("luaimpl").With("plugin", m.Name).With("entry", m.LuaPlugin.Entry).Wrapf(err, "syntax error")
	}

	return &plugin{host: h, name: m.Name, code: string(code), hooks: m.Hooks}, nil
}

// plugin is one loaded Lua plugin. Each hook it declares maps to a Lua
// global function of the same name: `function <hook_name>(args) ... end`.
type plugin struct {
	host  *Host
	name  string
	code  string
	hooks []string
}

// Impls implements hookkernel.ImplProvider.
func (p *plugin) Impls() []hookkernel.Impl {
	out := make([]hookkernel.Impl, 0, len(p.hooks))
	for _, hookName := range p.hooks {
		hookName := hookName
		out = append(out, hookkernel.Impl{
			HookName: hookName,
			Sync: hookkernel.SyncFunc(func(ctx context.Context, args any) (any, error) {
				return p.call(ctx, hookName, args)
			}),
		})
	}
	return out
}

func (p *plugin) call(ctx context.Context, hookName string, args any) (any, error) {
	L, err := p.host.factory.NewState(ctx)
	if err != nil {
		return nil, oops.In("luaimpl").With("plugin", p.name).With("hook", hookName).Wrapf(err, "creating state")
	}
	defer L.Close()
	L.SetContext(ctx)

	if err := L.DoString(p.code); err != nil {
		return nil, oops.In("luaimpl").With("plugin", p.name).With("hook", hookName).Wrapf(err, "loading code")
	}

	fn := L.GetGlobal(hookName)
	if fn.Type() == lua.LTNil {
		return nil, oops.In("luaimpl").With("plugin", p.name).With("hook", hookName).New("plugin declares this hook but defines no matching function")
	}

	argValue := toLua(L, unwrapArgs(args))

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, argValue); err != nil {
		return nil, oops.In("luaimpl").With("plugin", p.name).With("hook", hookName).Wrap(err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	return fromLua(ret), nil
}

// unwrapArgs flattens a hookkernel.ReceiverArgs into a two-element table
// {receiver=..., args=...} so Lua code sees both halves; ordinary
// arguments pass through untouched.
func unwrapArgs(args any) any {
	if ra, ok := args.(hookkernel.ReceiverArgs); ok {
		return map[string]any{"receiver": ra.Receiver(), "args": ra.Args()}
	}
	return args
}
