// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package goplugin loads binary hook plugins as HashiCorp go-plugin
// subprocesses speaking net/rpc (not gRPC — see pkg/pluginsdk), turning
// each into a hookkernel.ImplProvider whose impls round-trip arguments and
// results as JSON.
package goplugin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	hashiplug "github.com/hashicorp/go-plugin"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/dispatchkit/hookkernel"
	"github.com/dispatchkit/hookkernel/pkg/pluginsdk"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

// HandshakeRetryBudget bounds how long Load waits for a freshly spawned
// plugin subprocess to complete the go-plugin handshake.
const HandshakeRetryBudget = 5 * time.Second

// Client abstracts a go-plugin client for testability.
type Client interface {
	Client() (hashiplug.ClientProtocol, error)
	Kill()
}

// ClientFactory creates Clients for an executable path. Overridable in
// tests.
type ClientFactory interface {
	NewClient(execPath string) Client
}

// DefaultClientFactory spawns real go-plugin subprocesses over net/rpc.
type DefaultClientFactory struct{}

// NewClient implements ClientFactory.
func (DefaultClientFactory) NewClient(execPath string) Client {
	return hashiplug.NewClient(&hashiplug.ClientConfig{
		HandshakeConfig:  pluginsdk.HandshakeConfig,
		Plugins:          pluginsdk.PluginMap,
		Cmd:              exec.Command(execPath), // #nosec G204 -- execPath resolved from a discovered plugin manifest
		AllowedProtocols: []hashiplug.Protocol{hashiplug.ProtocolNetRPC},
	})
}

// Host loads binary plugins and tracks their subprocesses so Close can
// terminate them.
type Host struct {
	factory ClientFactory
	mu      sync.Mutex
	clients []Client
}

// NewHost creates a binary plugin loader using real go-plugin subprocesses.
func NewHost() *Host {
	return &Host{factory: DefaultClientFactory{}}
}

// NewHostWithFactory creates a loader with a custom ClientFactory, for
// tests that stub out the subprocess boundary.
func NewHostWithFactory(factory ClientFactory) *Host {
	return &Host{factory: factory}
}

// Load implements manifest.Loader.
func (h *Host) Load(ctx context.Context, m *manifest.Manifest, dir string) (hookkernel.ImplProvider, error) {
	execPath := filepath.Join(dir, m.BinaryPlugin.Executable)
	if _, err := os.Stat(execPath); err != nil {
		return nil, oops.In("goplugin").With("plugin", m.Name).With("path", execPath).Wrapf(err, "plugin executable not accessible")
	}

	client := h.factory.NewClient(execPath)

	rpcClient, err := h.handshake(ctx, client)
	if err != nil {
		client.Kill()
		return nil, oops.In("goplugin").With("plugin", m.Name).Wrapf(err, "handshake failed")
	}

	raw, err := rpcClient.Dispense("plugin")
	if err != nil {
		client.Kill()
		return nil, oops.In("goplugin").With("plugin", m.Name).Wrapf(err, "dispensing plugin")
	}

	impl, ok := raw.(pluginsdk.Impl)
	if !ok {
		client.Kill()
		return nil, oops.In("goplugin").With("plugin", m.Name).New("plugin does not implement pluginsdk.Impl")
	}

	h.mu.Lock()
	h.clients = append(h.clients, client)
	h.mu.Unlock()

	return &binaryPlugin{impl: impl, hooks: impl.Hooks()}, nil
}

// handshake retries the initial RPC handshake with exponential backoff:
// the subprocess may still be starting up when Load first calls Client().
func (h *Host) handshake(ctx context.Context, client Client) (hashiplug.ClientProtocol, error) {
	backoff := retry.WithMaxDuration(HandshakeRetryBudget, retry.NewExponential(25*time.Millisecond))

	var rpcClient hashiplug.ClientProtocol
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := client.Client()
		if err != nil {
			return retry.RetryableError(err)
		}
		rpcClient = c
		return nil
	})
	return rpcClient, err
}

// Close terminates every subprocess this host has spawned.
func (h *Host) Close(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.Kill()
	}
	h.clients = nil
	return nil
}

// binaryPlugin adapts a pluginsdk.Impl (a net/rpc client stub) to
// hookkernel.ImplProvider, marshaling dispatch arguments to JSON on the
// way out and results back from JSON on the way in.
type binaryPlugin struct {
	impl  pluginsdk.Impl
	hooks []string
}

// Impls implements hookkernel.ImplProvider.
func (p *binaryPlugin) Impls() []hookkernel.Impl {
	out := make([]hookkernel.Impl, 0, len(p.hooks))
	for _, hookName := range p.hooks {
		hookName := hookName
		out = append(out, hookkernel.Impl{
			HookName: hookName,
			Sync: hookkernel.SyncFunc(func(_ context.Context, args any) (any, error) {
				return p.call(hookName, args)
			}),
		})
	}
	return out
}

func (p *binaryPlugin) call(hookName string, args any) (any, error) {
	if ra, ok := args.(hookkernel.ReceiverArgs); ok {
		args = map[string]any{"receiver": ra.Receiver(), "args": ra.Args()}
	}

	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal args for hook %s: %w", hookName, err)
	}

	resultJSON, err := p.impl.Call(hookName, argsJSON)
	if err != nil {
		return nil, err
	}
	if len(resultJSON) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result for hook %s: %w", hookName, err)
	}
	return result, nil
}
