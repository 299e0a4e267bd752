// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package pluginsdk is what a binary-plugin author links against to serve
// hook impls over HashiCorp go-plugin's net/rpc transport (chosen over the
// gRPC transport so plugin authors need no protoc-generated stubs — see
// DESIGN.md). Host and plugin must agree on the wire types and handshake
// defined here; do not redefine them locally on either side.
package pluginsdk

import (
	"net/rpc"

	hashiplug "github.com/hashicorp/go-plugin"
)

// HandshakeConfig is the go-plugin handshake configuration. Both host and
// plugins must use the same values.
var HandshakeConfig = hashiplug.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "HOOKKERNEL_PLUGIN",
	MagicCookieValue: "hookkernel-v1",
}

// HooksRequest is the (empty) net/rpc request for the Hooks call.
type HooksRequest struct{}

// HooksResponse reports the hook names a binary plugin implements.
type HooksResponse struct {
	Hooks []string
}

// CallRequest is the net/rpc request for invoking one impl. Arguments
// cross the wire pre-serialized to JSON rather than via gob, since the
// dispatcher's call arguments are an opaque `any` the plugin process has
// no type registered for.
type CallRequest struct {
	Hook     string
	ArgsJSON []byte
}

// CallResponse is the net/rpc response for a Call invocation. Err carries
// the impl's error message rather than using net/rpc's own error return,
// so a failed impl call is distinguishable from a transport failure.
type CallResponse struct {
	ResultJSON []byte
	Err        string
}

// Impl is what a plugin author implements: the hook names served, and the
// call dispatch itself, both in plain Go terms with JSON already handled
// by the SDK's RPC glue.
type Impl interface {
	Hooks() []string
	Call(hook string, argsJSON []byte) (resultJSON []byte, err error)
}

// Plugin adapts an Impl to go-plugin's net/rpc Plugin interface. Pass it
// in the PluginMap on the plugin-process side with Impl set; the host side
// never sets Impl; it only dispenses through PluginMap and gets back an
// Impl-shaped RPC client (see pkg/pluginsource/goplugin).
type Plugin struct {
	hashiplug.NetRPCUnsupportedPlugin
	Impl Impl
}

// Server is called by go-plugin on the plugin process to produce the
// net/rpc server object.
func (p *Plugin) Server(*hashiplug.MuxBroker) (any, error) {
	return &rpcServer{impl: p.Impl}, nil
}

// Client is called by go-plugin on the host process to produce the
// net/rpc client-side stub, itself satisfying Impl.
func (p *Plugin) Client(_ *hashiplug.MuxBroker, c *rpc.Client) (any, error) {
	return &rpcClient{client: c}, nil
}

// PluginMap is the map of dispensable plugins shared by host and plugin
// binaries.
var PluginMap = map[string]hashiplug.Plugin{
	"plugin": &Plugin{},
}

// rpcServer exposes Impl over net/rpc. Method signatures follow net/rpc's
// convention: exported, two arguments, the second a pointer, returning
// error.
type rpcServer struct {
	impl Impl
}

func (s *rpcServer) Hooks(_ HooksRequest, resp *HooksResponse) error {
	resp.Hooks = s.impl.Hooks()
	return nil
}

func (s *rpcServer) Call(req CallRequest, resp *CallResponse) error {
	result, err := s.impl.Call(req.Hook, req.ArgsJSON)
	if err != nil {
		resp.Err = err.Error()
		return nil
	}
	resp.ResultJSON = result
	return nil
}

// rpcClient is the host-side net/rpc stub, satisfying Impl by forwarding
// every call across the wire.
type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) Hooks() []string {
	var resp HooksResponse
	if err := c.client.Call("Plugin.Hooks", HooksRequest{}, &resp); err != nil {
		return nil
	}
	return resp.Hooks
}

func (c *rpcClient) Call(hook string, argsJSON []byte) ([]byte, error) {
	var resp CallResponse
	if err := c.client.Call("Plugin.Call", CallRequest{Hook: hook, ArgsJSON: argsJSON}, &resp); err != nil {
		return nil, err
	}
	if resp.Err != "" {
		return nil, &RemoteError{Message: resp.Err}
	}
	return resp.ResultJSON, nil
}

// RemoteError wraps an error message reported by the plugin process,
// distinguishing a failed impl call from a transport-level RPC failure.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// Serve runs impl as a go-plugin binary plugin, blocking until the host
// disconnects. Plugin authors call this from their binary's main.
func Serve(impl Impl) {
	hashiplug.Serve(&hashiplug.ServeConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins: map[string]hashiplug.Plugin{
			"plugin": &Plugin{Impl: impl},
		},
	})
}
