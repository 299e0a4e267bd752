// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package pluginsdk

import (
	"net"
	"net/rpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImpl is a minimal Impl used to exercise the net/rpc wire glue
// without spawning a subprocess.
type testImpl struct {
	hooks  []string
	result []byte
	err    error
}

func (t *testImpl) Hooks() []string { return t.hooks }
func (t *testImpl) Call(hook string, argsJSON []byte) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.result, nil
}

// dial wires an rpcServer and rpcClient together over a loopback TCP connection,
// the same roles go-plugin's net/rpc transport places them in.
func dial(t *testing.T, impl *testImpl) *rpcClient {
	t.Helper()

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Plugin", &rpcServer{impl: impl}))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		server.ServeConn(conn)
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &rpcClient{client: rpc.NewClient(conn)}
}

func TestRPCClient_Hooks_ForwardsHookList(t *testing.T) {
	impl := &testImpl{hooks: []string{"onGreet", "onAdd"}}
	client := dial(t, impl)

	assert.Equal(t, []string{"onGreet", "onAdd"}, client.Hooks())
}

func TestRPCClient_Call_ForwardsResult(t *testing.T) {
	impl := &testImpl{result: []byte(`{"ok":true}`)}
	client := dial(t, impl)

	result, err := client.Call("onGreet", []byte(`{"name":"world"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(result))
}

func TestRPCClient_Call_SurfacesRemoteError(t *testing.T) {
	impl := &testImpl{err: assertError("impl exploded")}
	client := dial(t, impl)

	_, err := client.Call("onGreet", nil)
	require.Error(t, err)

	var remote *RemoteError
	ok := asRemoteError(err, &remote)
	require.True(t, ok)
	assert.Equal(t, "impl exploded", remote.Message)
}

type assertError string

func (e assertError) Error() string { return string(e) }

func asRemoteError(err error, target **RemoteError) bool {
	re, ok := err.(*RemoteError)
	if !ok {
		return false
	}
	*target = re
	return true
}
