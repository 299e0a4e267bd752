// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/hookkernel/internal/registry"
)

func setupTwoEnabledPlugins(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	_, err := r.Register([]registry.RegisterRequest{
		{Name: "a", Object: 1},
		{Name: "b", Object: 2},
	})
	require.NoError(t, err)
	return r
}

func TestScoped_OnlyRestrictsThenRestores(t *testing.T) {
	r := setupTwoEnabledPlugins(t)

	var sawBEnabled bool
	err := r.Scoped(&registry.ScopeSpec{Only: []string{"a"}}, func() error {
		pa, _ := r.Get("a")
		pb, _ := r.Get("b")
		sawBEnabled = pb.Enabled
		assert.True(t, pa.Enabled)
		return nil
	})
	require.NoError(t, err)
	assert.False(t, sawBEnabled, "only a should be enabled inside the scope")

	pa, _ := r.Get("a")
	pb, _ := r.Get("b")
	assert.True(t, pa.Enabled, "state must be restored after the scope exits")
	assert.True(t, pb.Enabled)
}

func TestScoped_DeltaAddsAndRemoves(t *testing.T) {
	r := setupTwoEnabledPlugins(t)
	require.True(t, r.SetEnabled("a", false))

	err := r.Scoped(&registry.ScopeSpec{Delta: true, Adds: []string{"a"}, Removes: []string{"b"}}, func() error {
		pa, _ := r.Get("a")
		pb, _ := r.Get("b")
		assert.True(t, pa.Enabled)
		assert.False(t, pb.Enabled)
		return nil
	})
	require.NoError(t, err)

	pa, _ := r.Get("a")
	pb, _ := r.Get("b")
	assert.False(t, pa.Enabled, "restored to the pre-scope state, not the original default")
	assert.True(t, pb.Enabled)
}

func TestScoped_UnknownPluginRestoresStateAndReturnsNoSuchPluginError(t *testing.T) {
	// Scenario S5: a reference to an unregistered plugin inside the scope
	// spec must leave the enabled set exactly as it was found.
	r := setupTwoEnabledPlugins(t)

	err := r.Scoped(&registry.ScopeSpec{Only: []string{"ghost"}}, func() error {
		t.Fatal("fn must not run when the scope spec fails to apply")
		return nil
	})

	var nsp *registry.NoSuchPluginError
	require.ErrorAs(t, err, &nsp)
	assert.Equal(t, "ghost", nsp.Name)

	pa, _ := r.Get("a")
	pb, _ := r.Get("b")
	assert.True(t, pa.Enabled)
	assert.True(t, pb.Enabled)
}

func TestScoped_RestoresEvenWhenFnErrors(t *testing.T) {
	r := setupTwoEnabledPlugins(t)
	boom := errors.New("boom")

	err := r.Scoped(&registry.ScopeSpec{Only: []string{"a"}}, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	pa, _ := r.Get("a")
	pb, _ := r.Get("b")
	assert.True(t, pa.Enabled)
	assert.True(t, pb.Enabled)
}

func TestScoped_NilSpecIsANoOp(t *testing.T) {
	r := setupTwoEnabledPlugins(t)
	require.True(t, r.SetEnabled("b", false))

	ran := false
	err := r.Scoped(nil, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	pb, _ := r.Get("b")
	assert.False(t, pb.Enabled, "nil spec must not touch enabled state")
}
