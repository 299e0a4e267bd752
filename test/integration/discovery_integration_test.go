// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/dispatchkit/hookkernel"
	"github.com/dispatchkit/hookkernel/pkg/luaimpl"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

const greetManifestTemplate = `
name: %s
version: "1.0.0"
type: lua
hooks: ["onGreet"]
%s
lua-plugin:
  entry: main.lua
`

const greetEntryTemplate = `
function onGreet(args)
  return "%s:" .. args.name
end
`

// writeLuaPlugin lays out one plugin subdirectory under root: a
// plugin.yaml manifest plus its Lua entry file.
func writeLuaPlugin(root, name, priorityLine string) {
	dir := filepath.Join(root, name)
	Expect(os.MkdirAll(dir, 0o755)).To(Succeed())

	manifestBody := fmt.Sprintf(greetManifestTemplate, name, priorityLine)
	Expect(os.WriteFile(filepath.Join(dir, "plugin.yaml"), []byte(manifestBody), 0o644)).To(Succeed())

	entryBody := fmt.Sprintf(greetEntryTemplate, name)
	Expect(os.WriteFile(filepath.Join(dir, "main.lua"), []byte(entryBody), 0o644)).To(Succeed())
}

var _ = Describe("discovering and dispatching to manifest-based Lua plugins", func() {
	var (
		root   string
		source *manifest.Source
		k      *hookkernel.Kernel
		ctx    context.Context
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		ctx = context.Background()
		k = hookkernel.Get("")

		source = &manifest.Source{
			RootDir: root,
			Loaders: map[manifest.Type]manifest.Loader{
				manifest.TypeLua: luaimpl.NewHost(),
			},
		}
	})

	It("registers every discovered plugin and dispatches to all of them", func() {
		Expect(k.RegisterSpec(hookkernel.Spec{
			Name:   "onGreet",
			Result: hookkernel.NamedStrategy(hookkernel.ALLAvails),
		})).To(Succeed())

		writeLuaPlugin(root, "alpha", "")
		writeLuaPlugin(root, "beta", "")

		Expect(k.RegisterFrom(ctx, source, "")).To(Succeed())

		result, err := k.Dispatch(ctx, "onGreet", map[string]any{"name": "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(ConsistOf("alpha:world", "beta:world"))
	})

	It("restricts discovery to names matching the Only glob filter", func() {
		Expect(k.RegisterSpec(hookkernel.Spec{
			Name:   "onGreet",
			Result: hookkernel.NamedStrategy(hookkernel.ALLAvails),
		})).To(Succeed())

		writeLuaPlugin(root, "alpha", "")
		writeLuaPlugin(root, "beta", "")
		source.Only = []string{"al*"}

		Expect(k.RegisterFrom(ctx, source, "")).To(Succeed())

		result, err := k.Dispatch(ctx, "onGreet", map[string]any{"name": "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(ConsistOf("alpha:world"))
	})

	It("falls back to the last eligible impl by declared priority under SINGLE with no target", func() {
		Expect(k.RegisterSpec(hookkernel.Spec{
			Name:   "onGreet",
			Result: hookkernel.NamedStrategy(hookkernel.Single),
		})).To(Succeed())

		writeLuaPlugin(root, "alpha", "priority: 10")
		writeLuaPlugin(root, "beta", "priority: 20")

		Expect(k.RegisterFrom(ctx, source, "")).To(Succeed())

		result, err := k.Dispatch(ctx, "onGreet", map[string]any{"name": "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("beta:world"))
	})

	It("skips a manifest whose type has no configured loader", func() {
		Expect(k.RegisterSpec(hookkernel.Spec{
			Name:   "onGreet",
			Result: hookkernel.NamedStrategy(hookkernel.ALLAvails),
		})).To(Succeed())

		writeLuaPlugin(root, "alpha", "")
		binDir := filepath.Join(root, "gamma")
		Expect(os.MkdirAll(binDir, 0o755)).To(Succeed())
		binaryManifest := "name: gamma\nversion: \"1.0.0\"\ntype: binary\nhooks: [\"onGreet\"]\nbinary-plugin:\n  executable: gamma\n"
		Expect(os.WriteFile(filepath.Join(binDir, "plugin.yaml"), []byte(binaryManifest), 0o644)).To(Succeed())

		Expect(k.RegisterFrom(ctx, source, "")).To(Succeed())

		result, err := k.Dispatch(ctx, "onGreet", map[string]any{"name": "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(ConsistOf("alpha:world"))
	})
})
