package main

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dispatchkit/hookkernel"
	"github.com/dispatchkit/hookkernel/internal/metrics"
	"github.com/dispatchkit/hookkernel/pkg/diagslog"
	"github.com/dispatchkit/hookkernel/pkg/luaimpl"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/goplugin"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

// NewDemoCmd loads every plugin under --plugins-dir into a fresh kernel,
// registers a single "demo" hook spec collecting every impl's result with
// ALL_AVAILS, dispatches it once, and prints the reduced value as JSON.
func NewDemoCmd() *cobra.Command {
	var hookName string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Load a plugin directory and dispatch one hook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			reg := prometheus.NewRegistry()
			recorder := metrics.New(reg)

			k := hookkernel.Get(config.String("project"),
				hookkernel.WithDiagnostics(diagslog.New(nil)),
				hookkernel.WithRecorder(recorder),
			)

			if err := k.RegisterSpec(hookkernel.Spec{
				Name:   hookName,
				Result: hookkernel.NamedStrategy(hookkernel.ALLAvails),
			}); err != nil {
				return err
			}

			source := &manifest.Source{
				RootDir: config.String("plugins-dir"),
				Loaders: map[manifest.Type]manifest.Loader{
					manifest.TypeLua:    luaimpl.NewHost(),
					manifest.TypeBinary: goplugin.NewHost(),
				},
			}

			if err := k.RegisterFrom(ctx, source, ""); err != nil {
				return err
			}

			result, err := k.Dispatch(ctx, hookName, map[string]any{"source": "hookctl demo"})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&hookName, "hook", "demo", "hook name to dispatch")
	return cmd
}
