package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dispatchkit/hookkernel"
	"github.com/dispatchkit/hookkernel/internal/observability"
	"github.com/dispatchkit/hookkernel/pkg/diagslog"
	"github.com/dispatchkit/hookkernel/pkg/luaimpl"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/goplugin"
	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

// NewServeCmd loads a plugin directory into a kernel and keeps it resident
// behind a metrics/health HTTP endpoint until interrupted.
func NewServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load plugins and expose /metrics and /healthz until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			goHost := goplugin.NewHost()
			defer goHost.Close(context.Background()) //nolint:errcheck // best-effort on shutdown

			source := &manifest.Source{
				RootDir: config.String("plugins-dir"),
				Loaders: map[manifest.Type]manifest.Loader{
					manifest.TypeLua:    luaimpl.NewHost(),
					manifest.TypeBinary: goHost,
				},
			}

			ready := false
			srv, recorder := observability.NewServer(listenAddr, func() bool { return ready })

			k := hookkernel.Get(config.String("project"),
				hookkernel.WithDiagnostics(diagslog.New(nil)),
				hookkernel.WithRecorder(recorder),
			)

			if err := k.RegisterFrom(ctx, source, ""); err != nil {
				return err
			}
			ready = true

			errCh, err := srv.Start()
			if err != nil {
				return err
			}
			cmd.Printf("serving on %s (plugins from %s)\n", srv.Addr(), source.RootDir)

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			return srv.Stop(context.Background())
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", ":9100", "address to serve /metrics and /healthz on")
	return cmd
}
