// Package main is the entry point for hookctl, a small CLI around the
// hook dispatch kernel for validating manifests and smoke-testing a
// plugin directory.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dispatchkit/hookkernel/internal/logging"
	"github.com/dispatchkit/hookkernel/pkg/errutil"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	logging.SetDefault("hookctl", version, os.Getenv("HOOKCTL_LOG_FORMAT"))

	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		errutil.LogError(slog.Default(), "hookctl command failed", err)
		os.Exit(1)
	}
}
