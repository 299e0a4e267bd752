package main

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// config is the process-wide layered configuration: defaults, overlaid by
// an optional YAML config file, overlaid by command-line flags.
var config = koanf.New(".")

var configFile string

// NewRootCmd creates the root command for the hookctl CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hookctl",
		Short: "Inspect and smoke-test hook dispatch kernel plugin directories",
		Long: `hookctl validates plugin.yaml manifests against the kernel's JSON
Schema, prints that schema, and can load a plugin directory into a kernel
for a one-shot dispatch to confirm wiring end to end.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file path")
	cmd.PersistentFlags().String("plugins-dir", "./plugins", "directory of plugin.yaml subdirectories")
	cmd.PersistentFlags().String("project", "", "kernel project name (empty mints an anonymous one)")

	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewDemoCmd())
	cmd.AddCommand(NewServeCmd())

	return cmd
}

// loadConfig layers defaults < config file < flags, the koanf v2 pattern
// for CLI configuration (spec's ambient config-layer requirement).
func loadConfig(cmd *cobra.Command) error {
	if configFile != "" {
		if err := config.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configFile, err)
		}
	}

	return config.Load(posflag.Provider(cmd.Flags(), ".", config), nil)
}
