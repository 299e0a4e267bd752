package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

// NewValidateCmd validates one plugin.yaml file against the manifest
// schema and the struct-level Validate rules.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plugin.yaml>",
		Short: "Validate a plugin manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if err := manifest.ValidateSchema(data); err != nil {
				return fmt.Errorf("schema validation: %s", manifest.FormatSchemaError(err))
			}

			m, err := manifest.Parse(data)
			if err != nil {
				return err
			}

			cmd.Printf("%s@%s: ok (%s, %d hooks)\n", m.Name, m.Version, m.Type, len(m.Hooks))
			return nil
		},
	}
}
