package main

import (
	"github.com/spf13/cobra"

	"github.com/dispatchkit/hookkernel/pkg/pluginsource/manifest"
)

// NewSchemaCmd prints the JSON Schema every plugin.yaml is validated
// against.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the plugin.yaml JSON Schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := manifest.GenerateSchema()
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}
}
