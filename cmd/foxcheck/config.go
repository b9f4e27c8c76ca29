// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"foxcheck-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `foxcheck config` command group.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect foxcheck configuration",
		Long: `Inspect foxcheck configuration.

foxcheck reads an optional foxcheck.cue from the extension root, or the
file given with --config. Omitted settings keep their defaults.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as CUE",
		Long: `Print the effective configuration as CUE.

The output is a complete foxcheck.cue: save it at the extension root and edit
it to change the checks.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := app.loadConfig(ctx, cmd, flags, flags.dir)
			if err != nil {
				return reportError(app.stderr, err, flags.verbose)
			}
			if cfg.Source != "" {
				fmt.Fprintf(app.stdout, "// Loaded from %s\n", cfg.Source)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return configCmd
}
