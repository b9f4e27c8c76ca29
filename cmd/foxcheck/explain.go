// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"foxcheck-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newExplainCommand creates the `foxcheck explain` command.
func newExplainCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [issue]",
		Short: "Show the remediation note for an issue",
		Long: `Show the remediation note for an issue.

Without an argument, lists every issue foxcheck can report. With an issue
name (as printed in JSON and YAML reports), renders its note.

Examples:
  foxcheck explain
  foxcheck explain polyfill-missing`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var titles []string
			for _, is := range issue.Values() {
				titles = append(titles, is.Title()+"\t"+is.Heading())
			}
			return titles, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listIssues(app)
				return nil
			}

			is, ok := issue.ByTitle(args[0])
			if !ok {
				err := issue.NewErrorContext().
					WithOperation("explain issue").
					WithResource(args[0]).
					WithSuggestion("Run 'foxcheck explain' to list the known issues").
					Wrap(fmt.Errorf("unknown issue %q", args[0])).
					BuildError()
				return reportError(app.stderr, err, flags.verbose)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			style := "auto"
			if cfg, err := app.loadConfig(ctx, cmd, flags, flags.dir); err == nil {
				style = cfg.UI.ColorScheme.GlamourStyle()
			}
			out, err := is.Render(style)
			if err != nil {
				return reportError(app.stderr, fmt.Errorf("render note %q: %w", is.Title(), err), flags.verbose)
			}
			fmt.Fprint(app.stdout, out)
			return nil
		},
	}
}

func listIssues(app *App) {
	width := 0
	all := issue.Values()
	for _, is := range all {
		width = max(width, len(is.Title()))
	}
	fmt.Fprintln(app.stdout, TitleStyle.Render("Known issues"))
	for _, is := range all {
		pad := strings.Repeat(" ", width-len(is.Title()))
		fmt.Fprintf(app.stdout, "  %s%s  %s\n", HighlightStyle.Render(is.Title()), pad, is.Heading())
	}
}
