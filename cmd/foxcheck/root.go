// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"foxcheck-cli/internal/config"
	"foxcheck-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every command.
type rootFlagValues struct {
	dir        string
	configPath string
	verbose    bool
	format     string
	explain    bool
	watch      bool
}

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	root := &cobra.Command{
		Use:   "foxcheck",
		Short: "Check a browser extension for Firefox compatibility",
		Long: TitleStyle.Render("foxcheck") + SubtitleStyle.Render(" - Firefox compatibility checks for browser extensions") + `

foxcheck inspects an extension source root: manifest.json, the files the
extension needs at runtime, and the browser API polyfill guard in its
scripts. It exits 0 when every check passes and 1 otherwise.

` + SubtitleStyle.Render("Examples:") + `
  foxcheck                      Check the current directory
  foxcheck -C ./extension       Check another directory
  foxcheck --format json        Machine-readable report
  foxcheck --explain            Explain every reported problem
  foxcheck --watch              Re-check whenever a checked file changes
  foxcheck config show          Show the effective configuration
  foxcheck explain              List the issues foxcheck reports`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, app, flags, flags.dir)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "C", ".", "extension root to check")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is <dir>/foxcheck.cue when present)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging on stderr")
	pf.StringVar(&flags.format, "format", string(config.FormatText), "report format: text, json or yaml")
	pf.BoolVar(&flags.explain, "explain", false, "explain every reported problem after the summary")
	pf.BoolVarP(&flags.watch, "watch", "w", false, "re-run the checks when a checked file changes")

	root.AddCommand(newValidateCommand(app, flags))
	root.AddCommand(newConfigCommand(app, flags))
	root.AddCommand(newExplainCommand(app, flags))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the resulting status. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	err := executeRoot(context.Background(), NewRootCommand(app), fang.WithNotifySignal(os.Interrupt))
	os.Exit(int(exitStatus(err)))
}

// executeRoot runs root through fang with the foxcheck version and error handler.
func executeRoot(ctx context.Context, root *cobra.Command, opts ...fang.Option) error {
	opts = append([]fang.Option{
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(handleError),
	}, opts...)
	return fang.Execute(ctx, root, opts...)
}

// handleError prints errors that escaped the command handlers. An ExitError
// has already been reported (or is just a failing verdict) and prints nothing.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display, including the
// suggestions of an ActionableError.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// reportError prints err to w and converts it to an exit status 1.
func reportError(w io.Writer, err error, verboseMode bool) error {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verboseMode))
	return &ExitError{Code: 1, Err: err}
}
