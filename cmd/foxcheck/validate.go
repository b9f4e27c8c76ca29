// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"foxcheck-cli/internal/check"
	"foxcheck-cli/internal/config"
	"foxcheck-cli/internal/issue"
	"foxcheck-cli/internal/report"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newValidateCommand creates the `foxcheck validate [dir]` command.
func newValidateCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check an extension root for Firefox compatibility",
		Long: `Check an extension root for Firefox compatibility.

Runs the manifest, required files and browser API polyfill checks against
dir (default: the --dir flag, which defaults to the current directory).

Examples:
  foxcheck validate
  foxcheck validate ./extension --format yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.dir
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(cmd, app, flags, dir)
		},
	}
}

// runValidate checks dir once, or keeps re-checking it in watch mode.
func runValidate(cmd *cobra.Command, app *App, flags *rootFlagValues, dir string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := app.prepare(ctx, cmd, flags, dir)
	if err != nil {
		return reportError(app.stderr, err, flags.verbose)
	}

	if flags.watch {
		return runWatchMode(ctx, app, cmd, flags, cfg, logger, dir)
	}

	rep, err := app.checkOnce(ctx, cfg, logger, dir)
	if err != nil {
		return reportError(app.stderr, err, cfg.UI.Verbose)
	}
	if !rep.Passed() {
		return &ExitError{Code: rep.ExitCode()}
	}
	return nil
}

// prepare validates the extension root, resolves the configuration with
// flag overrides applied and builds the logger for the run.
func (a *App) prepare(ctx context.Context, cmd *cobra.Command, flags *rootFlagValues, dir string) (*config.Config, *log.Logger, error) {
	if err := ensureDir(dir); err != nil {
		return nil, nil, err
	}

	cfg, err := a.loadConfig(ctx, cmd, flags, dir)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(a.stderr, cfg.UI.Verbose)
	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	logger.Debug("configuration resolved", "source", source, "dir", dir, "format", cfg.UI.Format)
	return cfg, logger, nil
}

// loadConfig loads the configuration for dir and applies explicitly set flags.
func (a *App) loadConfig(ctx context.Context, cmd *cobra.Command, flags *rootFlagValues, dir string) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath, BaseDir: dir})
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		format := config.OutputFormat(flags.format)
		if err := format.Validate(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("parse --format").
				WithSuggestion("Use one of: text, json, yaml").
				Wrap(err).
				BuildError()
		}
		cfg.UI.Format = format
	}
	if fs.Changed("verbose") {
		cfg.UI.Verbose = flags.verbose
	}
	if fs.Changed("explain") {
		cfg.UI.Explain = flags.explain
	}
	return cfg, nil
}

// checkOnce runs the suite against dir and writes the report to stdout.
func (a *App) checkOnce(ctx context.Context, cfg *config.Config, logger *log.Logger, dir string) (*check.Report, error) {
	suite := &check.Suite{Checks: cfg.Checks(), Logger: logger}
	rep := suite.Run(ctx, os.DirFS(dir))

	err := report.Write(a.stdout, rep, report.Options{
		Format:  cfg.UI.Format,
		Explain: cfg.UI.Explain,
		Style:   cfg.UI.ColorScheme.GlamourStyle(),
	})
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return rep, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("%s is not a directory", dir)
	}
	return issue.NewErrorContext().
		WithOperation("open extension root").
		WithResource(dir).
		WithSuggestion("Pass the directory that contains manifest.json").
		WithSuggestion("Use -C/--dir or 'foxcheck validate <dir>' to point at another directory").
		Wrap(err).
		BuildError()
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "foxcheck",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
