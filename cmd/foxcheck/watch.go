// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"foxcheck-cli/internal/config"
	"foxcheck-cli/internal/watch"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runWatchMode checks dir once, then re-checks it after every debounced
// batch of changes to a checked file or the config file until the context is
// canceled. A config change reloads the configuration and the watch filters.
// The exit status reflects the last run.
func runWatchMode(ctx context.Context, app *App, cmd *cobra.Command, flags *rootFlagValues, cfg *config.Config, logger *log.Logger, dir string) error {
	arrow := HighlightStyle.Render("→")

	rep, err := app.checkOnce(ctx, cfg, logger, dir)
	if err != nil {
		return reportError(app.stderr, err, cfg.UI.Verbose)
	}
	last := rep.ExitCode()

	configRel, extra, err := configWatch(dir, flags.configPath)
	if err != nil {
		return reportError(app.stderr, fmt.Errorf("start watcher: %w", err), cfg.UI.Verbose)
	}

	var w *watch.Watcher
	w, err = watch.New(watch.Config{
		Root:     dir,
		Patterns: cfg.WatchPatterns(),
		Ignore:   cfg.Watch.Ignore,
		Files:    extra,
		Debounce: cfg.Watch.Debounce,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) {
			fmt.Fprintf(app.stderr, "\n%s Detected %d change(s). Re-checking...\n\n", arrow, len(changed))

			if slices.Contains(changed, configRel) {
				reloaded, loadErr := app.loadConfig(ctx, cmd, flags, dir)
				if loadErr != nil {
					fmt.Fprintf(app.stderr, "%s keeping previous configuration: %s\n",
						WarningStyle.Render("!"), formatErrorForDisplay(loadErr, cfg.UI.Verbose))
				} else {
					cfg = reloaded
					logger.Debug("configuration reloaded", "source", cfg.Source)
					if watchErr := w.Reconfigure(cfg.WatchPatterns(), cfg.Watch.Ignore, cfg.Watch.Debounce); watchErr != nil {
						fmt.Fprintf(app.stderr, "%s keeping previous watch patterns: %v\n", WarningStyle.Render("!"), watchErr)
					}
				}
			}

			rep, runErr := app.checkOnce(ctx, cfg, logger, dir)
			if runErr != nil {
				fmt.Fprintf(app.stderr, "%s %v\n", WarningStyle.Render("!"), runErr)
				return
			}
			last = rep.ExitCode()
			fmt.Fprintf(app.stderr, "\n%s Watching for changes...\n", arrow)
		},
	})
	if err != nil {
		return reportError(app.stderr, fmt.Errorf("start watcher: %w", err), cfg.UI.Verbose)
	}

	fmt.Fprintf(app.stderr, "\n%s Watching %s for changes (Ctrl+C to stop)...\n", arrow, dir)
	if err := w.Run(ctx); err != nil {
		return reportError(app.stderr, err, cfg.UI.Verbose)
	}
	if !last.IsSuccess() {
		return &ExitError{Code: last}
	}
	return nil
}

// configWatch returns the config file path the way the watcher reports it
// for dir, plus the extra files to watch. An explicit --config file may live
// anywhere, so it is watched on its own; the default foxcheck.cue is already
// covered by the watch patterns.
func configWatch(dir, explicit string) (string, []string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return "", nil, err
	}
	if explicit == "" {
		return filepath.ToSlash(rel), nil, nil
	}
	return filepath.ToSlash(rel), []string{absPath}, nil
}
