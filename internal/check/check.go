// SPDX-License-Identifier: MPL-2.0

package check

import (
	"context"
	"errors"
	"io/fs"
	"syscall"

	"github.com/charmbracelet/log"
)

// PolyfillPattern is the literal guard a script must contain to run against
// both the Firefox `browser` and the Chromium `chrome` namespaces.
const PolyfillPattern = "typeof browser !== 'undefined'"

type (
	// Checker is a single Firefox compatibility check.
	Checker interface {
		// Name labels the check in the summary.
		Name() string
		// Run inspects fsys, rooted at the extension source root. It never
		// returns an error: every problem becomes a failure finding.
		Run(ctx context.Context, fsys fs.FS) Result
	}

	// Suite runs checks in order against one extension root.
	Suite struct {
		Checks []Checker
		// Logger receives debug traces; nil uses the logger carried by the
		// context passed to Run (or the charmbracelet/log default).
		Logger *log.Logger
	}
)

// DefaultRequiredFields returns the manifest keys every extension must declare.
func DefaultRequiredFields() []string {
	return []string{"manifest_version", "name", "version"}
}

// DefaultRequiredFiles returns the files that must exist at the extension root.
func DefaultRequiredFiles() []string {
	return []string{
		"manifest.json",
		"popup.html",
		"settings.html",
		"scripts/background-sw.js",
	}
}

// DefaultPolyfillFiles returns the scripts expected to carry PolyfillPattern.
func DefaultPolyfillFiles() []string {
	return []string{
		"scripts/background-sw.js",
		"scripts/content/common.js",
		"scripts/pages/popup.js",
		"scripts/pages/settings.js",
		"scripts/pages/common.js",
	}
}

// DefaultChecks returns the manifest, required files and polyfill checks with
// their default settings, in execution order.
func DefaultChecks() []Checker {
	return []Checker{
		&ManifestCheck{Path: "manifest.json", RequiredFields: DefaultRequiredFields(), SchemaAdvisories: true},
		&RequiredFilesCheck{Files: DefaultRequiredFiles()},
		&PolyfillCheck{Files: DefaultPolyfillFiles(), Pattern: PolyfillPattern},
	}
}

// NewSuite creates a Suite running DefaultChecks.
func NewSuite(logger *log.Logger) *Suite {
	return &Suite{Checks: DefaultChecks(), Logger: logger}
}

// Run executes every check sequentially. A failing check never stops the
// checks after it.
func (s *Suite) Run(ctx context.Context, fsys fs.FS) *Report {
	if s.Logger != nil {
		ctx = log.WithContext(ctx, s.Logger)
	}
	logger := log.FromContext(ctx)

	report := &Report{Results: make([]Result, 0, len(s.Checks))}
	for _, c := range s.Checks {
		logger.Debug("running check", "check", c.Name())
		res := c.Run(ctx, fsys)
		logger.Debug("check finished", "check", c.Name(), "passed", res.Passed, "findings", len(res.Findings))
		report.Results = append(report.Results, res)
	}
	return report
}

// notExist reports whether err means the path does not resolve to a file.
// A parent that is a regular file (ENOTDIR) or a symlink loop (ELOOP) counts
// as absent, the same answer a plain existence test would give.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}
