// SPDX-License-Identifier: MPL-2.0

package check

import (
	"bytes"
	"context"
	"io/fs"

	"foxcheck-cli/internal/issue"

	"github.com/charmbracelet/log"
)

// PolyfillCheck searches each listed script for Pattern. Scripts that do not
// exist are skipped with a warning and never fail the check; an existing
// script without the pattern does, and scanning continues either way.
type PolyfillCheck struct {
	Files   []string
	Pattern string
}

// Name implements Checker.
func (c *PolyfillCheck) Name() string { return "Browser API polyfill" }

// Run implements Checker.
func (c *PolyfillCheck) Run(ctx context.Context, fsys fs.FS) Result {
	logger := log.FromContext(ctx)
	rec := &recorder{}
	pattern := []byte(c.Pattern)

	allGood := true
	for _, name := range c.Files {
		content, err := fs.ReadFile(fsys, name)
		switch {
		case notExist(err):
			rec.warning(issue.PolyfillFileNotFoundId, "File not found: %s", name)
			continue
		case err != nil:
			rec.failure(issue.FileUnreadableId, "Cannot read %s: %s", name, unwrapPathError(err))
			allGood = false
			continue
		}

		logger.Debug("scanning for polyfill", "path", name, "bytes", len(content))
		if bytes.Contains(content, pattern) {
			rec.success("Polyfill found in: %s", name)
		} else {
			rec.failure(issue.PolyfillMissingId, "Polyfill missing in: %s", name)
			allGood = false
		}
	}

	return rec.result(c.Name(), "Checking for browser API polyfill...", allGood)
}
