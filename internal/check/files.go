// SPDX-License-Identifier: MPL-2.0

package check

import (
	"context"
	"io/fs"

	"foxcheck-cli/internal/issue"

	"github.com/charmbracelet/log"
)

// RequiredFilesCheck verifies that each listed path exists. It inspects
// existence only and reports every path, even after the first missing one.
type RequiredFilesCheck struct {
	Files []string
}

// Name implements Checker.
func (c *RequiredFilesCheck) Name() string { return "Required files" }

// Run implements Checker.
func (c *RequiredFilesCheck) Run(ctx context.Context, fsys fs.FS) Result {
	logger := log.FromContext(ctx)
	rec := &recorder{}

	allExist := true
	for _, name := range c.Files {
		_, err := fs.Stat(fsys, name)
		logger.Debug("stat required file", "path", name, "err", err)
		switch {
		case err == nil:
			rec.success("Found: %s", name)
		case notExist(err):
			rec.failure(issue.RequiredFileMissingId, "Missing: %s", name)
			allExist = false
		default:
			rec.failure(issue.FileUnreadableId, "Cannot read %s: %s", name, unwrapPathError(err))
			allExist = false
		}
	}

	return rec.result(c.Name(), "Checking for required files...", allExist)
}
