// SPDX-License-Identifier: MPL-2.0

package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"foxcheck-cli/internal/issue"
	"foxcheck-cli/internal/manifest"

	"github.com/charmbracelet/log"
)

// ManifestCheck validates manifest.json. It fails when the file is missing,
// is not valid JSON, or lacks a required key. Everything else it reports
// (manifest version, Gecko settings, background setup, schema mismatches) is
// advisory.
type ManifestCheck struct {
	// Path is the manifest location relative to the extension root.
	Path string
	// RequiredFields are checked in order; the first missing key ends the check.
	RequiredFields []string
	// SchemaAdvisories enables the CUE type checks of consulted keys.
	SchemaAdvisories bool
}

// Name implements Checker.
func (c *ManifestCheck) Name() string { return "Manifest validation" }

// Run implements Checker.
func (c *ManifestCheck) Run(ctx context.Context, fsys fs.FS) Result {
	logger := log.FromContext(ctx)
	title := fmt.Sprintf("Validating %s...", c.Path)
	rec := &recorder{}

	logger.Debug("reading manifest", "path", c.Path)
	doc, err := manifest.Load(fsys, c.Path)
	if err != nil {
		var syntaxErr *manifest.SyntaxError
		switch {
		case errors.Is(err, manifest.ErrNotFound):
			rec.failure(issue.ManifestNotFoundId, "%s not found!", c.Path)
		case errors.As(err, &syntaxErr):
			rec.failure(issue.ManifestParseErrorId, "%s has JSON errors: %s", c.Path, syntaxErr)
		default:
			rec.failure(issue.FileUnreadableId, "Cannot read %s: %s", c.Path, unwrapPathError(err))
		}
		return rec.result(c.Name(), title, false)
	}
	rec.success("%s is valid JSON", c.Path)

	for _, field := range c.RequiredFields {
		if !doc.Has(field) {
			rec.failure(issue.RequiredFieldMissingId, "Missing required field: %s", field)
			return rec.result(c.Name(), title, false)
		}
		rec.success("Has required field: %s", field)
	}

	c.checkManifestVersion(doc, rec)
	c.checkGeckoSettings(doc, rec)
	c.checkBackground(doc, rec)
	if c.SchemaAdvisories {
		c.checkSchema(doc, rec, logger)
	}

	return rec.result(c.Name(), title, true)
}

func (c *ManifestCheck) checkManifestVersion(doc *manifest.Document, rec *recorder) {
	if !doc.Has(manifest.KeyManifestVersion) {
		// Only reachable when manifest_version was dropped from RequiredFields.
		return
	}
	if doc.IsNumber(3, manifest.KeyManifestVersion) {
		rec.success("Manifest version 3 (supported by Firefox 109+)")
		return
	}
	rec.warning(issue.ManifestVersionId, "Manifest version is %s, Firefox supports both MV2 and MV3",
		doc.Display(manifest.KeyManifestVersion))
}

func (c *ManifestCheck) checkGeckoSettings(doc *manifest.Document, rec *recorder) {
	if !doc.Has(manifest.KeyBrowserSpecificSettings) {
		rec.warning(issue.GeckoSettingsMissingId, "No browser_specific_settings found (recommended for Firefox)")
		return
	}

	gecko := doc.Object(manifest.KeyBrowserSpecificSettings, manifest.KeyGecko)
	if gecko.Has(manifest.KeyGeckoID) {
		rec.success("Firefox extension ID: %s", gecko.Display(manifest.KeyGeckoID))
	}
	if gecko.Has(manifest.KeyStrictMinVersion) {
		rec.success("Minimum Firefox version: %s", gecko.Display(manifest.KeyStrictMinVersion))
	}
}

func (c *ManifestCheck) checkBackground(doc *manifest.Document, rec *recorder) {
	if !doc.Has(manifest.KeyBackground) {
		return
	}

	background := doc.Object(manifest.KeyBackground)
	switch {
	case background.Has(manifest.KeyServiceWorker):
		rec.success("Service worker configured (Firefox 109+ supports this)")
	case background.Has(manifest.KeyScripts):
		rec.success("Background scripts configured")
	default:
		rec.warning(issue.BackgroundIncompleteId, "Background configuration may be incomplete")
	}
}

func (c *ManifestCheck) checkSchema(doc *manifest.Document, rec *recorder, logger *log.Logger) {
	lines, err := doc.Advisories()
	if err != nil {
		logger.Warn("manifest schema check skipped", "err", err)
		return
	}
	for _, line := range lines {
		rec.warning(issue.ManifestSchemaId, "Manifest schema: %s", line)
	}
}

// unwrapPathError drops the *fs.PathError wrapper so messages name the path once.
func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
