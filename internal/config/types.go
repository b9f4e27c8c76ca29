// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"

	"foxcheck-cli/internal/check"
)

const (
	// FormatText prints the emoji status report.
	FormatText OutputFormat = "text"
	// FormatJSON prints the report as JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML prints the report as YAML.
	FormatYAML OutputFormat = "yaml"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	defaultDebounce = 500 * time.Millisecond
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCheckPath is the sentinel error wrapped by InvalidCheckPathError.
	ErrInvalidCheckPath = errors.New("invalid check path")
	// ErrEmptyPattern is returned when the polyfill pattern is empty.
	ErrEmptyPattern = errors.New("polyfill pattern must not be empty")
)

type (
	// OutputFormat selects how the report is printed.
	OutputFormat string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidCheckPathError is returned when a configured path is empty,
	// absolute or escapes the extension root.
	InvalidCheckPathError struct {
		Field string
		Value string
	}

	// Config holds the effective foxcheck configuration.
	Config struct {
		// Manifest configures the manifest check.
		Manifest ManifestConfig `json:"manifest" mapstructure:"manifest"`
		// RequiredFiles must all exist at the extension root.
		RequiredFiles []string `json:"required_files" mapstructure:"required_files"`
		// Polyfill configures the browser API polyfill check.
		Polyfill PolyfillConfig `json:"polyfill" mapstructure:"polyfill"`
		// UI controls report rendering.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Watch configures --watch mode.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`

		// Source is the config file the values were read from; empty when
		// only defaults apply.
		Source string `json:"-" mapstructure:"-"`
	}

	// ManifestConfig configures the manifest check.
	ManifestConfig struct {
		Path             string   `json:"path" mapstructure:"path"`
		RequiredFields   []string `json:"required_fields" mapstructure:"required_fields"`
		SchemaAdvisories bool     `json:"schema_advisories" mapstructure:"schema_advisories"`
	}

	// PolyfillConfig configures the polyfill check.
	PolyfillConfig struct {
		Pattern string   `json:"pattern" mapstructure:"pattern"`
		Files   []string `json:"files" mapstructure:"files"`
	}

	// UIConfig controls report rendering.
	UIConfig struct {
		Format      OutputFormat `json:"format" mapstructure:"format"`
		Verbose     bool         `json:"verbose" mapstructure:"verbose"`
		Explain     bool         `json:"explain" mapstructure:"explain"`
		ColorScheme ColorScheme  `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// WatchConfig configures --watch mode.
	WatchConfig struct {
		// Debounce is the quiet period before a re-run.
		Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
		// Ignore holds extra doublestar patterns excluded from watching.
		Ignore []string `json:"ignore" mapstructure:"ignore"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Path:             "manifest.json",
			RequiredFields:   check.DefaultRequiredFields(),
			SchemaAdvisories: true,
		},
		RequiredFiles: check.DefaultRequiredFiles(),
		Polyfill: PolyfillConfig{
			Pattern: check.PolyfillPattern,
			Files:   check.DefaultPolyfillFiles(),
		},
		UI: UIConfig{
			Format:      FormatText,
			ColorScheme: ColorSchemeAuto,
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
			Ignore:   []string{},
		},
	}
}

// Error implements the error interface.
func (e *InvalidCheckPathError) Error() string {
	return fmt.Sprintf("invalid check path %q in %s (must be relative to the extension root)", e.Value, e.Field)
}

// Unwrap returns ErrInvalidCheckPath for errors.Is() compatibility.
func (e *InvalidCheckPathError) Unwrap() error { return ErrInvalidCheckPath }

// Validate returns an error wrapping ErrInvalidOutputFormat for unknown formats.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected text, json or yaml)", ErrInvalidOutputFormat, string(f))
	}
}

// Validate returns an error wrapping ErrInvalidColorScheme for unknown schemes.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected auto, dark or light)", ErrInvalidColorScheme, string(c))
	}
}

// GlamourStyle returns the glamour standard style name for the scheme.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark, ColorSchemeLight:
		return string(c)
	default:
		return "auto"
	}
}

// Normalize cleans every configured path to slash-separated form relative to
// the extension root ("./popup.html" becomes "popup.html") and validates the
// whole configuration. All problems are reported together.
func (c *Config) Normalize() error {
	var errs []error

	if p, err := normalizePath("manifest.path", c.Manifest.Path); err != nil {
		errs = append(errs, err)
	} else {
		c.Manifest.Path = p
	}
	errs = append(errs, normalizePaths("required_files", c.RequiredFiles)...)
	errs = append(errs, normalizePaths("polyfill.files", c.Polyfill.Files)...)

	if c.Polyfill.Pattern == "" {
		errs = append(errs, ErrEmptyPattern)
	}
	if err := c.UI.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = defaultDebounce
	}

	return errors.Join(errs...)
}

// Checks builds the check list described by the configuration.
func (c *Config) Checks() []check.Checker {
	return []check.Checker{
		&check.ManifestCheck{
			Path:             c.Manifest.Path,
			RequiredFields:   c.Manifest.RequiredFields,
			SchemaAdvisories: c.Manifest.SchemaAdvisories,
		},
		&check.RequiredFilesCheck{Files: c.RequiredFiles},
		&check.PolyfillCheck{Files: c.Polyfill.Files, Pattern: c.Polyfill.Pattern},
	}
}

// WatchPatterns returns the doublestar patterns of every file a check reads,
// plus the config file name, so --watch reacts only to relevant changes.
func (c *Config) WatchPatterns() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	add(c.Manifest.Path)
	for _, p := range c.RequiredFiles {
		add(p)
	}
	for _, p := range c.Polyfill.Files {
		add(p)
	}
	add(ConfigFileName + "." + ConfigFileExt)
	return out
}

func normalizePaths(field string, paths []string) []error {
	var errs []error
	for i, p := range paths {
		clean, err := normalizePath(fmt.Sprintf("%s[%d]", field, i), p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		paths[i] = clean
	}
	return errs
}

func normalizePath(field, p string) (string, error) {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" || filepath.IsAbs(trimmed) || strings.HasPrefix(trimmed, "/") {
		return "", &InvalidCheckPathError{Field: field, Value: p}
	}
	clean := path.Clean(filepath.ToSlash(trimmed))
	if clean == "." || !fs.ValidPath(clean) {
		return "", &InvalidCheckPathError{Field: field, Value: p}
	}
	return clean, nil
}
