// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"foxcheck-cli/internal/check"
)

func TestOutputFormatValidate(t *testing.T) {
	t.Parallel()

	for _, f := range []OutputFormat{FormatText, FormatJSON, FormatYAML} {
		if err := f.Validate(); err != nil {
			t.Errorf("%q.Validate() = %v", f, err)
		}
	}
	if err := OutputFormat("xml").Validate(); !errors.Is(err, ErrInvalidOutputFormat) {
		t.Errorf("xml.Validate() = %v, want ErrInvalidOutputFormat", err)
	}
}

func TestColorScheme(t *testing.T) {
	t.Parallel()

	if err := ColorScheme("neon").Validate(); !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("neon.Validate() = %v, want ErrInvalidColorScheme", err)
	}
	tests := map[ColorScheme]string{
		ColorSchemeAuto:  "auto",
		ColorSchemeDark:  "dark",
		ColorSchemeLight: "light",
	}
	for scheme, want := range tests {
		if got := scheme.GlamourStyle(); got != want {
			t.Errorf("%q.GlamourStyle() = %q, want %q", scheme, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Manifest.Path = " ./manifest.json "
	cfg.RequiredFiles = []string{"./a//b.html", `scripts/x.js`}
	cfg.Watch.Debounce = 0

	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cfg.Manifest.Path != "manifest.json" {
		t.Errorf("Manifest.Path = %q", cfg.Manifest.Path)
	}
	if cfg.RequiredFiles[0] != "a/b.html" {
		t.Errorf("RequiredFiles[0] = %q", cfg.RequiredFiles[0])
	}
	if cfg.Watch.Debounce != defaultDebounce {
		t.Errorf("Watch.Debounce = %v, want default", cfg.Watch.Debounce)
	}
}

func TestNormalizeCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Manifest.Path = ""
	cfg.Polyfill.Files = []string{"ok.js", "a/../../b.js"}
	cfg.Polyfill.Pattern = ""
	cfg.UI.Format = "html"

	err := cfg.Normalize()
	for _, sentinel := range []error{ErrInvalidCheckPath, ErrEmptyPattern, ErrInvalidOutputFormat} {
		if !errors.Is(err, sentinel) {
			t.Errorf("Normalize() error should wrap %v, got %v", sentinel, err)
		}
	}
	var pathErr *InvalidCheckPathError
	if !errors.As(err, &pathErr) || pathErr.Field != "manifest.path" {
		t.Errorf("first path error = %+v", pathErr)
	}
}

func TestChecks(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Manifest.SchemaAdvisories = false
	checks := cfg.Checks()
	if len(checks) != 3 {
		t.Fatalf("Checks() returned %d checks", len(checks))
	}
	mc, ok := checks[0].(*check.ManifestCheck)
	if !ok || mc.SchemaAdvisories || mc.Path != "manifest.json" {
		t.Errorf("unexpected manifest check %+v", checks[0])
	}
	if _, ok := checks[1].(*check.RequiredFilesCheck); !ok {
		t.Errorf("second check = %T", checks[1])
	}
	if pc, ok := checks[2].(*check.PolyfillCheck); !ok || pc.Pattern != check.PolyfillPattern {
		t.Errorf("unexpected polyfill check %+v", checks[2])
	}
}

func TestWatchPatterns(t *testing.T) {
	t.Parallel()

	patterns := DefaultConfig().WatchPatterns()
	seen := make(map[string]int)
	for _, p := range patterns {
		seen[p]++
	}
	for p, n := range seen {
		if n > 1 {
			t.Errorf("pattern %q listed %d times", p, n)
		}
	}
	for _, want := range []string{"manifest.json", "scripts/pages/common.js", "foxcheck.cue"} {
		if seen[want] == 0 {
			t.Errorf("WatchPatterns() missing %q: %v", want, patterns)
		}
	}
}
