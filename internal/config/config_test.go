// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"foxcheck-cli/internal/check"
	"foxcheck-cli/internal/issue"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Manifest.Path != "manifest.json" {
		t.Errorf("Manifest.Path = %q, want manifest.json", cfg.Manifest.Path)
	}
	if diff := cmp.Diff(check.DefaultRequiredFields(), cfg.Manifest.RequiredFields); diff != "" {
		t.Errorf("RequiredFields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(check.DefaultRequiredFiles(), cfg.RequiredFiles); diff != "" {
		t.Errorf("RequiredFiles mismatch (-want +got):\n%s", diff)
	}
	if cfg.Polyfill.Pattern != "typeof browser !== 'undefined'" {
		t.Errorf("Polyfill.Pattern = %q", cfg.Polyfill.Pattern)
	}
	if len(cfg.Polyfill.Files) != 5 {
		t.Errorf("expected 5 polyfill files, got %v", cfg.Polyfill.Files)
	}
	if cfg.UI.Format != FormatText || cfg.UI.Verbose || cfg.UI.Explain {
		t.Errorf("unexpected UI defaults %+v", cfg.UI)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 500ms", cfg.Watch.Debounce)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
required_files: ["./manifest.json", "options/index.html"]
polyfill: files: ["src/bg.js"]
ui: {
	format:  "json"
	verbose: true
}
watch: debounce: "2s"
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if diff := cmp.Diff([]string{"manifest.json", "options/index.html"}, cfg.RequiredFiles); diff != "" {
		t.Errorf("RequiredFiles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"src/bg.js"}, cfg.Polyfill.Files); diff != "" {
		t.Errorf("Polyfill.Files mismatch (-want +got):\n%s", diff)
	}
	if cfg.Polyfill.Pattern != check.PolyfillPattern {
		t.Errorf("omitted pattern should keep its default, got %q", cfg.Polyfill.Pattern)
	}
	if cfg.UI.Format != FormatJSON || !cfg.UI.Verbose {
		t.Errorf("unexpected UI %+v", cfg.UI)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
	if cfg.Manifest.Path != "manifest.json" {
		t.Errorf("Manifest.Path = %q, want default", cfg.Manifest.Path)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	custom := filepath.Join(dir, "ci.cue")
	if err := os.WriteFile(custom, []byte(`manifest: path: "dist/manifest.json"`), 0o644); err != nil {
		t.Fatal(err)
	}
	// A foxcheck.cue in the base dir must be ignored when --config is given.
	writeConfig(t, dir, `ui: format: "yaml"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: custom, BaseDir: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Manifest.Path != "dist/manifest.json" {
		t.Errorf("Manifest.Path = %q", cfg.Manifest.Path)
	}
	if cfg.UI.Format != FormatText {
		t.Errorf("UI.Format = %q, want text", cfg.UI.Format)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		contains string
		sentinel error
	}{
		{name: "unknown field", content: `colour: "red"`, contains: "colour"},
		{name: "wrong type", content: `ui: verbose: "yes"`, contains: "verbose"},
		{name: "bad format", content: `ui: format: "xml"`, contains: "format"},
		{name: "bad debounce", content: `watch: debounce: "soon"`, contains: "debounce"},
		{name: "syntax error", content: `ui: {`, contains: ConfigFileName},
		{name: "escaping path", content: `required_files: ["../secrets.txt"]`, contains: "../secrets.txt", sentinel: ErrInvalidCheckPath},
		{name: "absolute path", content: `polyfill: files: ["/etc/passwd"]`, contains: "polyfill.files[0]", sentinel: ErrInvalidCheckPath},
		{name: "oversized file", content: "// " + strings.Repeat("x", int(maxConfigFileSize)), contains: "exceeds maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: dir})
			if err == nil {
				t.Fatal("Load() returned nil error")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Errorf("error type = %T, want *issue.ActionableError", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(err, %v) = false", tt.sentinel)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %v, want *issue.ActionableError", err)
	}
	if ae.Resource != missing || len(ae.Suggestions) == 0 {
		t.Errorf("unexpected actionable error %+v", ae)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := DefaultConfig()
	want.Watch.Ignore = []string{"**/dist/**"}
	want.UI.ColorScheme = ColorSchemeDark
	path := writeConfig(t, dir, GenerateCUE(want))

	got, err := NewProvider().Load(context.Background(), LoadOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	want.Source = path
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
