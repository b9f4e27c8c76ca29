// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const sampleManifest = `{
  "manifest_version": 3,
  "name": "Tab Tamer",
  "version": "1.4.0",
  "browser_specific_settings": {
    "gecko": {"id": "tabtamer@example.org", "strict_min_version": "109.0"}
  },
  "background": {"service_worker": "scripts/background-sw.js"}
}`

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		FileName:      {Data: []byte(sampleManifest)},
		"broken.json": {Data: []byte("{\n  \"name\": \"x\",\n}")},
		"dir.json":    {Mode: fs.ModeDir},
	}

	doc, err := Load(fsys, FileName)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := doc.Display(KeyName); got != "Tab Tamer" {
		t.Errorf("Display(name) = %q, want %q", got, "Tab Tamer")
	}

	_, err = Load(fsys, "missing.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}

	_, err = Load(fsys, "broken.json")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Load(broken) error = %v, want *SyntaxError", err)
	}
	if syntaxErr.Line != 3 {
		t.Errorf("SyntaxError.Line = %d, want 3", syntaxErr.Line)
	}
	if !strings.Contains(err.Error(), "invalid character '}'") {
		t.Errorf("error %q should carry the decoder message", err)
	}

	_, err = Load(fsys, "dir.json")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load(directory) error = %v, want a read error", err)
	}
}

func TestLoad_UnresolvablePathIsNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scripts"), []byte("plain file"), 0o644); err != nil {
		t.Fatal(err)
	}
	loop := filepath.Join(dir, "loop.json")
	symlinks := os.Symlink("loop.json", loop) == nil

	tests := []struct {
		name string
		path string
		skip bool
	}{
		{"parent is a regular file", "scripts/manifest.json", false},
		{"symlink loop", "loop.json", !symlinks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.skip {
				t.Skip("symlinks unavailable")
			}
			_, err := Load(os.DirFS(dir), tt.path)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Load(%s) error = %v, want ErrNotFound", tt.path, err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		contains string
	}{
		{name: "empty document", data: "  \n", contains: "document is empty"},
		{name: "truncated object", data: `{"name": "x"`, contains: "unexpected end of JSON input"},
		{name: "trailing brace", data: `{"name": "x"}}`, contains: "after top-level value"},
		{name: "trailing value", data: `{} {}`, contains: "after top-level value"},
		{name: "single quotes", data: `{'name': 'x'}`, contains: "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() returned nil error")
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Errorf("Parse() error type = %T, want *SyntaxError", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"a": {"b": {"c": null}}, "list": [1, 2], "s": "text"}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name string
		path []string
		want bool
	}{
		{name: "root", path: nil, want: true},
		{name: "nested null is present", path: []string{"a", "b", "c"}, want: true},
		{name: "missing leaf", path: []string{"a", "b", "d"}, want: false},
		{name: "through array", path: []string{"list", "0"}, want: false},
		{name: "through string", path: []string{"s", "x"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := doc.Has(tt.path...); got != tt.want {
				t.Errorf("Has(%v) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookupOnNonObjectRoot(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`["manifest_version", "name", "version"]`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Has(KeyManifestVersion) {
		t.Error("Has() on an array root should be false")
	}
}

func TestObject(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"background": "oops", "bss": {"gecko": {"id": "x@y"}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Object(KeyBackground).Has(KeyScripts) {
		t.Error("Object() on a string value should be empty")
	}
	if doc.Object("nope").Has("anything") {
		t.Error("Object() on a missing key should be empty")
	}
	if got := doc.Object("bss", "gecko").Display("id"); got != "x@y" {
		t.Errorf("Object(bss, gecko).Display(id) = %q, want x@y", got)
	}
}

func TestIsNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data string
		want bool
	}{
		{data: `{"manifest_version": 3}`, want: true},
		{data: `{"manifest_version": 3.0}`, want: true},
		{data: `{"manifest_version": 2}`, want: false},
		{data: `{"manifest_version": "3"}`, want: false},
		{data: `{"manifest_version": true}`, want: false},
		{data: `{}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := doc.IsNumber(3, KeyManifestVersion); got != tt.want {
				t.Errorf("IsNumber(3) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"n": 2, "f": 2.50, "s": "x", "b": false, "z": null, "o": {"k": [1]}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]string{
		"n": "2",
		"f": "2.50",
		"s": "x",
		"b": "false",
		"z": "null",
		"o": `{"k":[1]}`,
	}
	for key, expected := range want {
		if got := doc.Display(key); got != expected {
			t.Errorf("Display(%q) = %q, want %q", key, got, expected)
		}
	}
}

func TestAdvisories(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	lines, err := doc.Advisories()
	if err != nil {
		t.Fatalf("Advisories() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Advisories() on a well-formed manifest = %v, want none", lines)
	}

	mismatches := map[string]string{
		"name":    `{"manifest_version": 3, "name": 42, "version": "1.0"}`,
		"scripts": `{"manifest_version": 3, "name": "x", "version": "1.0", "background": {"scripts": "bg.js"}}`,
	}
	for key, data := range mismatches {
		doc, err := Parse([]byte(data))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		lines, err := doc.Advisories()
		if err != nil {
			t.Fatalf("Advisories() error = %v", err)
		}
		if !strings.Contains(strings.Join(lines, "\n"), key) {
			t.Errorf("Advisories() = %v, want a line mentioning %q", lines, key)
		}
	}
}
