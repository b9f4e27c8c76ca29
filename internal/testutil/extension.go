// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"maps"
	"testing"
	"testing/fstest"
)

// ValidManifest is a Manifest V3 manifest that produces no warnings.
const ValidManifest = `{
  "manifest_version": 3,
  "name": "Tab Tamer",
  "version": "1.4.0",
  "browser_specific_settings": {
    "gecko": {
      "id": "tabtamer@example.org",
      "strict_min_version": "109.0"
    }
  },
  "background": {
    "service_worker": "scripts/background-sw.js"
  },
  "action": {"default_popup": "popup.html"},
  "options_ui": {"page": "settings.html"}
}
`

// PolyfilledScript is a script body that contains the browser API guard.
const PolyfilledScript = `const api = typeof browser !== 'undefined' ? browser : chrome;
api.runtime.onMessage.addListener(() => {});
`

// BareScript is a script body without the browser API guard.
const BareScript = `chrome.runtime.onMessage.addListener(() => {});
`

// ExtensionFiles returns the files of an extension that passes every check,
// keyed by slash-separated path. The map is a fresh copy on every call.
func ExtensionFiles() map[string]string {
	return map[string]string{
		"manifest.json":             ValidManifest,
		"popup.html":                "<!doctype html><script src=\"scripts/pages/popup.js\"></script>\n",
		"settings.html":             "<!doctype html><script src=\"scripts/pages/settings.js\"></script>\n",
		"scripts/background-sw.js":  PolyfilledScript,
		"scripts/content/common.js": PolyfilledScript,
		"scripts/pages/popup.js":    PolyfilledScript,
		"scripts/pages/settings.js": PolyfilledScript,
		"scripts/pages/common.js":   PolyfilledScript,
	}
}

// WriteExtension writes files (ExtensionFiles when nil) under dir.
func WriteExtension(t testing.TB, dir string, files map[string]string) {
	t.Helper()
	if files == nil {
		files = ExtensionFiles()
	}
	for rel, content := range files {
		MustWriteFile(t, dir, rel, content)
	}
}

// ExtensionFS returns an in-memory extension tree. Entries in overrides
// replace the defaults; an empty-string override removes the file.
func ExtensionFS(overrides map[string]string) fstest.MapFS {
	files := ExtensionFiles()
	maps.Copy(files, overrides)

	fsys := fstest.MapFS{}
	for rel, content := range files {
		if content == "" {
			continue
		}
		fsys[rel] = &fstest.MapFile{Data: []byte(content), Mode: 0o644}
	}
	return fsys
}
