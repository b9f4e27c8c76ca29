// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	RequiredFieldMissingId
	ManifestVersionId
	GeckoSettingsMissingId
	BackgroundIncompleteId
	ManifestSchemaId
	RequiredFileMissingId
	PolyfillMissingId
	PolyfillFileNotFoundId
	FileUnreadableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	title    string      // short label used in structured output
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, every note points at MDN or Firefox docs
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Title() string {
	return i.title
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Heading returns the first Markdown heading of the note, without the "#".
func (i *Issue) Heading() string {
	for line := range strings.Lines(string(i.mdMsg)) {
		if h, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return h
		}
	}
	return i.title
}

// Markdown returns the note with its "See also" link list appended.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the note with glamour using the named style
// ("dark", "light", "notty", "auto" or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id:    ManifestNotFoundId,
		title: "manifest-not-found",
		mdMsg: `
# manifest.json not found

foxcheck looks for ` + "`manifest.json`" + ` at the extension root.

## Things you can try
- Run foxcheck from the directory that contains the manifest, or point at it:
~~~
$ foxcheck --dir ./path/to/extension
~~~
- If your build generates the manifest, run the build first.`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/manifest.json"},
	}

	manifestParseErrorIssue = &Issue{
		id:    ManifestParseErrorId,
		title: "manifest-parse-error",
		mdMsg: `
# manifest.json is not valid JSON

Firefox refuses to load an extension whose manifest does not parse.

## Common causes
- A trailing comma after the last property of an object or array
- Comments (` + "`//`" + `) copied from documentation
- Single quotes instead of double quotes

The line and column in the error above point at the first offending character.`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/manifest.json"},
	}

	requiredFieldMissingIssue = &Issue{
		id:    RequiredFieldMissingId,
		title: "required-field-missing",
		mdMsg: `
# Required manifest field missing

Every manifest needs ` + "`manifest_version`, `name` and `version`" + `.

## Minimal manifest
~~~json
{
  "manifest_version": 3,
  "name": "My Extension",
  "version": "1.0.0"
}
~~~`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/manifest.json/manifest_version"},
	}

	manifestVersionIssue = &Issue{
		id:    ManifestVersionId,
		title: "manifest-version",
		mdMsg: `
# Manifest version is not 3

Firefox supports Manifest V2 and V3. Manifest V3 is required by Chromium-based
browsers, so a single V3 manifest keeps one source tree working in both.`,
		docLinks: []HttpLink{"https://extensionworkshop.com/documentation/develop/manifest-v3-migration-guide/"},
	}

	geckoSettingsMissingIssue = &Issue{
		id:    GeckoSettingsMissingId,
		title: "gecko-settings-missing",
		mdMsg: `
# No browser_specific_settings

Without ` + "`browser_specific_settings.gecko.id`" + ` Firefox assigns a random
extension ID on every temporary install, which breaks storage and messaging
between reloads. Manifest V3 extensions submitted to AMO must declare an ID.

~~~json
"browser_specific_settings": {
  "gecko": {
    "id": "my-extension@example.org",
    "strict_min_version": "109.0"
  }
}
~~~`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/manifest.json/browser_specific_settings"},
	}

	backgroundIncompleteIssue = &Issue{
		id:    BackgroundIncompleteId,
		title: "background-incomplete",
		mdMsg: `
# Background configuration may be incomplete

The ` + "`background`" + ` key declares neither ` + "`service_worker`" + ` nor ` + "`scripts`" + `.
Firefox 121+ accepts both keys side by side and uses ` + "`scripts`" + ` when
service workers are disabled.`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/manifest.json/background"},
	}

	manifestSchemaIssue = &Issue{
		id:    ManifestSchemaId,
		title: "manifest-schema",
		mdMsg: `
# Unexpected value type in manifest

A key foxcheck reads has a value of an unexpected type or format, for example
a number where Firefox expects a string. Firefox reports these as warnings or
refuses the manifest, depending on the key.`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/manifest.json"},
	}

	requiredFileMissingIssue = &Issue{
		id:    RequiredFileMissingId,
		title: "required-file-missing",
		mdMsg: `
# Required file missing

The popup page, the settings page and the background service worker must ship
with the extension. Check that the build copied them to the extension root.`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/Anatomy_of_a_WebExtension"},
	}

	polyfillMissingIssue = &Issue{
		id:    PolyfillMissingId,
		title: "polyfill-missing",
		mdMsg: `
# Browser API polyfill missing

Firefox exposes the promise-based ` + "`browser`" + ` namespace; Chromium only has
` + "`chrome`" + `. Scripts shared between both must pick whichever exists:

~~~js
const api = typeof browser !== 'undefined' ? browser : chrome;
~~~`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/Chrome_incompatibilities"},
	}

	polyfillFileNotFoundIssue = &Issue{
		id:    PolyfillFileNotFoundId,
		title: "polyfill-file-not-found",
		mdMsg: `
# Script not found

A script that is expected to carry the browser API polyfill does not exist.
It is skipped and does not fail the run. Remove it from the ` + "`polyfill.files`" + `
list in foxcheck.cue if the extension no longer ships it.`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/Chrome_incompatibilities"},
	}

	fileUnreadableIssue = &Issue{
		id:    FileUnreadableId,
		title: "file-unreadable",
		mdMsg: `
# File could not be read

The path exists but reading it failed, usually because of file permissions or
because a directory sits where a file is expected.

~~~
$ ls -l <path>
~~~`,
		docLinks: []HttpLink{"https://developer.mozilla.org/en-US/docs/Mozilla/Add-ons/WebExtensions/Anatomy_of_a_WebExtension"},
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():     manifestNotFoundIssue,
		manifestParseErrorIssue.Id():   manifestParseErrorIssue,
		requiredFieldMissingIssue.Id(): requiredFieldMissingIssue,
		manifestVersionIssue.Id():      manifestVersionIssue,
		geckoSettingsMissingIssue.Id(): geckoSettingsMissingIssue,
		backgroundIncompleteIssue.Id(): backgroundIncompleteIssue,
		manifestSchemaIssue.Id():       manifestSchemaIssue,
		requiredFileMissingIssue.Id():  requiredFileMissingIssue,
		polyfillMissingIssue.Id():      polyfillMissingIssue,
		polyfillFileNotFoundIssue.Id(): polyfillFileNotFoundIssue,
		fileUnreadableIssue.Id():       fileUnreadableIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

// ByTitle looks up a catalog entry by its short label.
func ByTitle(title string) (*Issue, bool) {
	for _, i := range issues {
		if i.title == title {
			return i, true
		}
	}
	return nil, false
}
