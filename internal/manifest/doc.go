// SPDX-License-Identifier: MPL-2.0

// Package manifest loads a WebExtension manifest.json as a generic JSON
// document and offers explicit optional lookups into it.
//
// The document is deliberately untyped: foxcheck only consults a handful of
// keys and must keep working on manifests that carry arbitrary extra data or
// unexpected value types. Type expectations for the consulted keys live in an
// embedded CUE schema and surface as advisories (see Advisories).
package manifest
