// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"

	"foxcheck-cli/pkg/cueutil"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

// Advisories checks the consulted keys of d against the embedded manifest
// schema and returns one line per type or format mismatch. The result never
// decides pass or fail; callers report it as warnings.
func (d *Document) Advisories() ([]string, error) {
	if err := cueutil.CheckFileSize(d.raw, cueutil.DefaultMaxFileSize, FileName); err != nil {
		return nil, err
	}
	return cueutil.Violations(manifestSchema, d.raw, "#Manifest")
}
