// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE schema utilities.
//
// Both the foxcheck config file and the extension manifest are checked with
// the same 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate, then decode (config) or collect diagnostics (manifest)
//
// # Usage
//
//	//go:embed config_schema.cue
//	var configSchema []byte
//
//	unified, err := cueutil.Unify(configSchema, data, "#Config",
//	    cueutil.WithFilename("foxcheck.cue"),
//	    cueutil.WithConcrete(false),
//	)
//	if err != nil {
//	    return err // Error includes CUE path for debugging
//	}
//
// JSON documents are valid CUE, so a manifest.json can be passed as data
// without conversion.
package cueutil
