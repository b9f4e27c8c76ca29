// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Unify compiles schema and data, unifies data with the schema definition at
// definitionPath (e.g. "#Config", "#Manifest") and validates the result.
//
// Errors in the user data are returned formatted by FormatError; errors in the
// schema itself are reported as internal errors.
func Unify(schema, data []byte, definitionPath string, opts ...Option) (cue.Value, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	// Early file size check to prevent OOM attacks from large files
	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return cue.Value{}, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(definitionPath))
	if schemaRoot.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", definitionPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}

	return unified, nil
}

// Violations unifies data with the schema definition and returns one
// "<path>: <message>" line per schema violation. A nil slice means the data
// conforms. Unlike Unify, violations are data, not errors: only schema
// compilation problems are returned as an error.
func Violations(schema, data []byte, definitionPath string) ([]string, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	schemaRoot := schemaValue.LookupPath(cue.ParsePath(definitionPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", definitionPath, schemaRoot.Err())
	}

	userValue := ctx.CompileBytes(data)
	if userValue.Err() != nil {
		return ErrorLines(userValue.Err()), nil
	}

	return ErrorLines(schemaRoot.Unify(userValue).Validate(cue.Concrete(false))), nil
}
