// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - foxcheck.cue: polyfill.files[2]: conflicting values 3 and string (mismatched types int and string)
//   - foxcheck.cue: ui.verbose: conflicting values "yes" and bool
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	lines := ErrorLines(err)
	switch len(lines) {
	case 0:
		// Fallback: not a CUE error, return as-is
		return fmt.Errorf("%s: %w", filePath, err)
	case 1:
		return fmt.Errorf("%s: %s", filePath, lines[0])
	default:
		return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
	}
}

// ErrorLines flattens a CUE error into "<json-path>: <message>" lines.
// It returns nil for a nil error or a non-CUE error.
func ErrorLines(err error) []string {
	if err == nil {
		return nil
	}

	var lines []string
	for _, e := range errors.Errors(err) {
		pathStr := formatPath(errors.Path(e))
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}
	return lines
}

// formatPath converts a CUE error path to JSON-path notation for user-facing messages.
// CUE provides error paths as flat string slices (e.g., ["background", "scripts", "0"]) where
// numeric elements represent array indices; they become "background.scripts[0]".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
