// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"
)

// FileName is the manifest file name at the extension root.
const FileName = "manifest.json"

// Keys consulted by foxcheck.
const (
	KeyManifestVersion         = "manifest_version"
	KeyName                    = "name"
	KeyVersion                 = "version"
	KeyBrowserSpecificSettings = "browser_specific_settings"
	KeyGecko                   = "gecko"
	KeyGeckoID                 = "id"
	KeyStrictMinVersion        = "strict_min_version"
	KeyBackground              = "background"
	KeyServiceWorker           = "service_worker"
	KeyScripts                 = "scripts"
)

// ErrNotFound is returned by Load when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

type (
	// Document is a parsed manifest. The root may be any JSON value; lookups
	// only descend through JSON objects.
	Document struct {
		root any
		raw  []byte
	}

	// SyntaxError reports malformed JSON together with the 1-based line and
	// column of the offending byte.
	SyntaxError struct {
		Line   int
		Column int
		Err    error
	}
)

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Err, e.Line, e.Column)
}

// Unwrap returns the underlying decoder error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Load reads and parses the manifest at name inside fsys.
// A missing file, including one below a regular file or behind a symlink
// loop, yields an error wrapping ErrNotFound; malformed JSON yields
// a *SyntaxError; any other read failure is returned wrapped.
func Load(fsys fs.FS, name string) (*Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.ELOOP) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes data as a single JSON value. Numbers are kept as json.Number
// so integer values such as manifest_version compare and print exactly as
// written.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, newSyntaxError(data, err)
	}
	// Trailing content after the first value is malformed JSON too.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, positionedError(data, dec.InputOffset(), errors.New("invalid character after top-level value"))
	}

	return &Document{root: root, raw: data}, nil
}

// Lookup walks path through nested JSON objects. It reports false when any
// element is missing or when an intermediate value is not an object. An empty
// path returns the root.
func (d *Document) Lookup(path ...string) (any, bool) {
	cur := d.root
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path resolves to a value (JSON null included).
func (d *Document) Has(path ...string) bool {
	_, ok := d.Lookup(path...)
	return ok
}

// Object returns the sub-document at path. Missing keys and non-object
// values both yield an empty document, so optional sections can be queried
// without extra nil checks.
func (d *Document) Object(path ...string) *Document {
	v, ok := d.Lookup(path...)
	if !ok {
		return &Document{root: map[string]any{}}
	}
	if _, isObj := v.(map[string]any); !isObj {
		return &Document{root: map[string]any{}}
	}
	return &Document{root: v}
}

// IsNumber reports whether the value at path is a JSON number equal to want.
// Integral and fractional spellings compare equal ("3" and "3.0").
func (d *Document) IsNumber(want float64, path ...string) bool {
	v, ok := d.Lookup(path...)
	if !ok {
		return false
	}
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	f, err := n.Float64()
	return err == nil && f == want
}

// Display renders the value at path for human-readable messages: strings
// and numbers verbatim, null as "null", containers as compact JSON.
func (d *Document) Display(path ...string) string {
	v, ok := d.Lookup(path...)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// FormatValue renders a decoded JSON value for human-readable messages.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(out)
	}
}

func newSyntaxError(data []byte, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return positionedError(data, syntaxErr.Offset, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return positionedError(data, typeErr.Offset, err)
	}
	// io.EOF / io.ErrUnexpectedEOF from an empty or truncated document.
	if len(bytes.TrimSpace(data)) == 0 {
		return &SyntaxError{Err: errors.New("unexpected end of JSON input: document is empty")}
	}
	return positionedError(data, int64(len(data)), fmt.Errorf("unexpected end of JSON input: %w", err))
}

func positionedError(data []byte, offset int64, err error) *SyntaxError {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1)
	if col < 1 {
		col = 1
	}
	return &SyntaxError{Line: line, Column: col, Err: err}
}
