// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps the input Unify accepts unless WithMaxFileSize
// says otherwise (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	// unifyOptions are the knobs of a Unify call.
	unifyOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option adjusts a Unify call.
	Option func(*unifyOptions)
)

func defaultOptions() unifyOptions {
	return unifyOptions{maxFileSize: DefaultMaxFileSize, concrete: true}
}

// WithMaxFileSize rejects inputs larger than size bytes before compiling them.
func WithMaxFileSize(size int64) Option {
	return func(o *unifyOptions) { o.maxFileSize = size }
}

// WithConcrete controls whether every value must be concrete after
// unification (default true). Config files pass false so optional fields
// may stay unset.
func WithConcrete(concrete bool) Option {
	return func(o *unifyOptions) { o.concrete = concrete }
}

// WithFilename names the input in positions and error messages.
func WithFilename(name string) Option {
	return func(o *unifyOptions) { o.filename = name }
}
