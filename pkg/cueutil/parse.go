// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxSize is the upper bound on input size accepted by Decode.
// Plan and config files are hand-written; anything past this is either a
// mistake or an attempt to exhaust memory.
const DefaultMaxSize int64 = 1 << 20

type (
	options struct {
		filename string
		maxSize  int64
		concrete bool
	}

	// Option configures a Decode call.
	Option func(*options)
)

func defaultOptions() options {
	return options{
		maxSize:  DefaultMaxSize,
		concrete: true,
	}
}

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxSize overrides the input size limit.
func WithMaxSize(n int64) Option {
	return func(o *options) { o.maxSize = n }
}

// WithoutConcrete validates without requiring all present fields to be
// concrete. Used for partial documents such as the tool configuration,
// where every field is optional.
func WithoutConcrete() Option {
	return func(o *options) { o.concrete = false }
}

// Decode compiles schema and data, unifies data with the named root
// definition (e.g. "#Plan"), validates the result, and decodes it into T.
// Validation errors carry the CUE path of the offending field.
func Decode[T any](schema string, data []byte, rootPath string, opts ...Option) (*T, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckSize(data, o.maxSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	root := schemaValue.LookupPath(cue.ParsePath(rootPath))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", rootPath, root.Err())
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &result, nil
}

// DecodeMap is Decode specialized to a loosely-typed map, for callers that
// merge the result into another config layer instead of a struct.
func DecodeMap(schema string, data []byte, rootPath string, opts ...Option) (map[string]any, error) {
	result, err := Decode[map[string]any](schema, data, rootPath, append(opts, WithoutConcrete())...)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// CheckSize verifies that data does not exceed max bytes.
func CheckSize(data []byte, max int64, filename string) error {
	if int64(len(data)) > max {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), max)
	}
	return nil
}
