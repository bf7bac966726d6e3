package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
)

// DefaultNA lists the cell values treated as missing in delimited files.
var DefaultNA = []string{"NA"}

// ReadOptions configures input decoding.
type ReadOptions struct {
	// Format overrides extension-based detection in ImportInput.
	Format Format

	// NA lists cell values treated as missing in CSV/TSV.
	// Nil means DefaultNA; an empty non-nil slice disables NA markers.
	NA []string
}

func (o ReadOptions) na() []string {
	if o.NA == nil {
		return DefaultNA
	}
	return o.NA
}

// ReadInput decodes r in the given format.
//
// The returned input is independent of r. ReadInput does not close r.
func ReadInput(r io.Reader, format Format, opts ReadOptions) (hierarchy.Input, error) {
	switch format {
	case FormatCSV:
		return readDelimited(r, ',', opts.na())
	case FormatTSV:
		return readDelimited(r, '\t', opts.na())
	case FormatJSON, FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return decodeStructured(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

// ImportInput opens the file at path, detects its format unless
// opts.Format is set, and decodes it with ReadInput.
func ImportInput(path string, opts ReadOptions) (hierarchy.Input, error) {
	format := opts.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	in, err := ReadInput(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// DecodeInput decodes an in-memory JSON or YAML document into an input.
// It accepts the same shapes as ReadInput for those formats.
func DecodeInput(data []byte) (hierarchy.Input, error) {
	return decodeStructured(data)
}
