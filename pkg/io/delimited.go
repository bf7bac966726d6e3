package io

import (
	"encoding/csv"
	"io"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
	"github.com/matzehuels/treeflow/pkg/record"
)

// readDelimited reads a header row and data rows. Rows may be shorter than
// the header; the remaining cells are missing.
func readDelimited(r io.Reader, delim rune, na []string) (*hierarchy.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	if delim == '\t' {
		cr.LazyQuotes = true
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "empty file: a header row is required")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}

	t := &hierarchy.Table{Columns: make([]string, len(header))}
	for i, h := range header {
		if h == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "header column %d is empty", i+1)
		}
		t.Columns[i] = h
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read row")
		}
		if len(row) > len(t.Columns) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: %d cells but header has %d columns", line, len(row), len(t.Columns))
		}
		vals := make([]record.Value, len(row))
		for i, cell := range row {
			vals[i] = record.Parse(cell, na...)
		}
		t.Rows = append(t.Rows, vals)
	}
	return t, nil
}
