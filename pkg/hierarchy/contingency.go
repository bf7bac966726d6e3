package hierarchy

import (
	"strings"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/record"
)

// Flatten enumerates every cell of t as a record.
//
// Cells are visited in row-major order over the dimensions as declared,
// so the first dimension's levels change slowest. Each record holds one
// field per dimension (its level label), pathField set to the level labels
// joined with sep, and valueField set to the cell frequency.
//
// Zero-frequency cells are emitted like any other; the tree built from
// them therefore has a leaf for every combination. Use Options.DropZero or
// [tree.PruneZero] to remove them afterwards.
//
// A level label containing sep is rejected because the path could not be
// split back into the same levels.
func Flatten(t *DimensionTable, pathField, sep, valueField string) ([]record.Record, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "nil dimension table")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if sep == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "path separator is required to flatten a table")
	}
	for _, d := range t.Dimensions {
		if d.Name == pathField || d.Name == valueField {
			return nil, errors.New(errors.ErrCodeInvalidTable, "dimension %q collides with a synthesized field", d.Name)
		}
		for _, l := range d.Levels {
			if strings.Contains(l, sep) {
				return nil, errors.New(errors.ErrCodeInvalidPath, "dimension %q: level %q contains the path separator %q", d.Name, l, sep)
			}
		}
	}

	out := make([]record.Record, 0, t.Size())
	idx := make([]int, len(t.Dimensions))
	labels := make([]string, len(t.Dimensions))
	for range t.Freq {
		var rec record.Record
		for i, d := range t.Dimensions {
			labels[i] = d.Levels[idx[i]]
			rec.Set(d.Name, record.String(labels[i]))
		}
		rec.Set(pathField, record.String(strings.Join(labels, sep)))
		rec.Set(valueField, record.Number(t.Cell(idx...)))
		out = append(out, rec)

		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(t.Dimensions[i].Levels) {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// CrossTabulate builds a contingency table from records by counting them
// per combination of the given dimension fields. Levels appear in the order
// first seen. When weightField is non-empty, each record adds its weight
// instead of 1; a missing or invalid weight is an error.
func CrossTabulate(records []record.Record, weightField string, dims ...string) (*DimensionTable, error) {
	if len(dims) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "at least one dimension is required")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "no records to tabulate")
	}

	t := &DimensionTable{Dimensions: make([]Dimension, len(dims))}
	levelIdx := make([]map[string]int, len(dims))
	for i, d := range dims {
		t.Dimensions[i].Name = d
		levelIdx[i] = make(map[string]int)
	}

	type cell struct {
		idx []int
		w   float64
	}
	cells := make(map[string]*cell)
	var order []string

	for n, rec := range records {
		w := 1.0
		if weightField != "" {
			opts := Options{Stat: StatSum, ValueField: weightField}
			var err error
			if w, err = amount(n, rec, opts, true); err != nil {
				return nil, err
			}
		}
		idx := make([]int, len(dims))
		var key strings.Builder
		for i, d := range dims {
			v, ok := rec.Get(d)
			if !ok || v.String() == "" {
				return nil, errors.New(errors.ErrCodeMissingField, "record %d: missing dimension field %q", n, d)
			}
			label := v.String()
			li, seen := levelIdx[i][label]
			if !seen {
				li = len(t.Dimensions[i].Levels)
				levelIdx[i][label] = li
				t.Dimensions[i].Levels = append(t.Dimensions[i].Levels, label)
			}
			idx[i] = li
			key.WriteString(label)
			key.WriteByte(0)
		}
		c, ok := cells[key.String()]
		if !ok {
			c = &cell{idx: idx}
			cells[key.String()] = c
			order = append(order, key.String())
		}
		c.w += w
	}

	t.Freq = make([]float64, t.Size())
	for _, k := range order {
		c := cells[k]
		off := 0
		for i, d := range t.Dimensions {
			off = off*len(d.Levels) + c.idx[i]
		}
		t.Freq[off] = c.w
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
