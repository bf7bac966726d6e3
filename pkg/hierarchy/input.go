package hierarchy

import (
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/record"
)

// Input is the closed set of shapes Normalize accepts: *DimensionTable,
// *Table, and Records.
type Input interface {
	inputKind() string
}

// Kind returns a short description of the input variant for logs and
// errors: "dimension_table", "table", "records", or "unknown".
func Kind(in Input) string {
	if in == nil {
		return "unknown"
	}
	return in.inputKind()
}

// Table is row-oriented tabular input with a shared schema.
type Table struct {
	Columns []string
	Rows    [][]record.Value
}

func (*Table) inputKind() string { return "table" }

// Records projects every row into a sparse record, dropping missing cells.
func (t *Table) Records() Records {
	out := make(Records, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = record.Project(record.Row{Fields: t.Columns, Values: row})
	}
	return out
}

// Records is tabular input that has already been projected.
type Records []record.Record

func (Records) inputKind() string { return "records" }

// Dimension is one categorical axis of a contingency table.
type Dimension struct {
	Name   string   `json:"name" yaml:"name"`
	Levels []string `json:"levels" yaml:"levels"`
}

// DimensionTable is a multi-way frequency table. Freq holds one cell per
// combination of levels in row-major order: the last dimension varies
// fastest.
type DimensionTable struct {
	Dimensions []Dimension `json:"dimensions" yaml:"dimensions"`
	Freq       []float64   `json:"freq" yaml:"freq"`
}

func (*DimensionTable) inputKind() string { return "dimension_table" }

// Size returns the number of cells implied by the dimensions.
func (t *DimensionTable) Size() int {
	if len(t.Dimensions) == 0 {
		return 0
	}
	n := 1
	for _, d := range t.Dimensions {
		n *= len(d.Levels)
	}
	return n
}

// Total returns the sum of all cell frequencies.
func (t *DimensionTable) Total() float64 {
	var sum float64
	for _, f := range t.Freq {
		sum += f
	}
	return sum
}

// Cell returns the frequency at the given level indices, one per dimension.
// It panics if the indices are out of range, like slice indexing.
func (t *DimensionTable) Cell(idx ...int) float64 {
	if len(idx) != len(t.Dimensions) {
		panic("hierarchy: Cell called with wrong number of indices")
	}
	off := 0
	for i, d := range t.Dimensions {
		if idx[i] < 0 || idx[i] >= len(d.Levels) {
			panic("hierarchy: Cell index out of range")
		}
		off = off*len(d.Levels) + idx[i]
	}
	return t.Freq[off]
}

// Validate checks that the table is well formed: at least one dimension,
// unique non-empty dimension names, unique levels per dimension, a
// frequency for every cell, and no negative frequencies.
func (t *DimensionTable) Validate() error {
	if len(t.Dimensions) == 0 {
		return errors.New(errors.ErrCodeInvalidTable, "table has no dimensions")
	}
	names := make(map[string]struct{}, len(t.Dimensions))
	for i, d := range t.Dimensions {
		if d.Name == "" {
			return errors.New(errors.ErrCodeInvalidTable, "dimension %d has no name", i)
		}
		if _, dup := names[d.Name]; dup {
			return errors.New(errors.ErrCodeInvalidTable, "duplicate dimension %q", d.Name)
		}
		names[d.Name] = struct{}{}
		if len(d.Levels) == 0 {
			return errors.New(errors.ErrCodeInvalidTable, "dimension %q has no levels", d.Name)
		}
		levels := make(map[string]struct{}, len(d.Levels))
		for _, l := range d.Levels {
			if l == "" {
				return errors.New(errors.ErrCodeInvalidTable, "dimension %q has an empty level", d.Name)
			}
			if _, dup := levels[l]; dup {
				return errors.New(errors.ErrCodeInvalidTable, "dimension %q: duplicate level %q", d.Name, l)
			}
			levels[l] = struct{}{}
		}
	}
	if got, want := len(t.Freq), t.Size(); got != want {
		return errors.New(errors.ErrCodeInvalidTable, "table has %d frequencies, dimensions imply %d cells", got, want)
	}
	for i, f := range t.Freq {
		if f < 0 || !finite(f) {
			return errors.New(errors.ErrCodeInvalidValue, "cell %d: frequency %v is not a non-negative number", i, f)
		}
	}
	return nil
}
