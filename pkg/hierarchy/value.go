package hierarchy

import (
	"math"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/record"
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// amount returns what record i contributes to the nodes above it.
// required controls whether an absent value field is an error or zero.
func amount(i int, rec record.Record, opts Options, required bool) (float64, error) {
	if opts.Stat == StatCount {
		return 1, nil
	}
	v, ok := rec.Get(opts.ValueField)
	if !ok {
		if required {
			return 0, errors.New(errors.ErrCodeMissingField, "record %d: missing value field %q required by stat %q", i, opts.ValueField, opts.Stat)
		}
		return 0, nil
	}
	f, ok := v.Float()
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidValue, "record %d: field %q: %q is not a number", i, opts.ValueField, v.String())
	}
	if f < 0 || !finite(f) {
		return 0, errors.New(errors.ErrCodeInvalidValue, "record %d: field %q: %v is not a non-negative number", i, opts.ValueField, f)
	}
	return f, nil
}
