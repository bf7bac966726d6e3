package hierarchy

import (
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/tree"
)

// Normalize converts in into a canonical tree. See the package
// documentation for the dispatch rules. Options are validated before any
// construction begins, and every failure is returned without a partial tree.
func Normalize(in Input, opts Options) (*tree.Node, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	root, err := dispatch(in, opts)
	if err != nil {
		return nil, err
	}
	if opts.DropZero {
		tree.PruneZero(root)
	}
	return root, nil
}

func dispatch(in Input, opts Options) (*tree.Node, error) {
	switch in := in.(type) {
	case *DimensionTable:
		if in == nil {
			return nil, errors.New(errors.ErrCodeUnsupportedInput, "nil dimension table")
		}
		return fromTable(in, opts)
	case *Table:
		if in == nil {
			return nil, errors.New(errors.ErrCodeUnsupportedInput, "nil table")
		}
		return fromRecords(in.Records(), opts)
	case Records:
		return fromRecords(in, opts)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "unsupported input type %T", in)
	}
}

// fromTable flattens a contingency table and sums its frequencies along
// the level paths. The value field and statistic are fixed; a configured
// PathSep is honored, otherwise DefaultPathSep joins the levels.
func fromTable(t *DimensionTable, opts Options) (*tree.Node, error) {
	sep := opts.PathSep
	if sep == "" {
		sep = DefaultPathSep
	}
	recs, err := Flatten(t, PathField, sep, FreqField)
	if err != nil {
		return nil, err
	}
	return BuildFromPaths(recs, Options{
		NameField:  PathField,
		ValueField: FreqField,
		PathSep:    sep,
		Stat:       StatSum,
		RootName:   opts.RootName,
	})
}

func fromRecords(recs Records, opts Options) (*tree.Node, error) {
	hasSep, hasParent := opts.PathSep != "", opts.ParentField != ""
	switch {
	case hasSep && hasParent:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "both path separator %q and parent field %q are set; choose one", opts.PathSep, opts.ParentField)
	case !hasSep && !hasParent:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "tabular input needs either a path separator or a parent field")
	case hasSep:
		return BuildFromPaths(recs, opts)
	default:
		return BuildFromParentLinks(recs, opts)
	}
}
