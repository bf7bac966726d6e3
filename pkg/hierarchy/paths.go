package hierarchy

import (
	"strings"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/record"
	"github.com/matzehuels/treeflow/pkg/tree"
)

// BuildFromPaths builds a tree from path-encoded records.
//
// Each record's path is read from opts.NameField and split on opts.PathSep.
// Segments become nodes below an implicit root named opts.RootName; records
// sharing a prefix share the nodes for it, and siblings keep the order in
// which they were first seen. Every node on a record's path, the root
// included, receives the record's contribution: 1 for StatCount, the value
// field for StatSum. Records with the same full path therefore add up.
//
// An empty path, or one with an empty segment ("A//B", "/A", "A/"), is a
// structural error naming the record. A missing path field, or a missing
// value field under StatSum, is a missing field error.
func BuildFromPaths(records []record.Record, opts Options) (*tree.Node, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.PathSep == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "path separator is required to build from paths")
	}

	root := tree.New(opts.RootName)
	root.SetValue(0)
	index := map[*tree.Node]map[string]*tree.Node{}

	for i, rec := range records {
		segs, err := splitPath(i, rec, opts)
		if err != nil {
			return nil, err
		}
		amt, err := amount(i, rec, opts, true)
		if err != nil {
			return nil, err
		}

		cur := root
		cur.AddValue(amt)
		for _, seg := range segs {
			kids := index[cur]
			if kids == nil {
				kids = make(map[string]*tree.Node)
				index[cur] = kids
			}
			next, ok := kids[seg]
			if !ok {
				next = cur.Add(tree.New(seg))
				kids[seg] = next
			}
			next.AddValue(amt)
			cur = next
		}
	}
	return root, nil
}

func splitPath(i int, rec record.Record, opts Options) ([]string, error) {
	v, ok := rec.Get(opts.NameField)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingField, "record %d: missing path field %q", i, opts.NameField)
	}
	path := v.String()
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "record %d: field %q: empty path", i, opts.NameField)
	}
	segs := strings.Split(path, opts.PathSep)
	for _, s := range segs {
		if s == "" {
			return nil, errors.New(errors.ErrCodeInvalidPath, "record %d: field %q: path %q has an empty segment", i, opts.NameField, path)
		}
	}
	return segs, nil
}
