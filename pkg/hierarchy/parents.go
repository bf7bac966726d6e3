package hierarchy

import (
	"strings"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/record"
	"github.com/matzehuels/treeflow/pkg/tree"
)

// maxListedRoots caps how many root names an ambiguous root error lists.
const maxListedRoots = 5

type linkEntry struct {
	index     int
	name      string
	parent    string
	hasParent bool
	rec       record.Record
}

// BuildFromParentLinks builds a tree from parent-linked records.
//
// Each record is named by opts.NameField and points at its parent through
// opts.ParentField; a record without a parent is a root. The checks run in
// this order and each failure is a structural error naming the record:
//
//   - every record has a unique name (missing name is a missing field error)
//   - following parent links never revisits a record (cycle)
//   - exactly one root exists (no root / ambiguous root)
//   - every parent names a known record
//
// Children are attached in input order. Values aggregate the record itself
// plus all descendants: with StatCount a leaf is 1 and a parent is 1 plus
// its children; with StatSum the value field is summed, where leaves must
// carry it and parents without one contribute nothing of their own.
func BuildFromParentLinks(records []record.Record, opts Options) (*tree.Node, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.ParentField == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "parent field is required to build from parent links")
	}

	entries := make([]linkEntry, len(records))
	byName := make(map[string]*linkEntry, len(records))
	for i, rec := range records {
		nv, ok := rec.Get(opts.NameField)
		if !ok || nv.String() == "" {
			return nil, errors.New(errors.ErrCodeMissingField, "record %d: missing name field %q", i, opts.NameField)
		}
		e := linkEntry{index: i, name: nv.String(), rec: rec}
		if pv, ok := rec.Get(opts.ParentField); ok && pv.String() != "" {
			e.parent, e.hasParent = pv.String(), true
		}
		if prev, dup := byName[e.name]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateName, "record %d: name %q already used by record %d", i, e.name, prev.index)
		}
		entries[i] = e
		byName[e.name] = &entries[i]
	}

	if err := detectCycles(entries, byName); err != nil {
		return nil, err
	}

	var roots []*linkEntry
	for i := range entries {
		if !entries[i].hasParent {
			roots = append(roots, &entries[i])
		}
	}
	switch {
	case len(roots) == 0:
		return nil, errors.New(errors.ErrCodeNoRoot, "no root found: all %d records have field %q set", len(entries), opts.ParentField)
	case len(roots) > 1:
		return nil, errors.New(errors.ErrCodeAmbiguousRoot, "ambiguous root: %d records have no %q (%s)", len(roots), opts.ParentField, listRoots(roots))
	}

	children := make(map[string][]*linkEntry, len(entries))
	for i := range entries {
		e := &entries[i]
		if !e.hasParent {
			continue
		}
		if _, ok := byName[e.parent]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownParent, "record %d (%q): parent %q not found", e.index, e.name, e.parent)
		}
		children[e.parent] = append(children[e.parent], e)
	}

	b := linkBuilder{opts: opts, children: children, visited: make(map[string]bool, len(entries))}
	root, err := b.build(roots[0])
	if err != nil {
		return nil, err
	}
	if len(b.visited) != len(entries) {
		return nil, errors.New(errors.ErrCodeInternal, "reached %d of %d records from root %q", len(b.visited), len(entries), roots[0].name)
	}
	return root, nil
}

type linkBuilder struct {
	opts     Options
	children map[string][]*linkEntry
	visited  map[string]bool
}

func (b *linkBuilder) build(e *linkEntry) (*tree.Node, error) {
	if b.visited[e.name] {
		return nil, errors.New(errors.ErrCodeCycle, "record %d: %q reached twice while building", e.index, e.name)
	}
	b.visited[e.name] = true

	kids := b.children[e.name]
	own, err := amount(e.index, e.rec, b.opts, len(kids) == 0)
	if err != nil {
		return nil, err
	}

	n := tree.New(e.name)
	total := own
	for _, c := range kids {
		child, err := b.build(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
		total += child.Size()
	}
	n.SetValue(total)
	return n, nil
}

// detectCycles follows parent links from every record and fails on the
// first chain that returns to a record already on it.
func detectCycles(entries []linkEntry, byName map[string]*linkEntry) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(entries))
	for _, start := range entries {
		var chain []string
		cur := start.name
		for state[cur] != done {
			if state[cur] == visiting {
				return cycleError(chain, cur, byName[cur].index)
			}
			state[cur] = visiting
			chain = append(chain, cur)
			e, ok := byName[cur]
			if !ok || !e.hasParent {
				break
			}
			cur = e.parent
		}
		for _, name := range chain {
			state[name] = done
		}
	}
	return nil
}

func cycleError(chain []string, at string, index int) error {
	start := 0
	for i, name := range chain {
		if name == at {
			start = i
			break
		}
	}
	loop := append(append([]string(nil), chain[start:]...), at)
	return errors.New(errors.ErrCodeCycle, "record %d: cycle in parent links: %s", index, strings.Join(loop, " -> "))
}

func listRoots(roots []*linkEntry) string {
	names := make([]string, 0, maxListedRoots)
	for i, r := range roots {
		if i == maxListedRoots {
			names = append(names, "...")
			break
		}
		names = append(names, r.name)
	}
	return strings.Join(names, ", ")
}
