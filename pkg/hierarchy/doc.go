// Package hierarchy normalizes tabular input into a canonical [tree.Node].
//
// Three input encodings are understood:
//
//   - Path-encoded rows: each record names its position with a delimited
//     string ("A/B/C"). See [BuildFromPaths].
//   - Parent-linked rows: each record names itself and its parent.
//     See [BuildFromParentLinks].
//   - Contingency tables: a cross-tabulation of categorical dimensions with
//     a frequency per cell. See [Flatten] and [CrossTabulate].
//
// [Normalize] is the entry point. It inspects the [Input] variant and the
// [Options] and picks exactly one builder:
//
//  1. A [DimensionTable] is flattened and built as paths, summing frequencies.
//  2. Tabular input ([Table] or [Records]) with exactly one of PathSep and
//     ParentField set goes to the path or parent-link builder.
//  3. Tabular input with both or neither set is a configuration error.
//  4. Anything else is an unsupported input error.
//
// There is no fallback between branches: an ambiguous configuration fails
// instead of guessing.
//
// # Aggregation
//
// A node's value aggregates every record in its subtree, the node's own
// record included. With [StatCount] that is the number of records: in a
// parent-linked table where A has children B and C, A has value 3. With
// [StatSum] it is the sum of the value field.
//
// # Usage
//
//	root, err := hierarchy.Normalize(hierarchy.Records{
//	    record.New("name", "A"),
//	    record.New("name", "B", "parent", "A"),
//	    record.New("name", "C", "parent", "A"),
//	}, hierarchy.Options{ParentField: "parent"})
//
// Every call is a pure function of its arguments: nothing is cached or
// shared between calls, and calling Normalize twice on the same input
// returns equal trees.
package hierarchy
