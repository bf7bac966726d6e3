// Package pkg provides the core libraries for treeflow hierarchy normalization.
//
// # Overview
//
// Treeflow turns tabular or loosely hierarchical data into one canonical tree
// of {name, value, children} nodes that hierarchical charts (sankey,
// sunburst, partition, treemap) can consume directly. The pkg directory is
// organized into three areas:
//
//  1. Data model - [record], [tree]
//  2. Normalization - [hierarchy], [errors]
//  3. Plumbing - [io], [widget], [pipeline], [observability], [api], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	CSV / TSV / JSON / YAML
//	         ↓
//	    [io] package (decode into a hierarchy.Input)
//	         ↓
//	    [hierarchy] package (pick a builder, aggregate values)
//	         ↓
//	    [tree] package (canonical node tree, stats, validation)
//	         ↓
//	    [widget] package (optional chart payload)
//	         ↓
//	    JSON / YAML output
//
// # Quick Start
//
//	in, _ := io.ImportInput("flare.csv", io.ReadOptions{})
//	root, _ := hierarchy.Normalize(in, hierarchy.Options{
//	    ParentField: "parent",
//	    ValueField:  "size",
//	    Stat:        hierarchy.StatSum,
//	})
//	_ = io.WriteJSON(os.Stdout, root)
//
// # Main Packages
//
// [record] - Ordered field/value records with NA handling and numeric parsing.
//
// [tree] - The canonical node type plus walking, lookup, stats and
// structural validation.
//
// [hierarchy] - The four builders: row projection, path splitting, parent
// links and contingency flattening. [hierarchy.Normalize] dispatches among
// them based on the input kind and options.
//
// [errors] - Coded errors with categories used by the CLI and API to choose
// exit codes and HTTP statuses.
//
// [pipeline] - Load → normalize → payload orchestration shared by the CLI and
// the HTTP server.
//
// [api] - HTTP server exposing the pipeline as POST /v1/normalize.
//
// [record]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/record
// [tree]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/tree
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/hierarchy
// [errors]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/io
// [widget]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/widget
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/observability
// [api]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/api
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/buildinfo
// [hierarchy.Normalize]: https://pkg.go.dev/github.com/matzehuels/treeflow/pkg/hierarchy#Normalize
package pkg
