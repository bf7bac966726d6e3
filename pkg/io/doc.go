// Package io reads tabular input files and reads and writes canonical trees.
//
// # Input Formats
//
// [ImportInput] and [ReadInput] turn a file into a [hierarchy.Input]:
//
//   - CSV / TSV: a header row followed by data rows. Empty cells and cells
//     listed in ReadOptions.NA ("NA" by default) are missing; numeric cells
//     become numbers.
//   - JSON / YAML: one of three shapes.
//
// An array of objects is a table whose columns appear in first-seen order:
//
//	[
//	  {"name": "flare"},
//	  {"name": "analytics", "parent": "flare"},
//	  {"name": "cluster", "parent": "analytics", "size": 3938}
//	]
//
// An object with "columns" and "rows" is a table given column-wise:
//
//	{"columns": ["path", "size"], "rows": [["a/b", 1], ["a/c", 2]]}
//
// An object with "dimensions" and "freq" is a contingency table, cells in
// row-major order (last dimension varies fastest):
//
//	{
//	  "dimensions": [
//	    {"name": "Class", "levels": ["1st", "2nd", "3rd", "Crew"]},
//	    {"name": "Sex", "levels": ["Male", "Female"]}
//	  ],
//	  "freq": [180, 145, 179, 106, 510, 196, 862, 23]
//	}
//
// Any other document is rejected with an unsupported input error. JSON is
// decoded with the YAML decoder in ordered-map mode so that object key order
// survives and column order matches the file.
//
// # Trees
//
// [WriteJSON] / [WriteYAML] encode a tree (or any payload) and [ReadTree]
// decodes the JSON form back. The format round-trips without loss:
// {name, value?, children?} recursively.
package io
