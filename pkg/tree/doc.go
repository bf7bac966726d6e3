// Package tree defines the canonical hierarchy handed to renderers.
//
// A [Node] has a name, an optional aggregate value, and ordered children.
// Serialized, it is the nested shape every hierarchical renderer in the
// ecosystem understands:
//
//	{
//	  "name": "root",
//	  "value": 3,
//	  "children": [
//	    {"name": "B", "value": 1},
//	    {"name": "C", "value": 1}
//	  ]
//	}
//
// A node without a "children" key is a leaf. "value" is omitted only when the
// node carries no aggregate.
//
// # Invariants
//
// Sibling names are unique, values are non-negative, and a parent's value is
// never smaller than the sum of its children. When every record sits on a
// leaf, the parent's value equals that sum exactly. [Validate] checks the
// first three; [CheckSums] checks exact equality. Builders do not enforce
// these silently; tests and callers verify them.
package tree
