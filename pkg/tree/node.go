package tree

import (
	"math"
	"strings"
)

// Node is one element of the canonical hierarchy.
type Node struct {
	Name     string   `json:"name" yaml:"name"`
	Value    *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

// New returns a leaf with the given name and no value.
func New(name string) *Node {
	return &Node{Name: name}
}

// Leaf returns a leaf carrying value v.
func Leaf(name string, v float64) *Node {
	return &Node{Name: name, Value: &v}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// HasValue reports whether n carries an aggregate.
func (n *Node) HasValue() bool { return n.Value != nil }

// Size returns the value of n, or 0 when it has none.
func (n *Node) Size() float64 {
	if n.Value == nil {
		return 0
	}
	return *n.Value
}

// SetValue stores v as the aggregate of n.
func (n *Node) SetValue(v float64) {
	n.Value = &v
}

// AddValue adds v to the aggregate of n, creating it if needed.
func (n *Node) AddValue(v float64) {
	n.SetValue(n.Size() + v)
}

// Child returns the direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Add appends c as the last child of n and returns c.
func (n *Node) Add(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Name: n.Name}
	if n.Value != nil {
		out.SetValue(*n.Value)
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in pre-order. The path holds
// the names from the root to the visited node, inclusive. Returning false
// from fn skips the node's children.
func Walk(n *Node, fn func(n *Node, path []string) bool) {
	var walk func(n *Node, path []string)
	walk = func(n *Node, path []string) {
		path = append(path, n.Name)
		if !fn(n, path) {
			return
		}
		for _, c := range n.Children {
			walk(c, path)
		}
	}
	if n != nil {
		walk(n, nil)
	}
}

// Find returns the node reached by following names from n's children, or nil.
// Find(n) returns n itself.
func Find(n *Node, names ...string) *Node {
	cur := n
	for _, name := range names {
		if cur == nil {
			return nil
		}
		cur = cur.Child(name)
	}
	return cur
}

// Paths returns the path of every leaf below n, excluding n's own name,
// joined with sep, in pre-order.
func Paths(n *Node, sep string) []string {
	var out []string
	Walk(n, func(m *Node, path []string) bool {
		if m != n && m.IsLeaf() {
			out = append(out, strings.Join(path[1:], sep))
		}
		return true
	})
	return out
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes  int     `json:"nodes"`
	Leaves int     `json:"leaves"`
	Depth  int     `json:"depth"`
	Total  float64 `json:"total"`
}

// Summarize computes Stats for the tree rooted at n. Depth counts edges, so
// a lone root has depth 0. Total is the root's value.
func Summarize(n *Node) Stats {
	var s Stats
	if n == nil {
		return s
	}
	s.Total = n.Size()
	Walk(n, func(m *Node, path []string) bool {
		s.Nodes++
		if m.IsLeaf() {
			s.Leaves++
		}
		s.Depth = max(s.Depth, len(path)-1)
		return true
	})
	return s
}

// Equal reports whether two trees have the same names, values, and child order.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || a.HasValue() != b.HasValue() || a.Size() != b.Size() {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// PruneZero removes leaves whose value is zero, repeating upward so that
// branches left empty with a zero value are removed too. The root is never
// removed. It returns the number of nodes removed.
func PruneZero(n *Node) int {
	if n == nil {
		return 0
	}
	removed := 0
	var prune func(n *Node)
	prune = func(n *Node) {
		kept := n.Children[:0]
		for _, c := range n.Children {
			branch := !c.IsLeaf()
			prune(c)
			if c.IsLeaf() && c.Size() == 0 && (c.HasValue() || branch) {
				removed++
				continue
			}
			kept = append(kept, c)
		}
		clear(n.Children[len(kept):])
		n.Children = kept
		if len(n.Children) == 0 {
			n.Children = nil
		}
	}
	prune(n)
	return removed
}

// approxEqual compares aggregates with a tolerance relative to their magnitude
// so sums of fractional values do not fail on rounding.
func approxEqual(a, b float64) bool {
	const eps = 1e-9
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
