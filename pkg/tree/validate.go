package tree

import (
	"math"
	"strings"

	"github.com/matzehuels/treeflow/pkg/errors"
)

// Validate checks the structural invariants of the tree rooted at n:
// unique sibling names, finite non-negative values, and parent values no
// smaller than the sum of their children. The first violation is returned.
func Validate(n *Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeNoRoot, "tree is empty")
	}
	var err error
	Walk(n, func(m *Node, path []string) bool {
		if err != nil {
			return false
		}
		where := strings.Join(path, "/")
		if m.HasValue() {
			v := *m.Value
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				err = errors.New(errors.ErrCodeInvalidValue, "node %q: value %v is not a non-negative number", where, v)
				return false
			}
		}
		seen := make(map[string]struct{}, len(m.Children))
		var sum float64
		summed := false
		for _, c := range m.Children {
			if _, dup := seen[c.Name]; dup {
				err = errors.New(errors.ErrCodeDuplicateName, "node %q: duplicate child name %q", where, c.Name)
				return false
			}
			seen[c.Name] = struct{}{}
			if c.HasValue() {
				sum += *c.Value
				summed = true
			}
		}
		if m.HasValue() && summed && *m.Value < sum && !approxEqual(*m.Value, sum) {
			err = errors.New(errors.ErrCodeInvalidValue, "node %q: value %v is less than the sum of its children (%v)", where, *m.Value, sum)
			return false
		}
		return true
	})
	return err
}

// CheckSums verifies that every valued parent equals the sum of its
// children's values. It holds for trees where every record sits on a leaf,
// such as sum-aggregated path and contingency trees.
func CheckSums(n *Node) error {
	var err error
	Walk(n, func(m *Node, path []string) bool {
		if err != nil || m.IsLeaf() || !m.HasValue() {
			return err == nil
		}
		var sum float64
		for _, c := range m.Children {
			sum += c.Size()
		}
		if !approxEqual(*m.Value, sum) {
			err = errors.New(errors.ErrCodeInvalidValue, "node %q: value %v != sum of children %v", strings.Join(path, "/"), *m.Value, sum)
			return false
		}
		return true
	})
	return err
}
