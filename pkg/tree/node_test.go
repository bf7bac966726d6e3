package tree

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treeflow/pkg/errors"
)

func sample() *Node {
	root := New("root")
	root.SetValue(6)
	a := root.Add(New("A"))
	a.SetValue(4)
	a.Add(Leaf("x", 1))
	a.Add(Leaf("y", 3))
	root.Add(Leaf("B", 2))
	return root
}

func TestPaths(t *testing.T) {
	got := Paths(sample(), "/")
	want := []string{"A/x", "A/y", "B"}
	if !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestFind(t *testing.T) {
	root := sample()
	if n := Find(root, "A", "y"); n == nil || n.Size() != 3 {
		t.Errorf("Find(A, y) = %v", n)
	}
	if n := Find(root, "A", "missing"); n != nil {
		t.Errorf("Find(A, missing) = %v, want nil", n)
	}
	if n := Find(root); n != root {
		t.Error("Find with no names should return the root")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sample())
	want := Stats{Nodes: 5, Leaves: 3, Depth: 2, Total: 6}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if s := Summarize(New("alone")); s.Depth != 0 || s.Nodes != 1 || s.Leaves != 1 {
		t.Errorf("Summarize(lone root) = %+v", s)
	}
}

func TestJSONShape(t *testing.T) {
	data, err := json.Marshal(sample())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"root","value":6,"children":[{"name":"A","value":4,"children":[{"name":"x","value":1},{"name":"y","value":3}]},{"name":"B","value":2}]}`
	if string(data) != want {
		t.Errorf("json = %s\nwant  %s", data, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	orig := sample()
	orig.Add(Leaf("zero", 0))
	orig.AddValue(0)

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var back Node
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, &back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !back.Child("zero").HasValue() {
		t.Error("zero value lost in round trip")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sample()
	c := orig.Clone()
	if !Equal(orig, c) {
		t.Fatal("clone differs from original")
	}
	c.Child("A").Child("x").SetValue(100)
	if Find(orig, "A", "x").Size() != 1 {
		t.Error("mutating clone changed the original")
	}
	if Equal(orig, c) {
		t.Error("Equal should detect the changed value")
	}
}

func TestPruneZero(t *testing.T) {
	root := New("root")
	a := root.Add(New("A"))
	a.SetValue(0)
	a.Add(Leaf("a1", 0))
	a.Add(Leaf("a2", 0))
	b := root.Add(New("B"))
	b.SetValue(2)
	b.Add(Leaf("b1", 0))
	b.Add(Leaf("b2", 2))
	root.Add(New("unvalued"))

	removed := PruneZero(root)
	if removed != 4 {
		t.Errorf("removed = %d, want 4", removed)
	}
	if got := Paths(root, "/"); !slices.Equal(got, []string{"B/b2", "unvalued"}) {
		t.Errorf("Paths after prune = %v", got)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sample()); err != nil {
		t.Errorf("Validate(sample) = %v", err)
	}

	dup := New("root")
	dup.Add(Leaf("a", 1))
	dup.Add(Leaf("a", 2))
	if err := Validate(dup); !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("duplicate siblings: err = %v", err)
	}

	neg := New("root")
	neg.Add(Leaf("a", -1))
	if err := Validate(neg); !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Errorf("negative value: err = %v", err)
	}

	small := Leaf("root", 1)
	small.Add(Leaf("a", 2))
	if err := Validate(small); !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Errorf("parent below children: err = %v", err)
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}

func TestCheckSums(t *testing.T) {
	if err := CheckSums(sample()); err != nil {
		t.Errorf("CheckSums(sample) = %v", err)
	}

	own := sample()
	own.SetValue(7)
	if err := CheckSums(own); err == nil {
		t.Error("CheckSums should reject a parent with its own contribution")
	}
	if err := Validate(own); err != nil {
		t.Errorf("Validate should accept parent >= children: %v", err)
	}
}
