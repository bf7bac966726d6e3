package hierarchy

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/record"
	"github.com/matzehuels/treeflow/pkg/tree"
)

func pathRecords(paths ...string) []record.Record {
	out := make([]record.Record, len(paths))
	for i, p := range paths {
		out[i] = record.New("name", p)
	}
	return out
}

func TestBuildFromPathsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		sep   string
		paths []string
	}{
		{"flat", "/", []string{"a", "b", "c"}},
		{"nested", "/", []string{"flare/analytics/cluster", "flare/analytics/graph", "flare/animate/Easing"}},
		{"custom separator", "::", []string{"std::io::Read", "std::io::Write", "std::fmt"}},
		{"deep single chain", ".", []string{"a.b.c.d.e.f"}},
		{"interleaved prefixes", "/", []string{"x/1", "y/1", "x/2", "y/2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := BuildFromPaths(pathRecords(tt.paths...), Options{PathSep: tt.sep})
			if err != nil {
				t.Fatalf("BuildFromPaths() error = %v", err)
			}
			got := tree.Paths(root, tt.sep)
			want := slices.Clone(tt.paths)
			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("leaf paths = %v, want %v", got, want)
			}
			if err := tree.Validate(root); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestBuildFromPathsOrderAndCounts(t *testing.T) {
	root, err := BuildFromPaths(pathRecords("b/x", "a/y", "b/z", "a/y"), Options{PathSep: "/"})
	if err != nil {
		t.Fatal(err)
	}

	if root.Name != DefaultRootName {
		t.Errorf("root name = %q, want %q", root.Name, DefaultRootName)
	}
	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	if !slices.Equal(names, []string{"b", "a"}) {
		t.Errorf("children = %v, want first-seen order [b a]", names)
	}
	if v := tree.Find(root, "a", "y").Size(); v != 2 {
		t.Errorf("duplicate path count = %v, want 2", v)
	}
	if root.Size() != 4 {
		t.Errorf("root count = %v, want 4", root.Size())
	}
	if err := tree.CheckSums(root); err != nil {
		t.Errorf("CheckSums() = %v", err)
	}
}

func TestBuildFromPathsSum(t *testing.T) {
	recs := []record.Record{
		record.New("path", "A/B", "size", 2.5),
		record.New("path", "A/C", "size", 1),
		record.New("path", "A/B", "size", 0.5),
	}
	root, err := BuildFromPaths(recs, Options{NameField: "path", ValueField: "size", PathSep: "/", Stat: StatSum, RootName: "top"})
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "top" {
		t.Errorf("root name = %q", root.Name)
	}
	if v := tree.Find(root, "A", "B").Size(); v != 3 {
		t.Errorf("A/B = %v, want 3 (summed, not overwritten)", v)
	}
	if v := tree.Find(root, "A").Size(); v != 4 {
		t.Errorf("A = %v, want 4", v)
	}
	if err := tree.CheckSums(root); err != nil {
		t.Errorf("CheckSums() = %v", err)
	}
}

func TestBuildFromPathsPrefixRecord(t *testing.T) {
	root, err := BuildFromPaths(pathRecords("A", "A/B"), Options{PathSep: "/"})
	if err != nil {
		t.Fatal(err)
	}
	if v := tree.Find(root, "A").Size(); v != 2 {
		t.Errorf("A = %v, want 2 (own record plus child)", v)
	}
	if err := tree.Validate(root); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestBuildFromPathsErrors(t *testing.T) {
	tests := []struct {
		name     string
		records  []record.Record
		opts     Options
		wantCode errors.Code
		wantText string
	}{
		{
			name:     "empty segment",
			records:  pathRecords("ok", "A//B"),
			opts:     Options{PathSep: "/"},
			wantCode: errors.ErrCodeInvalidPath,
			wantText: "record 1",
		},
		{
			name:     "leading separator",
			records:  pathRecords("/A"),
			opts:     Options{PathSep: "/"},
			wantCode: errors.ErrCodeInvalidPath,
		},
		{
			name:     "trailing separator",
			records:  pathRecords("A/"),
			opts:     Options{PathSep: "/"},
			wantCode: errors.ErrCodeInvalidPath,
		},
		{
			name:     "empty path",
			records:  []record.Record{record.New("name", record.String(""))},
			opts:     Options{PathSep: "/"},
			wantCode: errors.ErrCodeInvalidPath,
		},
		{
			name:     "missing path field",
			records:  []record.Record{record.New("label", "A")},
			opts:     Options{PathSep: "/"},
			wantCode: errors.ErrCodeMissingField,
			wantText: `"name"`,
		},
		{
			name:     "sum without value",
			records:  pathRecords("A"),
			opts:     Options{PathSep: "/", Stat: StatSum},
			wantCode: errors.ErrCodeMissingField,
			wantText: `"value"`,
		},
		{
			name:     "non-numeric value",
			records:  []record.Record{record.New("name", "A", "value", "lots")},
			opts:     Options{PathSep: "/", Stat: StatSum},
			wantCode: errors.ErrCodeInvalidValue,
		},
		{
			name:     "negative value",
			records:  []record.Record{record.New("name", "A", "value", -2)},
			opts:     Options{PathSep: "/", Stat: StatSum},
			wantCode: errors.ErrCodeInvalidValue,
		},
		{
			name:     "no separator",
			records:  pathRecords("A"),
			opts:     Options{},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name:     "unknown stat",
			records:  pathRecords("A"),
			opts:     Options{PathSep: "/", Stat: "mean"},
			wantCode: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := BuildFromPaths(tt.records, tt.opts)
			if root != nil {
				t.Error("no partial tree should be returned on error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tt.wantCode)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("err = %q, want it to mention %s", err, tt.wantText)
			}
		})
	}
}

func TestBuildFromPathsCountIgnoresValue(t *testing.T) {
	recs := []record.Record{record.New("name", "A", "value", "not a number")}
	root, err := BuildFromPaths(recs, Options{PathSep: "/"})
	if err != nil {
		t.Fatalf("count should not read the value field: %v", err)
	}
	if root.Size() != 1 {
		t.Errorf("root = %v, want 1", root.Size())
	}
}
