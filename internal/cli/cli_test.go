package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeflow/pkg/errors"
	pio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/pipeline"
	"github.com/matzehuels/treeflow/pkg/tree"
)

const flareCSV = `name,parent,size
flare,,
analytics,flare,
cluster,analytics,3938
graph,analytics,3812
vis,flare,NA
axes,vis,1302
`

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	withUIOut(t, io.Discard)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNormalizeCommand(t *testing.T) {
	in := writeFile(t, "flare.csv", flareCSV)
	out, err := run(t, "normalize", in, "--parent-field", "parent", "--stat", "sum", "--value-field", "size")
	if err != nil {
		t.Fatal(err)
	}

	root, err := pio.ReadTree(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a tree: %v\n%s", err, out)
	}
	if root.Name != "flare" || root.Size() != 3938+3812+1302 {
		t.Errorf("root = %s (%v)", root.Name, root.Size())
	}
	if err := tree.Validate(root); err != nil {
		t.Error(err)
	}
}

func TestNormalizeCommandPayloadToFile(t *testing.T) {
	in := writeFile(t, "paths.tsv", "name\tvalue\na/b\t2\na/c\t3\n")
	outPath := filepath.Join(t.TempDir(), "payload.json")

	if _, err := run(t, "normalize", in, "-s", "/", "--stat", "sum", "--mode", "Treemap", "--width", "300", "-o", outPath); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var p struct {
		Type  string    `json:"type"`
		Width int       `json:"width"`
		Data  tree.Node `json:"data"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Type != "treemap" || p.Width != 300 {
		t.Errorf("payload = %s/%d", p.Type, p.Width)
	}
	if p.Data.Name != "root" || p.Data.Size() != 5 {
		t.Errorf("data = %s (%v)", p.Data.Name, p.Data.Size())
	}
}

func TestNormalizeCommandYAML(t *testing.T) {
	in := writeFile(t, "paths.csv", "name\nx/y\n")
	out, err := run(t, "normalize", in, "--path-sep", "/", "--format", "yaml", "--root-name", "top")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "name: top") {
		t.Errorf("yaml output = %q", out)
	}
}

func TestNormalizeCommandErrors(t *testing.T) {
	in := writeFile(t, "flare.csv", flareCSV)
	tests := []struct {
		name     string
		args     []string
		wantCode errors.Code
	}{
		{"both builders", []string{"normalize", in, "-s", "/", "-p", "parent"}, errors.ErrCodeInvalidConfig},
		{"no builder", []string{"normalize", in}, errors.ErrCodeInvalidConfig},
		{"bad stat", []string{"normalize", in, "-p", "parent", "--stat", "median"}, errors.ErrCodeInvalidConfig},
		{"bad mode", []string{"normalize", in, "-p", "parent", "--mode", "pie"}, errors.ErrCodeInvalidConfig},
		{"missing file", []string{"normalize", filepath.Join(t.TempDir(), "nope.csv"), "-p", "parent"}, errors.ErrCodeFileNotFound},
		{"missing config", []string{"normalize", in, "-p", "parent", "--config", filepath.Join(t.TempDir(), "nope.toml")}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	in := writeFile(t, "flare.csv", flareCSV)
	cfg := writeFile(t, "treeflow.toml", `
[normalize]
parent_field = "parent"
stat = "sum"
value_field = "size"

[widget]
mode = "sankey"

[widget.options]
duration = 750
`)

	out, err := run(t, "normalize", in, "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	var p struct {
		Type    string         `json:"type"`
		Options map[string]any `json:"options"`
		Data    tree.Node      `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatal(err)
	}
	if p.Type != "sankey" || p.Options["duration"] != 750.0 {
		t.Errorf("payload = %+v", p)
	}
	if p.Data.Size() != 3938+3812+1302 {
		t.Errorf("root value = %v", p.Data.Size())
	}

	// A flag overrides the file; --stat count replaces sum.
	out, err = run(t, "normalize", in, "--config", cfg, "--stat", "count")
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatal(err)
	}
	if p.Data.Size() != 6 {
		t.Errorf("count root value = %v, want 6", p.Data.Size())
	}

	// A builder flag replaces the builder from the file.
	paths := writeFile(t, "paths.csv", "name\na/b\n")
	if _, err := run(t, "normalize", paths, "--config", cfg, "--path-sep", "/", "--stat", "count"); err != nil {
		t.Errorf("path-sep should replace parent_field from config: %v", err)
	}
}

func TestConfigUnknownKeys(t *testing.T) {
	cfg := writeFile(t, "bad.toml", "[normalize]\nparent = \"parent\"\n")
	_, err := loadConfig(cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), "normalize.parent") {
		t.Errorf("err = %v", err)
	}
}

func TestConfigDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := loadConfig("")
	if err != nil || cfg.Normalize.ParentField != "" {
		t.Fatalf("absent default config: %+v, %v", cfg, err)
	}

	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	data := "[server]\naddr = \":9999\"\nread_timeout = \"5s\"\n"
	if err := os.WriteFile(filepath.Join(dir, appName, configFile), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9999" || cfg.Server.ReadTimeout.Seconds() != 5 {
		t.Errorf("server config = %+v", cfg.Server)
	}
}

func TestInspectCommand(t *testing.T) {
	in := writeFile(t, "flare.csv", flareCSV)
	out, err := run(t, "inspect", in, "-p", "parent", "--depth", "1")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"flare", "analytics", "vis", "Records", "table"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output should contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "cluster") {
		t.Errorf("depth 1 should hide grandchildren:\n%s", out)
	}
}

func TestPreviewTreeElidesChildren(t *testing.T) {
	root := tree.New("r")
	for _, name := range []string{"a", "b", "c", "d"} {
		root.Add(tree.Leaf(name, 1))
	}
	out := previewTree(root, 2, 2).String()
	if !strings.Contains(out, "2 more") || strings.Contains(out, "c 1") {
		t.Errorf("preview:\n%s", out)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         pio.Format
		wantErr      bool
	}{
		{"", "", pio.FormatJSON, false},
		{"", "tree.yml", pio.FormatYAML, false},
		{"", "tree.csv", pio.FormatJSON, false},
		{"yaml", "tree.json", pio.FormatYAML, false},
		{"csv", "", "", true},
		{"xml", "", "", true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.flag, tt.output)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("outputFormat(%q, %q) = %q, %v", tt.flag, tt.output, got, err)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion should mention %s", shell, appName)
			}
		})
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should fail")
	}
}

func TestStatsLine(t *testing.T) {
	withUIOut(t, io.Discard)
	line := statsLine(statsFixture())
	for _, want := range []string{"6 records", "6 nodes", "3 leaves", "depth 2", "total 9052"} {
		if !strings.Contains(line, want) {
			t.Errorf("stats line %q should contain %q", line, want)
		}
	}
}

func statsFixture() pipeline.Stats {
	return pipeline.Stats{Records: 6, Nodes: 6, Leaves: 3, Depth: 2, Total: 9052}
}

func TestLoadConfigShippedExample(t *testing.T) {
	cfg, err := loadConfig(filepath.Join("..", "..", "examples", "treeflow.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Normalize.ParentField != "parent" || cfg.Normalize.ValueField != "size" {
		t.Errorf("normalize = %+v", cfg.Normalize)
	}
	if cfg.Widget.Mode != "sunburst" || cfg.Widget.Options["legend"] != true {
		t.Errorf("widget = %+v", cfg.Widget)
	}
	if cfg.Server.ReadTimeout.Seconds() != 15 {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
}
