package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/hierarchy"
	pio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/pipeline"
)

// inputFlags holds the flags shared by commands that normalize a file.
// Values are applied on top of the config file only when the flag was set.
type inputFlags struct {
	format      string   // input format, detected from the extension when empty
	na          []string // cell values treated as missing
	dimensions  []string // cross-tabulate by these fields
	weight      string   // weight field for cross-tabulation
	pathSep     string   // path separator; selects the path builder
	parentField string   // parent field; selects the parent-link builder
	nameField   string   // name or path field
	valueField  string   // value field for stat=sum
	stat        string   // count or sum
	rootName    string   // name of the implicit root of path trees
	dropZero    bool     // remove zero-valued leaves
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.format, "input-format", "", "input format: csv, tsv, json, yaml (default: from extension)")
	fl.StringSliceVar(&f.na, "na", nil, "cell values treated as missing (default NA)")
	fl.StringSliceVar(&f.dimensions, "dimensions", nil, "cross-tabulate rows by these fields (comma-separated)")
	fl.StringVar(&f.weight, "weight", "", "weight field for --dimensions (default: count rows)")
	fl.StringVarP(&f.pathSep, "path-sep", "s", "", "separator of path strings; selects the path builder")
	fl.StringVarP(&f.parentField, "parent-field", "p", "", "field naming each row's parent; selects the parent-link builder")
	fl.StringVar(&f.nameField, "name-field", "", "field holding the node name or path (default name)")
	fl.StringVar(&f.valueField, "value-field", "", "field summed by --stat sum (default value)")
	fl.StringVar(&f.stat, "stat", "", "aggregation: count (default), sum")
	fl.StringVar(&f.rootName, "root-name", "", "name of the root of path trees (default root)")
	fl.BoolVar(&f.dropZero, "drop-zero", false, "remove zero-valued leaves")
}

// options merges cfg and the flags that were set into pipeline options.
func (f *inputFlags) options(cmd *cobra.Command, input string, cfg Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		Input:      input,
		NA:         cfg.Input.NA,
		Dimensions: cfg.Input.Dimensions,
		Weight:     cfg.Input.Weight,
		Normalize:  cfg.Normalize,
		Widget:     cfg.Widget,
	}

	format := cfg.Input.Format
	fl := cmd.Flags()
	if fl.Changed("input-format") {
		format = f.format
	}
	if format != "" {
		pf, err := pio.ParseFormat(format)
		if err != nil {
			return opts, err
		}
		opts.Format = pf
	}

	if fl.Changed("na") {
		opts.NA = f.na
	}
	if fl.Changed("dimensions") {
		opts.Dimensions = f.dimensions
	}
	if fl.Changed("weight") {
		opts.Weight = f.weight
	}

	n := &opts.Normalize
	// A builder flag on the command line replaces the builder chosen in
	// the config file instead of combining with it.
	if fl.Changed("path-sep") {
		n.PathSep, n.ParentField = f.pathSep, ""
	}
	if fl.Changed("parent-field") {
		n.ParentField = f.parentField
		if !fl.Changed("path-sep") {
			n.PathSep = ""
		}
	}
	if fl.Changed("name-field") {
		n.NameField = f.nameField
	}
	if fl.Changed("value-field") {
		n.ValueField = f.valueField
	}
	if fl.Changed("stat") {
		stat, err := hierarchy.ParseStat(f.stat)
		if err != nil {
			return opts, err
		}
		n.Stat = stat
	}
	if fl.Changed("root-name") {
		n.RootName = f.rootName
	}
	if fl.Changed("drop-zero") {
		n.DropZero = f.dropZero
	}
	return opts, nil
}
