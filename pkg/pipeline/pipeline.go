// Package pipeline provides the load → normalize → payload pipeline for
// treeflow.
//
// The CLI and the HTTP API both run normalization through a [Runner] so they
// share defaults, validation, logging, and hooks.
//
// # Stages
//
//  1. Load: decode a file, or take an already decoded [hierarchy.Input].
//     When Dimensions are set, tabular input is cross-tabulated into a
//     contingency table.
//  2. Normalize: build the canonical tree with [hierarchy.Normalize].
//  3. Payload: when a widget mode is configured, wrap the tree in a
//     [widget.Payload].
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "flare.csv",
//	    Normalize: hierarchy.Options{ParentField: "parent", Stat: hierarchy.StatSum},
//	    Widget:    widget.Config{Mode: "sunburst"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Nodes)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
	pio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/tree"
	"github.com/matzehuels/treeflow/pkg/widget"
)

// SourceInline names inputs passed through Options.Data in logs and hooks.
const SourceInline = "inline"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input  string     `json:"input,omitempty"` // file path
	Format pio.Format `json:"format,omitempty"`
	NA     []string   `json:"na,omitempty"`

	// Cross-tabulation of tabular input into a contingency table
	Dimensions []string `json:"dimensions,omitempty"`
	Weight     string   `json:"weight,omitempty"`

	// Normalize options
	Normalize hierarchy.Options `json:"options"`

	// Payload options; an empty mode returns the bare tree
	Widget widget.Config `json:"widget"`

	// Runtime options (not serialized)
	Data   hierarchy.Input `json:"-"`
	Logger *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Kind is the variant of the loaded input.
	Kind string

	// Tree is the canonical tree.
	Tree *tree.Node

	// Payload wraps Tree when a widget mode was configured.
	Payload *widget.Payload

	// Stats contains timing and size information.
	Stats Stats
}

// Output returns the payload when one was built and the tree otherwise.
func (r *Result) Output() any {
	if r.Payload != nil {
		return r.Payload
	}
	return r.Tree
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records       int           `json:"records"`
	Nodes         int           `json:"nodes"`
	Leaves        int           `json:"leaves"`
	Depth         int           `json:"depth"`
	Total         float64       `json:"total"`
	LoadTime      time.Duration `json:"load_ns"`
	NormalizeTime time.Duration `json:"normalize_ns"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForNormalize(); err != nil {
		return err
	}
	if err := o.ValidateForPayload(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that exactly one input source is set.
func (o *Options) ValidateForLoad() error {
	switch {
	case o.Input == "" && o.Data == nil:
		return errors.New(errors.ErrCodeInvalidConfig, "input file or data is required")
	case o.Input != "" && o.Data != nil:
		return errors.New(errors.ErrCodeInvalidConfig, "input file and data are mutually exclusive")
	}
	if o.Format != "" {
		f, err := pio.ParseFormat(string(o.Format))
		if err != nil {
			return err
		}
		o.Format = f
	}
	if o.Weight != "" && len(o.Dimensions) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "weight %q needs at least one dimension", o.Weight)
	}
	o.setLoggerDefault()
	return nil
}

// SetNormalizeDefaults fills empty normalize options with their defaults.
func (o *Options) SetNormalizeDefaults() {
	o.Normalize = o.Normalize.WithDefaults()
	o.setLoggerDefault()
}

// ValidateForNormalize sets defaults and validates the normalize options.
func (o *Options) ValidateForNormalize() error {
	o.SetNormalizeDefaults()
	return o.Normalize.Validate()
}

// ValidateForPayload checks the widget mode when one is set.
func (o *Options) ValidateForPayload() error {
	if !o.WantsPayload() {
		return nil
	}
	mode, err := widget.ParseMode(o.Widget.Mode)
	if err != nil {
		return err
	}
	o.Widget.Mode = string(mode)
	return nil
}

// WantsPayload reports whether the run should wrap the tree in a payload.
func (o *Options) WantsPayload() bool {
	return o.Widget.Mode != ""
}

// Source names the input in logs and hooks.
func (o *Options) Source() string {
	if o.Input != "" {
		return o.Input
	}
	return SourceInline
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
