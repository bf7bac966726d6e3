package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
	pio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/observability"
	"github.com/matzehuels/treeflow/pkg/tree"
	"github.com/matzehuels/treeflow/pkg/widget"
)

// Runner executes pipeline runs.
//
// The Runner holds no per-run state, so multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → normalize → payload pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	in, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Kind = hierarchy.Kind(in)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = recordCount(in)

	logger.Info("loaded input",
		"source", opts.Source(),
		"kind", result.Kind,
		"records", result.Stats.Records,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Normalize
	normalizeStart := time.Now()
	root, err := r.Normalize(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.Tree = root
	result.Stats.NormalizeTime = time.Since(normalizeStart)

	s := tree.Summarize(root)
	result.Stats.Nodes = s.Nodes
	result.Stats.Leaves = s.Leaves
	result.Stats.Depth = s.Depth
	result.Stats.Total = s.Total

	logger.Info("normalized",
		"root", root.Name,
		"nodes", s.Nodes,
		"leaves", s.Leaves,
		"duration", result.Stats.NormalizeTime)

	// Stage 3: Payload
	if opts.WantsPayload() {
		p, err := widget.New(root, opts.Widget)
		if err != nil {
			return nil, fmt.Errorf("payload: %w", err)
		}
		result.Payload = p
		logger.Debug("built payload", "mode", p.Type)
	}

	return result, nil
}

// Load decodes the configured input and cross-tabulates it when
// dimensions are set.
func (r *Runner) Load(ctx context.Context, opts Options) (in hierarchy.Input, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}

	source := opts.Source()
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	defer func() {
		observability.Pipeline().OnLoadComplete(ctx, source, recordCount(in), time.Since(start), err)
	}()

	in = opts.Data
	if opts.Input != "" {
		in, err = pio.ImportInput(opts.Input, pio.ReadOptions{Format: opts.Format, NA: opts.NA})
		if err != nil {
			return nil, err
		}
	}

	if len(opts.Dimensions) > 0 {
		return crossTabulate(in, opts)
	}
	return in, nil
}

func crossTabulate(in hierarchy.Input, opts Options) (hierarchy.Input, error) {
	var recs hierarchy.Records
	switch v := in.(type) {
	case *hierarchy.Table:
		recs = v.Records()
	case hierarchy.Records:
		recs = v
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "cannot cross-tabulate %s input", hierarchy.Kind(in))
	}
	t, err := hierarchy.CrossTabulate(recs, opts.Weight, opts.Dimensions...)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("cross-tabulated",
		"dimensions", opts.Dimensions,
		"cells", t.Size(),
		"total", t.Total())
	return t, nil
}

// Normalize builds the canonical tree for in.
func (r *Runner) Normalize(ctx context.Context, in hierarchy.Input, opts Options) (root *tree.Node, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForNormalize(); err != nil {
		return nil, err
	}

	kind := hierarchy.Kind(in)
	start := time.Now()
	observability.Pipeline().OnNormalizeStart(ctx, kind, recordCount(in))
	defer func() {
		nodes := 0
		if root != nil {
			nodes = tree.Summarize(root).Nodes
		}
		observability.Pipeline().OnNormalizeComplete(ctx, kind, nodes, time.Since(start), err)
	}()

	opts.Logger.Debug("normalizing",
		"kind", kind,
		"path_sep", opts.Normalize.PathSep,
		"parent_field", opts.Normalize.ParentField,
		"stat", opts.Normalize.Stat)
	return hierarchy.Normalize(in, opts.Normalize)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func recordCount(in hierarchy.Input) int {
	switch v := in.(type) {
	case *hierarchy.Table:
		if v != nil {
			return len(v.Rows)
		}
	case hierarchy.Records:
		return len(v)
	case *hierarchy.DimensionTable:
		if v != nil {
			return v.Size()
		}
	}
	return 0
}
