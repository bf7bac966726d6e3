package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/pipeline"
)

// normalizeOpts holds the output flags of the normalize command.
type normalizeOpts struct {
	output string // output file; stdout when empty
	format string // output format: json or yaml
	mode   string // widget mode; the bare tree is written when empty
	width  int    // payload width
	height int    // payload height
}

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	var (
		in   inputFlags
		opts normalizeOpts
	)

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Build the canonical tree from a table",
		Long: `Build the canonical {name, value, children} tree from a table.

Pick the encoding of the hierarchy with exactly one of --path-sep and
--parent-field. Contingency tables (JSON/YAML with "dimensions" and "freq")
need neither; their frequencies are summed along the level paths.

With --mode the tree is wrapped in a widget payload for a renderer.

Examples:
  treeflow normalize flare.csv --parent-field parent --stat sum --value-field size
  treeflow normalize files.tsv --path-sep / -o tree.json
  treeflow normalize titanic.json --mode sunburst --width 640`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			popts, err := in.options(cmd, args[0], cfg)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("mode") {
				popts.Widget.Mode = opts.mode
			}
			if fl.Changed("width") {
				popts.Widget.Width = opts.width
			}
			if fl.Changed("height") {
				popts.Widget.Height = opts.height
			}
			return c.runNormalize(cmd.Context(), cmd.OutOrStdout(), popts, opts)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json (default), yaml")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "wrap in a widget payload: sankey, sunburst, partition, treemap")
	cmd.Flags().IntVar(&opts.width, "width", 0, "payload width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "payload height")

	return cmd
}

// runNormalize executes the pipeline and writes the result.
func (c *CLI) runNormalize(ctx context.Context, w io.Writer, popts pipeline.Options, opts normalizeOpts) error {
	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Normalizing %s...", filepath.Base(popts.Input)))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Normalization failed")
		return err
	}
	spinner.Stop()

	if opts.output == "" {
		return pio.Write(w, result.Output(), format)
	}
	if err := pio.Export(result.Output(), opts.output, format); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done("Normalized " + popts.Input)
	printSuccess("Wrote %s", kindLabel(result))
	printFile(opts.output)
	printStats(result.Stats)
	return nil
}

// outputFormat resolves the --format flag, falling back to the output
// file's extension and then to JSON.
func outputFormat(flag, output string) (pio.Format, error) {
	if flag != "" {
		f, err := pio.ParseFormat(flag)
		if err != nil {
			return "", err
		}
		if f != pio.FormatJSON && f != pio.FormatYAML {
			return "", fmt.Errorf("output format must be json or yaml, got %q", flag)
		}
		return f, nil
	}
	if f, err := pio.DetectFormat(output); err == nil && f == pio.FormatYAML {
		return f, nil
	}
	return pio.FormatJSON, nil
}

func kindLabel(r *pipeline.Result) string {
	if r.Payload != nil {
		return string(r.Payload.Type) + " payload"
	}
	return strings.ReplaceAll(r.Kind, "_", " ") + " tree"
}
