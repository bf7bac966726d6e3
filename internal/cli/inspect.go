package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/pipeline"
	"github.com/matzehuels/treeflow/pkg/tree"
)

const (
	defaultPreviewDepth    = 3
	defaultPreviewChildren = 8
)

// inspectOpts holds the preview flags of the inspect command.
type inspectOpts struct {
	depth    int  // levels below the root to show
	children int  // children shown per node before eliding
	noTree   bool // print only the statistics
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var in inputFlags
	opts := inspectOpts{depth: defaultPreviewDepth, children: defaultPreviewChildren}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Preview the tree built from a table and print its statistics",
		Long: `Preview the tree built from a table and print its statistics.

Takes the same input flags as normalize. The tree is checked for sibling
name clashes, negative values, and parents smaller than their children.`,
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
			popts.Widget.Mode = ""
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), popts, opts)
		},
	}

	in.register(cmd)
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "levels below the root to preview")
	cmd.Flags().IntVar(&opts.children, "max-children", opts.children, "children shown per node")
	cmd.Flags().BoolVar(&opts.noTree, "no-tree", false, "print statistics only")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, popts pipeline.Options, opts inspectOpts) error {
	result, err := c.newRunner().Execute(ctx, popts)
	if err != nil {
		return err
	}

	if !opts.noTree {
		fmt.Fprintln(w, previewTree(result.Tree, opts.depth, opts.children))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, statsTable(popts.Source(), result))

	if err := tree.Validate(result.Tree); err != nil {
		printWarning("%v", err)
	}
	if result.Stats.Depth > opts.depth && !opts.noTree {
		printNextStep("Show deeper levels", fmt.Sprintf("%s inspect %s --depth %d", appName, popts.Input, result.Stats.Depth))
	}
	return nil
}

// previewTree renders n down to depth levels, showing at most maxChildren
// children per node.
func previewTree(n *tree.Node, depth, maxChildren int) *ltree.Tree {
	t := ltree.Root(nodeLabel(n)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(StyleDim).
		RootStyle(StyleTitle)
	if depth <= 0 {
		if len(n.Children) > 0 {
			t.Child(StyleDim.Render(fmt.Sprintf("… %d children", len(n.Children))))
		}
		return t
	}
	for i, c := range n.Children {
		if maxChildren > 0 && i == maxChildren {
			t.Child(StyleDim.Render(fmt.Sprintf("… %d more", len(n.Children)-maxChildren)))
			break
		}
		if c.IsLeaf() {
			t.Child(nodeLabel(c))
			continue
		}
		t.Child(previewTree(c, depth-1, maxChildren).RootStyle(lipgloss.NewStyle()))
	}
	return t
}

func nodeLabel(n *tree.Node) string {
	if !n.HasValue() {
		return n.Name
	}
	return n.Name + " " + StyleNumber.Render(formatValue(n.Size()))
}

func statsTable(source string, r *pipeline.Result) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	s := r.Stats
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Source", "Input", "Records", "Nodes", "Leaves", "Depth", "Total").
		Row(source, r.Kind,
			fmt.Sprint(s.Records), fmt.Sprint(s.Nodes), fmt.Sprint(s.Leaves),
			fmt.Sprint(s.Depth), formatValue(s.Total)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
