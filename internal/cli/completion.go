package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Scripts are written to
// the command's output so they can be captured in tests.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for treeflow's commands and flags.

The script covers normalize, inspect and serve together with their
builder flags (--path-sep, --parent-field, --stat, --mode, ...).

  bash:        source <(treeflow completion bash)
  zsh:         treeflow completion zsh > "${fpath[1]}/_treeflow"
  fish:        treeflow completion fish > ~/.config/fish/completions/treeflow.fish
  powershell:  treeflow completion powershell | Out-String | Invoke-Expression

Start a new shell after installing a script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
