package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/trustpane/pkg/layout"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for trustpane.

Bash:
  $ source <(trustpane completion bash)

Zsh:
  $ trustpane completion zsh > "${fpath[1]}/_trustpane"

Fish:
  $ trustpane completion fish > ~/.config/fish/completions/trustpane.fish

PowerShell:
  PS> trustpane completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
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
}

// completeKinds offers layout kind names for --kind flags.
func completeKinds(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(layout.Kinds))
	for i, k := range layout.Kinds {
		names[i] = k.String()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
