package cmd

import (
	"github.com/spf13/cobra"
)

// NewCompletionCommand creates the shell completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  $ source <(devtasks completion bash)

Zsh:

  $ devtasks completion zsh > "${fpath[1]}/_devtasks"

Fish:

  $ devtasks completion fish | source
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			default:
				return cmd.Root().GenFishCompletion(w, true)
			}
		},
	}
}
