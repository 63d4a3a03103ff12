package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/secretgrep/internal/config"
)

// NewCompletionCommand creates the completion command for generating shell completions.
func NewCompletionCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Emit a completion script for your shell on stdout. Source it directly for
the current session, or write it to your shell's completion directory to
have it loaded automatically.

Bash (current session, or drop into bash_completion.d):
  $ source <(secretgrep completion bash)
  $ secretgrep completion bash > /etc/bash_completion.d/secretgrep

Zsh (requires compinit; write into a directory on $fpath):
  $ secretgrep completion zsh > "${fpath[1]}/_secretgrep"

Fish:
  $ secretgrep completion fish > ~/.config/fish/completions/secretgrep.fish

PowerShell (add to your profile to persist):
  PS> secretgrep completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
