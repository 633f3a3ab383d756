package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// completionGenerators maps each supported shell to the generator that
// emits its script.
var completionGenerators = map[string]func(io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletion(w) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletion(w) },
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a completion script for your shell.

Load it for the current session:

  source <(cyclonedx completion bash)
  cyclonedx completion fish | source

Or install it permanently:

  cyclonedx completion bash > /etc/bash_completion.d/cyclonedx
  cyclonedx completion zsh > "${fpath[1]}/_cyclonedx"
  cyclonedx completion fish > ~/.config/fish/completions/cyclonedx.fish

PowerShell users can add the output of "cyclonedx completion powershell"
to their profile.
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, ok := completionGenerators[args[0]]
		if !ok {
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
		return gen(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
