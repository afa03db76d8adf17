package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// shellCmd prints a completion script for the named shell to stdout, to be
// sourced from the user's rc file. Grounded in the teacher's own
// shell.go/embed.go pair, rebuilt on cobra's completion generators rather
// than embedded, hand-maintained scripts (the teacher's "suggest-file.bash"/
// ".zsh" targets aren't present in this tool's domain).
var shellCmd = &cobra.Command{
	Use:       "shell [bash|zsh]",
	Short:     "Print a shell completion script",
	Long:      "Print a completion script for the named shell. Source it in your rc file.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"bash", "zsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		default:
			return fmt.Errorf("unknown shell %q (supported: bash, zsh)", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
