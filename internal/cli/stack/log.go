package stack

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/cli/helpers"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// NewLogCmd creates the log command
func NewLogCmd() *cobra.Command {
	var (
		graph  bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"l"},
		Short:   "Show the current stack",
		Long: `Show the current stack.

By default prints the path from the stack's root to the current branch.
--graph draws every branch as a tree. --format json or yaml prints every
branch with its status and short commit hash.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := tui.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.Log(ctx, actions.LogOptions{Graph: graph, Format: outputFormat})
			})
		},
	}

	cmd.Flags().BoolVarP(&graph, "graph", "g", false, "Draw the whole stack as a tree.")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml.")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{string(tui.FormatText), string(tui.FormatJSON), string(tui.FormatYAML)},
		cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
