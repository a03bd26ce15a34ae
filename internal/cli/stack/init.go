package stack

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/cli/helpers"
	"zyra.dev/zyra/internal/runtime"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:     "init <name>",
		Aliases: []string{"i"},
		Short:   "Start a new stack at the current commit",
		Long: `Start a new stack at the current commit.

Creates a branch named after the stack and makes it the stack's root. The
base defaults to the trunk from .git/.zyra_config, or main.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.Init(ctx, actions.InitOptions{Name: args[0], Base: base})
			})
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Branch the stack is based on.")
	_ = cmd.RegisterFlagCompletionFunc("base", helpers.CompleteBranches)

	return cmd
}
