package navigation

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/cli/helpers"
	"zyra.dev/zyra/internal/runtime"
)

// NewGotoCmd creates the goto command
func NewGotoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goto <stack|branch|commit>",
		Aliases: []string{"g"},
		Short:   "Switch to a stack, a branch of the current stack, or a commit",
		Long: `Switch to a stack, a branch of the current stack, or a commit.

A stack name checks out the stack's root branch. A branch of the current
stack is checked out directly. Anything else that resolves to a commit is
checked out detached; zyra remembers which branch you came from so that
next and prev keep working.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteTracked,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.Goto(ctx, args[0])
			})
		},
	}
	return cmd
}
