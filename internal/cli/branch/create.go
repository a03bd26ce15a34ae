package branch

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/cli/helpers"
	"zyra.dev/zyra/internal/runtime"
)

// NewBranchCmd creates the branch command
func NewBranchCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:     "branch <name>",
		Aliases: []string{"b"},
		Short:   "Create a branch on top of the current one",
		Long: `Create a branch on top of the current one.

The new branch joins the current stack with the current branch as its
parent. --from picks another branch of the stack as the parent.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.CreateBranch(ctx, actions.BranchOptions{Name: args[0], From: from})
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Branch of the current stack to branch off.")
	_ = cmd.RegisterFlagCompletionFunc("from", helpers.CompleteTracked)

	return cmd
}
