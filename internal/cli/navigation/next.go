package navigation

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/cli/helpers"
)

// NewNextCmd creates the next command
func NewNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "next",
		Aliases: []string{"n"},
		Short:   "Switch to the child of the current branch",
		Long: `Switch to the child of the current branch.

If the branch has several children you are asked to pick one. On a
detached commit, next moves to the branch stored after the one you
detached from.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.Next)
		},
	}
}

// NewPrevCmd creates the prev command
func NewPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "prev",
		Aliases:      []string{"p"},
		Short:        "Switch to the parent of the current branch",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.Prev)
		},
	}
}
