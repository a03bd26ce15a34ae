package branch

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/cli/helpers"
)

// NewContinueCmd creates the continue command
func NewContinueCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "continue",
		Short:        "Continue a rebase after resolving conflicts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.Continue)
		},
	}
}

// NewAbortCmd creates the abort command
func NewAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "abort",
		Short:        "Abort the rebase in progress",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, actions.Abort)
		},
	}
}
