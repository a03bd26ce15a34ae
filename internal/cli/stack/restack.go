package stack

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/actions/submit"
	"zyra.dev/zyra/internal/cli/helpers"
	"zyra.dev/zyra/internal/runtime"
)

// NewRestackCmd creates the restack command
func NewRestackCmd() *cobra.Command {
	var (
		all        bool
		thenSubmit bool
	)

	cmd := &cobra.Command{
		Use:     "restack",
		Aliases: []string{"r"},
		Short:   "Rebase each branch of the current stack onto its parent",
		Long: `Rebase each branch of the current stack onto its parent.

Branches are processed in the order they were added, starting at the
current branch (or at the first branch after the root with --all). The
first conflict aborts that rebase and stops; nothing is saved in that case.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fn := func(ctx *runtime.Context) error {
				if err := actions.Restack(ctx, actions.RestackOptions{All: all}); err != nil {
					return err
				}
				if !thenSubmit {
					return nil
				}
				return submit.Submit(ctx, submit.Options{All: true})
			}
			if thenSubmit {
				return helpers.RunWithGitHub(cmd, fn)
			}
			return helpers.Run(cmd, fn)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Restack every branch of the stack.")
	cmd.Flags().BoolVar(&thenSubmit, "submit", false, "Submit the whole stack after a successful restack.")

	return cmd
}
