package stack

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/actions/submit"
	"zyra.dev/zyra/internal/cli/helpers"
	"zyra.dev/zyra/internal/runtime"
)

// NewSubmitCmd creates the submit command
func NewSubmitCmd() *cobra.Command {
	var opts submit.Options

	cmd := &cobra.Command{
		Use:     "submit",
		Aliases: []string{"s"},
		Short:   "Push the current branch and create or update its pull request",
		Long: `Push the current branch and create or update its pull request.

The pull request targets the branch's parent. With --all every branch of
the stack is submitted, parents before children; branches without commits
are skipped together with their children.

Pushes use --force-with-lease unless --force or --no-push is given.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.RunWithGitHub(cmd, func(ctx *runtime.Context) error {
				return submit.Submit(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Submit every branch of the current stack.")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Force push instead of --force-with-lease.")
	cmd.Flags().BoolVar(&opts.NoPush, "no-push", false, "Only update pull requests, do not push.")
	cmd.MarkFlagsMutuallyExclusive("force", "no-push")

	return cmd
}
