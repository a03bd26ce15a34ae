package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/cli/branch"
	"zyra.dev/zyra/internal/cli/navigation"
	"zyra.dev/zyra/internal/cli/stack"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zyra",
		Short: "zyra manages stacks of dependent branches and their pull requests",
		Long: `zyra manages stacks of dependent branches and their pull requests.

A stack is a tree of branches rooted at a branch named after the stack.
Each branch keeps a link to its parent; zyra rebases children onto their
parents and opens one pull request per branch against its parent.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Print each step as it happens.")

	rootCmd.AddCommand(
		stack.NewInitCmd(),
		branch.NewBranchCmd(),
		navigation.NewGotoCmd(),
		navigation.NewNextCmd(),
		navigation.NewPrevCmd(),
		stack.NewRestackCmd(),
		stack.NewSubmitCmd(),
		stack.NewLogCmd(),
		branch.NewContinueCmd(),
		branch.NewAbortCmd(),
	)

	return rootCmd
}
