package helpers

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/engine"
	"zyra.dev/zyra/internal/git"
)

// CompleteBranches is a helper for cobra.ValidArgsFunction and RegisterFlagCompletionFunc
// that returns all local branch names in the repository.
func CompleteBranches(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	runner, err := git.OpenRepo("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := runner.BranchNames(true)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}

// CompleteTracked returns every stack and tracked branch name
func CompleteTracked(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	runner, err := git.OpenRepo("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	store, err := engine.Load(engine.MetadataPath(runner.GitDir()), runner)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, stack := range store.Stacks() {
		for _, b := range stack.Branches {
			names = append(names, b.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
