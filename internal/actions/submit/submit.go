package submit

import (
	"errors"
	"fmt"
	"slices"

	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/git"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// Options contains options for the submit command
type Options struct {
	// All submits every non-root branch of the current stack
	All bool
	// Force pushes with --force instead of --force-with-lease
	Force bool
	// NoPush skips pushing and only reconciles pull requests
	NoPush bool
}

// Submit fetches, then pushes and reconciles either the current branch or
// the whole current stack
func Submit(ctx *runtime.Context, opts Options) error {
	if ctx.GitHubClient == nil || ctx.Repo == nil {
		return fmt.Errorf("submit needs a GitHub client and repository")
	}

	ctx.Splog.Verbose("fetching from remotes")
	if err := ctx.Git.Fetch(ctx.Context); err != nil {
		return err
	}

	if opts.All {
		return submitStack(ctx, opts)
	}
	return submitBranch(ctx, opts)
}

func submitBranch(ctx *runtime.Context, opts Options) error {
	branchName, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	stack, err := ctx.Store.StackForBranch(branchName)
	if err != nil {
		return err
	}
	if err := refreshCommitHash(ctx, branchName); err != nil {
		return err
	}

	branch, err := stack.GetBranch(branchName)
	if err != nil {
		return err
	}
	if branch.IsRoot() {
		return fmt.Errorf("%s is the root of stack %s and has no parent to open a PR against", branchName, stack.Name)
	}

	hasCommits, err := ctx.Git.HasCommitsBetween(ctx.Context, branch.Parent, branchName)
	if err != nil {
		return err
	}
	if !hasCommits {
		return fmt.Errorf("%w: %s has no commits ahead of %s", zyraerrors.ErrNothingToSubmit, branchName, branch.Parent)
	}

	parent, err := stack.GetBranch(branch.Parent)
	if err != nil {
		return zyraerrors.NewStateConsistencyError(stack.Name, fmt.Sprintf("parent %s of %s is not tracked", branch.Parent, branchName))
	}
	if parent.Status == engine.StatusMerged {
		return fmt.Errorf("%w: %s was merged; sync %s with its new base before submitting", zyraerrors.ErrParentMerged, parent.Name, branchName)
	}

	if err := push(ctx, opts, branchName); err != nil {
		return err
	}
	return reconcile(ctx, stack.Name, branchName)
}

// submitStack walks the stack parent-first with an explicit LIFO worklist.
// Children are pushed in reverse stored order so siblings pop in stored
// order. A branch without commits is skipped along with its subtree.
func submitStack(ctx *runtime.Context, opts Options) error {
	original, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	stack, err := ctx.Store.StackForBranch(original)
	if err != nil {
		return err
	}
	stackName := stack.Name

	root, err := stack.Root()
	if err != nil {
		return err
	}
	worklist := reversed(stack.Adjacency()[root.Name])
	if len(worklist) == 0 {
		ctx.Splog.Info("Stack %s has no branches to submit.", tui.ColorStackName(stackName))
		return nil
	}

	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if err := submitStackBranch(ctx, opts, stackName, name, &worklist); err != nil {
			restoreBranch(ctx, original)
			return err
		}
	}

	if err := ctx.Git.CheckoutBranch(ctx.Context, original); err != nil {
		return fmt.Errorf("submitted, but failed to return to %s: %w", original, err)
	}
	ctx.Splog.Info("Submitted stack %s.", tui.ColorStackName(stackName))
	return nil
}

func submitStackBranch(ctx *runtime.Context, opts Options, stackName, name string, worklist *[]string) error {
	stack, err := ctx.Store.GetStack(stackName)
	if err != nil {
		return err
	}
	branch, err := stack.GetBranch(name)
	if err != nil {
		return err
	}

	hasCommits, err := ctx.Git.HasCommitsBetween(ctx.Context, branch.Parent, name)
	if err != nil {
		return err
	}
	if !hasCommits {
		ctx.Splog.Info("Skipping %s: no commits ahead of %s.", tui.ColorBranchName(name, false), tui.ColorBranchName(branch.Parent, false))
		return nil
	}

	if err := ctx.Git.CheckoutBranch(ctx.Context, name); err != nil {
		return err
	}
	if err := refreshCommitHash(ctx, name); err != nil {
		return err
	}
	if err := push(ctx, opts, name); err != nil {
		return err
	}

	if err := ctx.Store.Reload(); err != nil {
		return err
	}
	if err := reconcile(ctx, stackName, name); err != nil {
		return err
	}

	stack, err = ctx.Store.GetStack(stackName)
	if err != nil {
		return err
	}
	*worklist = append(*worklist, reversed(stack.Adjacency()[name])...)
	return nil
}

// refreshCommitHash records HEAD as the tip of the checked out branch and saves
func refreshCommitHash(ctx *runtime.Context, branchName string) error {
	hash, err := ctx.Git.HeadRevision(ctx.Context)
	if err != nil {
		return err
	}
	if err := ctx.Store.SetCommitHash(ctx.Context, branchName, hash); err != nil {
		return err
	}
	return ctx.Store.Save()
}

func push(ctx *runtime.Context, opts Options, branchName string) error {
	if opts.NoPush {
		ctx.Splog.Verbose("not pushing %s", branchName)
		return nil
	}

	mode := git.PushForceWithLease
	if opts.Force {
		mode = git.PushForce
	}

	ctx.Splog.Info("Pushing %s to %s...", tui.ColorBranchName(branchName, false), ctx.Remote)
	if err := ctx.Git.PushBranch(ctx.Context, branchName, ctx.Remote, mode); err != nil {
		if errors.Is(err, git.ErrStaleRemoteInfo) {
			return fmt.Errorf("push of %s was rejected because %s changed on the remote; fetch and check it, or pass --force: %w", branchName, branchName, err)
		}
		return err
	}
	return nil
}

func restoreBranch(ctx *runtime.Context, branchName string) {
	if err := ctx.Git.CheckoutBranch(ctx.Context, branchName); err != nil {
		ctx.Splog.Debug("failed to restore %s: %v", branchName, err)
	}
}

func reversed(names []string) []string {
	out := slices.Clone(names)
	slices.Reverse(out)
	return out
}
