package actions

import (
	"fmt"

	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// RestackOptions contains options for the restack command
type RestackOptions struct {
	// All rebases every non-root branch instead of starting at the current one
	All bool
}

// Restack rebases each branch of the current stack onto its parent, in stored
// order. The first conflict aborts that rebase and stops the pass; hashes
// recorded before the failure are not persisted.
func Restack(ctx *runtime.Context, opts RestackOptions) error {
	splog := ctx.Splog

	original, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	stack, err := ctx.Store.StackForBranch(original)
	if err != nil {
		return err
	}

	start := 1
	if !opts.All {
		start = stack.IndexOf(original)
	}

	branches := stack.Snapshot()
	if start >= len(branches) {
		splog.Info("Nothing to restack.")
		return nil
	}

	restacked := 0
	for _, branch := range branches[start:] {
		if branch.IsRoot() {
			continue
		}

		if err := ctx.Git.CheckoutBranch(ctx.Context, branch.Name); err != nil {
			restoreBranch(ctx, original)
			return err
		}

		splog.Verbose("rebasing %s onto %s", branch.Name, branch.Parent)
		if err := ctx.Git.RebaseOnto(ctx.Context, branch.Parent); err != nil {
			if abortErr := ctx.Git.RebaseAbort(ctx.Context); abortErr != nil {
				splog.Debug("rebase abort failed: %v", abortErr)
			}
			restoreBranch(ctx, original)
			return zyraerrors.NewRebaseConflictError(branch.Name, branch.Parent, err)
		}

		hash, err := ctx.Git.HeadRevision(ctx.Context)
		if err != nil {
			restoreBranch(ctx, original)
			return err
		}
		if err := stack.SetCommitHash(branch.Name, hash, ctx.Store.Now()); err != nil {
			restoreBranch(ctx, original)
			return err
		}

		splog.Info("Restacked %s on %s.",
			tui.ColorBranchName(branch.Name, branch.Name == original),
			tui.ColorBranchName(branch.Parent, false))
		restacked++
	}

	if err := ctx.Store.Save(); err != nil {
		restoreBranch(ctx, original)
		return err
	}
	if err := ctx.Git.CheckoutBranch(ctx.Context, original); err != nil {
		return fmt.Errorf("restacked, but failed to return to %s: %w", original, err)
	}

	if restacked == 0 {
		splog.Info("Nothing to restack.")
	}
	return nil
}

// restoreBranch returns to the branch a command started on. Failures are
// only logged since the caller is already reporting an error.
func restoreBranch(ctx *runtime.Context, branchName string) {
	if err := ctx.Git.CheckoutBranch(ctx.Context, branchName); err != nil {
		ctx.Splog.Debug("failed to restore %s: %v", branchName, err)
	}
}
