package actions

import (
	"fmt"

	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/git"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// Continue resumes an interrupted rebase and records the branch's new tip
func Continue(ctx *runtime.Context) error {
	if !ctx.Git.IsRebaseInProgress(ctx.Context) {
		return zyraerrors.ErrRebaseNotInProgress
	}

	result, err := ctx.Git.RebaseContinue(ctx.Context)
	if err != nil {
		return err
	}
	if result == git.RebaseConflict {
		return fmt.Errorf("%w: resolve the remaining conflicts, then run zyra continue", zyraerrors.ErrRebaseConflict)
	}

	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.Store.HasBranch(branch) {
		hash, err := ctx.Git.HeadRevision(ctx.Context)
		if err != nil {
			return err
		}
		if err := ctx.Store.SetCommitHash(ctx.Context, branch, hash); err != nil {
			return err
		}
		if err := ctx.Store.Save(); err != nil {
			return err
		}
	}

	ctx.Splog.Info("Rebase of %s completed.", tui.ColorBranchName(branch, true))
	return nil
}
