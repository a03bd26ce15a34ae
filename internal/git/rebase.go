package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// RebaseOnto replays the checked out branch onto ref
func (r *repoRunner) RebaseOnto(ctx context.Context, ref string) error {
	_, err := r.cmd.Run(ctx, "rebase", ref)
	if err != nil {
		return fmt.Errorf("rebase onto %s failed: %w", ref, err)
	}
	return nil
}

// IsRebaseInProgress checks if a rebase is currently in progress
func (r *repoRunner) IsRebaseInProgress(_ context.Context) bool {
	// rebase-merge is used by the merge backend, rebase-apply by the apply backend
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(r.GitDir(), dir)); err == nil {
			return true
		}
	}
	return false
}

// RebaseContinue continues an in-progress rebase
func (r *repoRunner) RebaseContinue(ctx context.Context) (RebaseResult, error) {
	if !r.IsRebaseInProgress(ctx) {
		return RebaseDone, zyraerrors.ErrRebaseNotInProgress
	}

	_, err := r.cmd.Run(ctx, "-c", "core.editor=true", "rebase", "--continue")
	if err != nil {
		// Check if rebase is still in progress (another conflict)
		if r.IsRebaseInProgress(ctx) {
			return RebaseConflict, nil
		}
		return RebaseConflict, fmt.Errorf("rebase continue failed: %w", err)
	}

	return RebaseDone, nil
}

// RebaseAbort aborts an in-progress rebase
func (r *repoRunner) RebaseAbort(ctx context.Context) error {
	if !r.IsRebaseInProgress(ctx) {
		return zyraerrors.ErrRebaseNotInProgress
	}
	_, err := r.cmd.Run(ctx, "rebase", "--abort")
	if err != nil {
		return fmt.Errorf("rebase abort failed: %w", err)
	}
	return nil
}
