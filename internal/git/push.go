package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// Fetch updates every remote and prunes deleted remote branches
func (r *repoRunner) Fetch(ctx context.Context) error {
	_, err := r.cmd.Run(ctx, "fetch", "--all", "--prune")
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	return nil
}

// PushBranch pushes a branch to remote and sets it as upstream.
// PushForceWithLease is the safe default; PushForce overwrites the remote.
func (r *repoRunner) PushBranch(ctx context.Context, branchName, remote string, mode PushMode) error {
	args := []string{"push", "-u", remote}

	switch mode {
	case PushForce:
		args = append(args, "--force")
	case PushForceWithLease:
		args = append(args, "--force-with-lease")
	}

	args = append(args, branchName)

	_, err := r.cmd.Run(ctx, args...)
	if err != nil {
		var cmdErr *zyraerrors.GitCommandError
		if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, "stale info") {
			return fmt.Errorf("force-with-lease push of %s failed due to external changes to the remote branch; fetch and restack, or use --force: %w", branchName, ErrStaleRemoteInfo)
		}
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}

	return nil
}
