package git

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-git/go-git/v5/plumbing"
)

// HeadRevision returns the commit HEAD points at
func (r *repoRunner) HeadRevision(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return r.Revision(ctx, "HEAD")
	}
	return head.Hash().String(), nil
}

// Revision resolves a ref, branch name or hash prefix to a full commit hash
func (r *repoRunner) Revision(ctx context.Context, ref string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return hash.String(), nil
	}
	out, cliErr := r.cmd.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if cliErr != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return out, nil
}

// IsCommit reports whether ref names a commit object in the repository
func (r *repoRunner) IsCommit(ctx context.Context, ref string) bool {
	if ref == "" {
		return false
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		if _, err := r.repo.CommitObject(*hash); err == nil {
			return true
		}
	}
	_, err = r.cmd.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}

// HasCommitsBetween reports whether head has commits that base does not
func (r *repoRunner) HasCommitsBetween(ctx context.Context, base, head string) (bool, error) {
	out, err := r.cmd.Run(ctx, "rev-list", "--count", base+".."+head)
	if err != nil {
		return false, fmt.Errorf("failed to count commits between %s and %s: %w", base, head, err)
	}
	count, err := strconv.Atoi(out)
	if err != nil {
		return false, fmt.Errorf("failed to parse commit count %q: %w", out, err)
	}
	return count > 0, nil
}
