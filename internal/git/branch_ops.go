package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// CurrentBranch returns the checked out branch, or ErrNotOnBranch while detached
func (r *repoRunner) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("failed to get HEAD: %w", err)
		}
		// Unborn branch: HEAD points at a ref with no commits yet
		name, symErr := r.cmd.Run(ctx, "symbolic-ref", "--short", "HEAD")
		if symErr != nil {
			return "", zyraerrors.ErrNotOnBranch
		}
		return name, nil
	}

	if !head.Name().IsBranch() {
		return "", zyraerrors.ErrNotOnBranch
	}
	return head.Name().Short(), nil
}

// BranchNames returns local branch names, plus remote-tracking names unless localOnly
func (r *repoRunner) BranchNames(localOnly bool) ([]string, error) {
	branches, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to get branches: %w", err)
	}

	var names []string
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsBranch() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	if !localOnly {
		refs, err := r.repo.References()
		if err != nil {
			return nil, fmt.Errorf("failed to get references: %w", err)
		}
		err = refs.ForEach(func(ref *plumbing.Reference) error {
			if ref.Name().IsRemote() && !strings.HasSuffix(ref.Name().String(), "/HEAD") {
				names = append(names, ref.Name().Short())
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to iterate references: %w", err)
		}
	}

	sort.Strings(names)
	return names, nil
}

// CheckoutBranch switches to an existing branch
func (r *repoRunner) CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "switch", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CreateBranch creates a branch at HEAD and switches to it
func (r *repoRunner) CreateBranch(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "switch", "-c", branchName)
	if err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CheckoutDetached checks out a revision in detached HEAD state
func (r *repoRunner) CheckoutDetached(ctx context.Context, rev string) error {
	_, err := r.cmd.Run(ctx, "checkout", "--detach", rev)
	if err != nil {
		return fmt.Errorf("failed to checkout %s in detached state: %w", rev, err)
	}
	return nil
}

// SetUpstream points the checked out branch's upstream at branchName
func (r *repoRunner) SetUpstream(ctx context.Context, branchName string) error {
	_, err := r.cmd.Run(ctx, "branch", "--set-upstream-to", branchName)
	if err != nil {
		return fmt.Errorf("failed to set upstream to %s: %w", branchName, err)
	}
	return nil
}
