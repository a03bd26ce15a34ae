package actions

import (
	"errors"
	"fmt"

	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// position is where the working tree sits relative to the stacks
type position struct {
	stack    *engine.Stack
	branch   string
	detached bool
}

// currentPosition resolves the current stack and branch. On a raw commit the
// recorded detached context is used instead of the checked out branch.
func currentPosition(ctx *runtime.Context) (position, error) {
	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		if !errors.Is(err, zyraerrors.ErrNotOnBranch) || !ctx.Store.IsDetached() {
			return position{}, err
		}
		dc := ctx.Store.DetachedContext()
		stack, err := ctx.Store.GetStack(dc.StackName)
		if err != nil {
			return position{}, err
		}
		return position{stack: stack, branch: dc.BranchName, detached: true}, nil
	}

	stack, err := ctx.Store.StackForBranch(branch)
	if err != nil {
		return position{}, err
	}
	return position{stack: stack, branch: branch}, nil
}

// Goto moves to a stack's root, a branch of the current stack, or a raw commit.
// A branch tracked by another stack is refused rather than detached onto.
func Goto(ctx *runtime.Context, target string) error {
	if stack, err := ctx.Store.GetStack(target); err == nil {
		root, err := stack.Root()
		if err != nil {
			return err
		}
		return switchTo(ctx, root.Name)
	}

	pos, posErr := currentPosition(ctx)
	if posErr == nil && pos.stack.HasBranch(target) {
		return switchTo(ctx, target)
	}

	if owner, err := ctx.Store.StackForBranch(target); err == nil {
		return fmt.Errorf("%w: %s belongs to stack %s, goto %s first", zyraerrors.ErrTargetNotFound, target, owner.Name, owner.Name)
	}

	if ctx.Git.IsCommit(ctx.Context, target) {
		if posErr != nil {
			return fmt.Errorf("cannot detach at %s: %w", target, posErr)
		}
		if err := ctx.Git.CheckoutDetached(ctx.Context, target); err != nil {
			return err
		}
		ctx.Store.SetDetached(pos.stack.Name, pos.branch)
		if err := ctx.Store.Save(); err != nil {
			return err
		}
		ctx.Splog.Info("Detached at %s (from %s).", tui.ColorHash(target), tui.ColorBranchName(pos.branch, false))
		return nil
	}

	return fmt.Errorf("%w: %s is not a stack, a branch of the current stack, or a commit", zyraerrors.ErrTargetNotFound, target)
}

// Next moves one branch up the stack
func Next(ctx *runtime.Context) error {
	pos, err := currentPosition(ctx)
	if err != nil {
		return err
	}

	if pos.detached {
		idx := pos.stack.IndexOf(pos.branch)
		if idx < 0 {
			return zyraerrors.NewStateConsistencyError(pos.stack.Name, fmt.Sprintf("detached branch %s is not part of the stack", pos.branch))
		}
		if idx+1 >= len(pos.stack.Branches) {
			return fmt.Errorf("%w: %s is the last branch of %s", zyraerrors.ErrNoNextBranch, pos.branch, pos.stack.Name)
		}
		return switchTo(ctx, pos.stack.Branches[idx+1].Name)
	}

	children := pos.stack.ChildNames(pos.branch)
	switch len(children) {
	case 0:
		return fmt.Errorf("%w: %s has no children", zyraerrors.ErrNoNextBranch, pos.branch)
	case 1:
		return switchTo(ctx, children[0])
	}

	choice, err := ctx.Prompter.Select(fmt.Sprintf("%s has multiple children. Select one:", pos.branch), children, 0)
	if err != nil {
		return err
	}
	return switchTo(ctx, choice)
}

// Prev moves one branch down the stack
func Prev(ctx *runtime.Context) error {
	pos, err := currentPosition(ctx)
	if err != nil {
		return err
	}

	if pos.detached {
		idx := pos.stack.IndexOf(pos.branch)
		if idx < 0 {
			return zyraerrors.NewStateConsistencyError(pos.stack.Name, fmt.Sprintf("detached branch %s is not part of the stack", pos.branch))
		}
		if idx == 0 {
			return fmt.Errorf("%w: %s is the first branch of %s", zyraerrors.ErrNoPreviousBranch, pos.branch, pos.stack.Name)
		}
		return switchTo(ctx, pos.stack.Branches[idx-1].Name)
	}

	branch, err := pos.stack.GetBranch(pos.branch)
	if err != nil {
		return err
	}
	if branch.IsRoot() {
		return fmt.Errorf("%w: %s is the root of %s", zyraerrors.ErrNoPreviousBranch, pos.branch, pos.stack.Name)
	}
	if !pos.stack.HasBranch(branch.Parent) {
		return fmt.Errorf("%w: parent %s of %s is not tracked", zyraerrors.ErrNoPreviousBranch, branch.Parent, pos.branch)
	}
	return switchTo(ctx, branch.Parent)
}

// switchTo checks out a tracked branch, records its tip and leaves detached state
func switchTo(ctx *runtime.Context, branchName string) error {
	if err := ctx.Git.CheckoutBranch(ctx.Context, branchName); err != nil {
		return err
	}
	hash, err := ctx.Git.HeadRevision(ctx.Context)
	if err != nil {
		return err
	}

	ctx.Store.ClearDetached()
	if err := ctx.Store.SetCommitHash(ctx.Context, branchName, hash); err != nil {
		return err
	}
	if err := ctx.Store.Save(); err != nil {
		return err
	}

	ctx.Splog.Info("Switched to %s.", tui.ColorBranchName(branchName, true))
	return nil
}
