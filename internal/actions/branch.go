package actions

import (
	"fmt"

	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
	"zyra.dev/zyra/internal/utils"
)

// BranchOptions contains options for the branch command
type BranchOptions struct {
	Name string
	// From names a branch of the current stack to branch off instead of the current one
	From string
}

// CreateBranch adds a branch on top of the current branch (or From) and switches to it
func CreateBranch(ctx *runtime.Context, opts BranchOptions) error {
	if err := utils.ValidateBranchName(opts.Name); err != nil {
		return err
	}

	stack, err := ctx.Store.CurrentStack(ctx.Context)
	if err != nil {
		return err
	}
	if ctx.Store.HasBranch(opts.Name) || ctx.Store.HasStack(opts.Name) {
		return fmt.Errorf("%w: %s", zyraerrors.ErrBranchExists, opts.Name)
	}

	if opts.From != "" {
		if !stack.HasBranch(opts.From) {
			return fmt.Errorf("%w in stack %s", zyraerrors.NewBranchNotFoundError(opts.From), stack.Name)
		}
		if err := ctx.Git.CheckoutBranch(ctx.Context, opts.From); err != nil {
			return err
		}
	}

	parent, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return err
	}
	head, err := ctx.Git.HeadRevision(ctx.Context)
	if err != nil {
		return err
	}

	stackName := stack.Name
	if err := ctx.Store.AddBranch(stackName, engine.NewBranch(opts.Name, head, parent, ctx.Store.Now())); err != nil {
		return err
	}
	if err := ctx.Store.Save(); err != nil {
		return err
	}

	if err := ctx.Git.CreateBranch(ctx.Context, opts.Name); err != nil {
		return err
	}
	if err := ctx.Git.SetUpstream(ctx.Context, opts.Name); err != nil {
		ctx.Splog.Debug("no upstream for %s: %v", opts.Name, err)
	}

	stack, err = ctx.Store.GetStack(stackName)
	if err != nil {
		return err
	}
	ctx.Splog.Info("Created %s on %s.", tui.ColorBranchName(opts.Name, true), tui.ColorBranchName(parent, false))
	ctx.Splog.Info("%s", tui.RenderSimple(stack))
	return nil
}
