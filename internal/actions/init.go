package actions

import (
	"fmt"
	"slices"

	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
	"zyra.dev/zyra/internal/utils"
)

// InitOptions contains options for the init command
type InitOptions struct {
	Name string
	// Base defaults to the configured trunk
	Base string
}

// Init creates a stack whose root branch carries the stack's name, records the
// current HEAD as its tip and switches to it.
func Init(ctx *runtime.Context, opts InitOptions) error {
	if err := utils.ValidateBranchName(opts.Name); err != nil {
		return err
	}
	if ctx.Store.HasStack(opts.Name) {
		return fmt.Errorf("%w: %s", zyraerrors.ErrStackExists, opts.Name)
	}
	if ctx.Store.HasBranch(opts.Name) {
		return fmt.Errorf("%w: %s", zyraerrors.ErrBranchExists, opts.Name)
	}

	base := opts.Base
	if base == "" {
		base = ctx.Config.TrunkName()
	}

	locals, err := ctx.Git.BranchNames(true)
	if err != nil {
		return err
	}
	if !slices.Contains(locals, base) {
		return fmt.Errorf("base %w", zyraerrors.NewBranchNotFoundError(base))
	}
	if slices.Contains(locals, opts.Name) {
		return fmt.Errorf("%w: %s exists in git", zyraerrors.ErrBranchExists, opts.Name)
	}

	head, err := ctx.Git.HeadRevision(ctx.Context)
	if err != nil {
		return err
	}

	stack := engine.NewStack(opts.Name, base, head, ctx.Store.Now())
	if err := ctx.Store.AddStack(stack); err != nil {
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

	ctx.Splog.Info("Created stack %s based on %s.", tui.ColorStackName(opts.Name), tui.ColorBranchName(base, false))
	return nil
}
