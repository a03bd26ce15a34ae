package actions

import (
	"zyra.dev/zyra/internal/runtime"
)

// Abort cancels an in-progress rebase
func Abort(ctx *runtime.Context) error {
	if err := ctx.Git.RebaseAbort(ctx.Context); err != nil {
		return err
	}
	ctx.Splog.Info("Rebase aborted.")
	return nil
}
