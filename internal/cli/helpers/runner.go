// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"github.com/spf13/cobra"

	"zyra.dev/zyra/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	return run(cmd, runtime.Options{}, fn)
}

// RunWithGitHub is Run for commands that push branches or talk to GitHub
func RunWithGitHub(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	return run(cmd, runtime.Options{NeedsGitHub: true}, fn)
}

func run(cmd *cobra.Command, opts runtime.Options, fn func(ctx *runtime.Context) error) error {
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")

	ctx, err := runtime.GetContext(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = ctx.Splog.Close()
	}()

	ctx.Splog.Debug("running %s", cmd.CommandPath())
	return fn(ctx)
}
