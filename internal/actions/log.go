package actions

import (
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// LogOptions contains options for the log command
type LogOptions struct {
	Graph  bool
	Format tui.OutputFormat
}

// Log prints the current stack
func Log(ctx *runtime.Context, opts LogOptions) error {
	pos, err := currentPosition(ctx)
	if err != nil {
		return err
	}

	switch opts.Format {
	case tui.FormatJSON, tui.FormatYAML:
		out, err := tui.MarshalStack(pos.stack, opts.Format)
		if err != nil {
			return err
		}
		ctx.Splog.Page(out)
		return nil
	}

	if opts.Graph {
		ctx.Splog.Page(tui.RenderStackGraph(pos.stack, pos.branch))
	} else {
		ctx.Splog.Page(tui.RenderStackList(pos.stack, pos.branch))
	}
	if pos.detached {
		ctx.Splog.Tip("HEAD is detached; zyra next/prev return to the stack.")
	}
	return nil
}
