package actions_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/actions"
	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
	"zyra.dev/zyra/testhelpers"
)

func captureOutput(t *testing.T, ctx *runtime.Context) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Out: &out, Err: &bytes.Buffer{}})
	require.NoError(t, err)
	ctx.Splog = splog
	return &out
}

func TestInit(t *testing.T) {
	t.Run("creates a stack rooted at HEAD and switches to it", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		head := fake.Head

		require.NoError(t, actions.Init(ctx, actions.InitOptions{Name: "feat"}))
		require.Equal(t, "feat", fake.Current)
		require.Equal(t, []string{"create feat", "upstream feat"}, fake.Calls)

		stack, err := reload(t, fake).GetStack("feat")
		require.NoError(t, err)
		require.Equal(t, "main", stack.BaseBranch)
		root, err := stack.Root()
		require.NoError(t, err)
		require.Equal(t, "feat", root.Name)
		require.Equal(t, head, root.CommitHash)
		require.Equal(t, engine.NoPR, root.PRID)
	})

	t.Run("uses the configured trunk", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		fake.AddBranch("develop")
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		trunk := "develop"
		ctx.Config.Trunk = &trunk

		require.NoError(t, actions.Init(ctx, actions.InitOptions{Name: "feat"}))
		stack, err := ctx.Store.GetStack("feat")
		require.NoError(t, err)
		require.Equal(t, "develop", stack.BaseBranch)
	})

	t.Run("rejects an unknown base", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)

		err := actions.Init(ctx, actions.InitOptions{Name: "feat", Base: "nope"})
		require.ErrorIs(t, err, zyraerrors.ErrBranchNotFound)
		require.False(t, ctx.Store.HasStack("feat"))
	})

	t.Run("rejects names already in use", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat")

		require.ErrorIs(t, actions.Init(ctx, actions.InitOptions{Name: "feat"}), zyraerrors.ErrStackExists)
		require.ErrorIs(t, actions.Init(ctx, actions.InitOptions{Name: "api"}), zyraerrors.ErrBranchExists)

		fake.AddBranch("loose")
		require.ErrorIs(t, actions.Init(ctx, actions.InitOptions{Name: "loose"}), zyraerrors.ErrBranchExists)
	})
}

func TestCreateBranch(t *testing.T) {
	t.Run("stacks on the current branch", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat")
		fake.Checkout("api")
		out := captureOutput(t, ctx)

		require.NoError(t, actions.CreateBranch(ctx, actions.BranchOptions{Name: "ui"}))
		require.Equal(t, "ui", fake.Current)
		require.Contains(t, out.String(), "feat ➜ api ➜ ui")

		stack, err := reload(t, fake).GetStack("feat")
		require.NoError(t, err)
		ui, err := stack.GetBranch("ui")
		require.NoError(t, err)
		require.Equal(t, "api", ui.Parent)
		require.Equal(t, fake.Branches["api"], ui.CommitHash)
	})

	t.Run("from switches to another branch of the stack first", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat")
		fake.Checkout("api")

		require.NoError(t, actions.CreateBranch(ctx, actions.BranchOptions{Name: "docs", From: "feat"}))
		require.Equal(t, []string{"checkout feat", "create docs", "upstream docs"}, fake.Calls)

		stack, err := ctx.Store.GetStack("feat")
		require.NoError(t, err)
		docs, err := stack.GetBranch("docs")
		require.NoError(t, err)
		require.Equal(t, "feat", docs.Parent)
	})

	t.Run("names are unique across stacks", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat")
		testhelpers.TrackStack(t, ctx, fake, "fix", "patch:fix")
		fake.Checkout("api")

		err := actions.CreateBranch(ctx, actions.BranchOptions{Name: "patch"})
		require.ErrorIs(t, err, zyraerrors.ErrBranchExists)
		require.Empty(t, fake.Calls)
	})

	t.Run("from must belong to the current stack", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat")
		testhelpers.TrackStack(t, ctx, fake, "fix")
		fake.Checkout("feat")

		err := actions.CreateBranch(ctx, actions.BranchOptions{Name: "x", From: "fix"})
		require.ErrorIs(t, err, zyraerrors.ErrBranchNotFound)
	})

	t.Run("requires a tracked branch", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)

		err := actions.CreateBranch(ctx, actions.BranchOptions{Name: "x"})
		require.ErrorIs(t, err, zyraerrors.ErrNoStackForBranch)
	})
}

func TestLog(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("lists the path to the current branch", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat", "docs:feat")
		fake.Checkout("api")
		out := captureOutput(t, ctx)

		require.NoError(t, actions.Log(ctx, actions.LogOptions{Format: tui.FormatText}))
		require.Contains(t, out.String(), "● api")
		require.NotContains(t, out.String(), "docs")
	})

	t.Run("graph shows every branch", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat", "docs:feat")
		fake.Checkout("api")
		out := captureOutput(t, ctx)

		require.NoError(t, actions.Log(ctx, actions.LogOptions{Graph: true}))
		require.Contains(t, out.String(), "├── api")
		require.Contains(t, out.String(), "└── docs")
	})

	t.Run("json lists branches in stored order", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat")
		fake.Checkout("feat")
		out := captureOutput(t, ctx)

		require.NoError(t, actions.Log(ctx, actions.LogOptions{Format: tui.FormatJSON}))

		var summary tui.StackSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
		require.Equal(t, "feat", summary.Stack)
		require.Equal(t, "api", summary.Branches[1].Name)
		require.Len(t, summary.Branches[1].Commit, 7)
	})
}

func TestContinueAndAbort(t *testing.T) {
	t.Run("continue without a rebase fails", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)

		require.ErrorIs(t, actions.Continue(ctx), zyraerrors.ErrRebaseNotInProgress)
	})

	t.Run("continue records the new tip", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		testhelpers.TrackStack(t, ctx, fake, "feat", "api:feat")
		fake.Checkout("api")
		fake.StartRebase()

		require.NoError(t, actions.Continue(ctx))
		require.Equal(t, []string{"rebase-continue"}, fake.Calls)

		stack, err := reload(t, fake).GetStack("feat")
		require.NoError(t, err)
		api, err := stack.GetBranch("api")
		require.NoError(t, err)
		require.Equal(t, fake.Branches["api"], api.CommitHash)
	})

	t.Run("abort stops the rebase", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		ctx, _ := testhelpers.NewFakeContext(t, fake)
		fake.StartRebase()

		require.NoError(t, actions.Abort(ctx))
		require.False(t, fake.IsRebaseInProgress(ctx.Context))
		require.ErrorIs(t, actions.Abort(ctx), zyraerrors.ErrRebaseNotInProgress)
	})
}
