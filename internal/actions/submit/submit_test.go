package submit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/actions/submit"
	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/git"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/testhelpers"
)

type fixture struct {
	fake     *testhelpers.FakeGit
	ctx      *runtime.Context
	prompter *testhelpers.ScriptedPrompter
	github   *testhelpers.MockGitHubServerConfig
}

func newFixture(t *testing.T, pairs ...string) *fixture {
	t.Helper()
	fake := testhelpers.NewFakeGit(t)
	ctx, prompter := testhelpers.NewFakeContext(t, fake)
	cfg := testhelpers.NewMockGitHubServerConfig()
	testhelpers.WithGitHub(ctx, testhelpers.NewMockGitHubClient(t, cfg), cfg.Owner, cfg.Repo)
	testhelpers.TrackStack(t, ctx, fake, "feat", pairs...)
	return &fixture{fake: fake, ctx: ctx, prompter: prompter, github: cfg}
}

func (f *fixture) branch(t *testing.T, name string) engine.StackBranch {
	t.Helper()
	store, err := engine.Load(engine.MetadataPath(f.fake.GitDir()), f.fake)
	require.NoError(t, err)
	stack, err := store.GetStack("feat")
	require.NoError(t, err)
	b, err := stack.GetBranch(name)
	require.NoError(t, err)
	return *b
}

func TestSubmitBranch(t *testing.T) {
	t.Run("an up to date PR only gets pushed", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("api")
		f.github.AddOpenPR(7, "api", "feat")

		require.NoError(t, submit.Submit(f.ctx, submit.Options{}))

		require.Equal(t, 0, f.github.MutatingCalls())
		require.Equal(t, []string{"fetch", "push origin --force-with-lease api"}, f.fake.Calls)
		require.Empty(t, f.prompter.Asked)

		api := f.branch(t, "api")
		require.Equal(t, int64(7), api.PRID)
		require.Equal(t, engine.StatusPending, api.Status)
	})

	t.Run("creates a PR against the parent", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("api")
		f.prompter.Texts = []string{"Add the API"}
		f.prompter.Bodies = []string{"Details."}

		require.NoError(t, submit.Submit(f.ctx, submit.Options{}))

		require.Len(t, f.github.CreatedPRs, 1)
		created := f.github.CreatedPRs[0]
		require.Equal(t, "api", created.GetHead().GetRef())
		require.Equal(t, "feat", created.GetBase().GetRef())
		require.Equal(t, "Add the API", created.GetTitle())
		require.Contains(t, created.GetBody(), "Details.\n\n### Stack Information")
		require.Contains(t, created.GetBody(), "- ⏳ api")
		require.False(t, created.GetDraft())

		require.Equal(t, int64(created.GetNumber()), f.branch(t, "api").PRID)
	})

	t.Run("retargets a PR whose base is stale", func(t *testing.T) {
		f := newFixture(t, "api:feat", "ui:api")
		f.fake.Checkout("ui")
		f.github.AddOpenPR(3, "ui", "main")

		require.NoError(t, submit.Submit(f.ctx, submit.Options{}))

		require.Equal(t, 1, f.github.MutatingCalls())
		updated := f.github.UpdatedPRs[3]
		require.NotNil(t, updated)
		require.Equal(t, "api", updated.GetBase().GetRef())
		require.Contains(t, updated.GetBody(), "- ⏳ ui (PR #3)")
	})

	t.Run("refuses a branch without commits", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("api")
		f.fake.Empty["api"] = true

		err := submit.Submit(f.ctx, submit.Options{})
		require.ErrorIs(t, err, zyraerrors.ErrNothingToSubmit)
		require.Empty(t, f.fake.CallsWithPrefix("push"))
	})

	t.Run("refuses when the parent is merged", func(t *testing.T) {
		f := newFixture(t, "api:feat", "ui:api")
		stack, err := f.ctx.Store.GetStack("feat")
		require.NoError(t, err)
		require.NoError(t, stack.SetStatus("api", engine.StatusMerged, f.ctx.Store.Now()))
		f.fake.Checkout("ui")

		err = submit.Submit(f.ctx, submit.Options{})
		require.ErrorIs(t, err, zyraerrors.ErrParentMerged)
		require.Equal(t, 0, f.github.MutatingCalls())
	})

	t.Run("refuses the root", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("feat")

		require.Error(t, submit.Submit(f.ctx, submit.Options{}))
		require.Empty(t, f.fake.CallsWithPrefix("push"))
	})

	t.Run("push policy follows the flags", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("api")
		f.github.AddOpenPR(1, "api", "feat")

		require.NoError(t, submit.Submit(f.ctx, submit.Options{Force: true}))
		require.NoError(t, submit.Submit(f.ctx, submit.Options{NoPush: true}))
		require.Equal(t, []string{"push origin --force api"}, f.fake.CallsWithPrefix("push"))
	})

	t.Run("stale lease is reported", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("api")
		f.fake.PushErrors["api"] = fmt.Errorf("push failed: %w", git.ErrStaleRemoteInfo)

		err := submit.Submit(f.ctx, submit.Options{})
		require.ErrorIs(t, err, git.ErrStaleRemoteInfo)
		require.Equal(t, 0, f.github.MutatingCalls())
	})

	t.Run("authentication failures surface", func(t *testing.T) {
		f := newFixture(t, "api:feat")
		f.fake.Checkout("api")
		f.github.ErrorStatus["GET"] = 401

		require.ErrorIs(t, submit.Submit(f.ctx, submit.Options{}), zyraerrors.ErrGitHubAuth)
	})
}

func TestSubmitStack(t *testing.T) {
	t.Run("walks parents before children with siblings in stored order", func(t *testing.T) {
		f := newFixture(t, "api:feat", "docs:feat", "ui:api", "wip:feat", "wip-child:wip")
		f.fake.Empty["wip"] = true
		f.fake.Checkout("feat")

		require.NoError(t, submit.Submit(f.ctx, submit.Options{All: true}))

		require.Equal(t, []string{
			"push origin --force-with-lease api",
			"push origin --force-with-lease ui",
			"push origin --force-with-lease docs",
		}, f.fake.CallsWithPrefix("push"))
		require.Equal(t, "fetch", f.fake.Calls[0])
		require.Equal(t, "feat", f.fake.Current)

		bases := map[string]string{}
		for _, pr := range f.github.CreatedPRs {
			bases[pr.GetHead().GetRef()] = pr.GetBase().GetRef()
		}
		require.Equal(t, map[string]string{"api": "feat", "ui": "api", "docs": "feat"}, bases)

		require.Equal(t, engine.NoPR, f.branch(t, "wip").PRID)
		require.Equal(t, engine.NoPR, f.branch(t, "wip-child").PRID)
		require.Greater(t, f.branch(t, "ui").PRID, int64(0))
	})

	t.Run("children see their parent's PR number", func(t *testing.T) {
		f := newFixture(t, "api:feat", "ui:api")
		f.fake.Checkout("ui")

		require.NoError(t, submit.Submit(f.ctx, submit.Options{All: true}))

		require.Len(t, f.github.CreatedPRs, 2)
		apiNumber := f.github.CreatedPRs[0].GetNumber()
		require.Contains(t, f.github.CreatedPRs[1].GetBody(), fmt.Sprintf("- ⏳ api (PR #%d)", apiNumber))
		require.Equal(t, "ui", f.fake.Current)
	})

	t.Run("stops and returns to the original branch on failure", func(t *testing.T) {
		f := newFixture(t, "api:feat", "ui:api")
		f.fake.Checkout("feat")
		f.github.ErrorStatus["POST"] = 500

		require.ErrorIs(t, submit.Submit(f.ctx, submit.Options{All: true}), zyraerrors.ErrGitHubRequest)
		require.Equal(t, []string{"push origin --force-with-lease api"}, f.fake.CallsWithPrefix("push"))
		require.Equal(t, "feat", f.fake.Current)
	})
}
