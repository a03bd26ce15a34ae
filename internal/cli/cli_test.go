package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/testhelpers"
	"zyra.dev/zyra/testhelpers/scenario"
)

func TestInitAndBranch(t *testing.T) {
	t.Run("builds a stack from the command line", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.WithStack("feat", "api:feat", "ui:api")

		s.ExpectBranch("ui").
			ExpectParent("api", "feat").
			ExpectParent("ui", "api")

		stack, err := s.Store().GetStack("feat")
		require.NoError(t, err)
		require.Equal(t, "main", stack.BaseBranch)
		require.Len(t, stack.Branches, 3)
	})

	t.Run("rejects a second stack with the same name", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.Run("init feat")
		s.Checkout("main")

		require.ErrorIs(t, s.RunExpectError("init feat"), zyraerrors.ErrStackExists)
	})

	t.Run("branch needs a tracked branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.ErrorIs(t, s.RunExpectError("branch api"), zyraerrors.ErrNoStackForBranch)
	})
}

func TestNavigationCommands(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
	s.WithStack("feat", "api:feat", "ui:api")

	s.Run("prev").ExpectBranch("api")
	s.Run("p").ExpectBranch("feat")
	require.ErrorIs(t, s.RunExpectError("prev"), zyraerrors.ErrNoPreviousBranch)

	s.Run("next").ExpectBranch("api")
	s.Run("goto ui").ExpectBranch("ui").ExpectRecordedTip("ui")
	require.ErrorIs(t, s.RunExpectError("next"), zyraerrors.ErrNoNextBranch)

	s.Run("g feat").ExpectBranch("feat")
	require.ErrorIs(t, s.RunExpectError("goto nowhere"), zyraerrors.ErrTargetNotFound)
}

func TestGotoCommitThenNext(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
	s.WithStack("feat", "api:feat")
	s.Checkout("feat")
	s.Run("goto feat")

	mainTip, err := s.Scene.Repo.GetRevision("main")
	require.NoError(t, err)

	s.Run("goto " + mainTip).ExpectBranch("")
	require.NotNil(t, s.Store().DetachedContext())

	s.Run("next").ExpectBranch("api")
	require.False(t, s.Store().IsDetached())
}

func TestRestackCommand(t *testing.T) {
	t.Run("rebases children onto a moved parent", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.WithStack("feat", "api:feat", "ui:api")
		s.Checkout("feat").CommitChange("late", "late change on feat")
		s.Checkout("api")

		s.Run("restack")

		s.ExpectBranch("api").ExpectRecordedTip("api").ExpectRecordedTip("ui")
		require.True(t, s.Scene.Repo.IsAncestor("feat", "api"))
		require.True(t, s.Scene.Repo.IsAncestor("api", "ui"))
	})

	t.Run("a conflict is aborted and reported", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
		s.WithStack("feat", "api:feat")
		s.CommitChange("shared", "api version")
		s.Checkout("feat").CommitChange("shared", "feat version")
		s.Checkout("api")

		err := s.RunExpectError("restack")
		require.ErrorIs(t, err, zyraerrors.ErrRebaseConflict)

		s.ExpectBranch("api")
		require.False(t, s.Scene.Repo.RebaseInProgress())
		require.False(t, s.Scene.Repo.IsAncestor("feat", "api"))
	})
}

func TestRebaseCommandsWithoutRebase(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

	require.ErrorIs(t, s.RunExpectError("continue"), zyraerrors.ErrRebaseNotInProgress)
	require.ErrorIs(t, s.RunExpectError("abort"), zyraerrors.ErrRebaseNotInProgress)
}

func TestLogCommand(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)
	s.WithStack("feat", "api:feat")

	s.Run("log")
	s.Run("log --graph")
	s.Run("l --format yaml")
	s.RunExpectError("log --format xml")
}
