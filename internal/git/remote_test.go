package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/git"
)

func TestPickRemote(t *testing.T) {
	_, err := git.PickRemote(nil)
	require.Error(t, err)

	for _, tc := range []struct {
		remotes  []string
		expected string
	}{
		{[]string{"upstream"}, "upstream"},
		{[]string{"fork", "origin"}, "origin"},
		{[]string{"fork", "upstream"}, "fork"},
	} {
		remote, err := git.PickRemote(tc.remotes)
		require.NoError(t, err)
		require.Equal(t, tc.expected, remote)
	}
}

func TestPushAndFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes with lease and sets the upstream", func(t *testing.T) {
		scene, runner := openScene(t)
		bare, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		remote, err := runner.Remote(ctx)
		require.NoError(t, err)
		require.Equal(t, "origin", remote)
		url, err := runner.RemoteURL(ctx, remote)
		require.NoError(t, err)
		require.Equal(t, bare, url)

		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
		require.NoError(t, scene.Repo.CreateChangeAndCommit("feature change", "feat"))
		require.NoError(t, runner.PushBranch(ctx, "feature", "origin", git.PushForceWithLease))

		upstream, err := scene.Repo.RunGitCommandAndGetOutput("rev-parse", "--abbrev-ref", "feature@{upstream}")
		require.NoError(t, err)
		require.Equal(t, "origin/feature", upstream)

		// Rewrite history and push again
		require.NoError(t, scene.Repo.RunGitCommand("commit", "--amend", "-m", "reworded"))
		require.NoError(t, runner.PushBranch(ctx, "feature", "origin", git.PushForceWithLease))

		require.NoError(t, runner.Fetch(ctx))
		names, err := runner.BranchNames(false)
		require.NoError(t, err)
		require.Contains(t, names, "origin/feature")
	})

	t.Run("a plain push of rewritten history fails", func(t *testing.T) {
		scene, runner := openScene(t)
		_, err := scene.Repo.CreateBareRemote("origin")
		require.NoError(t, err)

		require.NoError(t, runner.PushBranch(ctx, "main", "origin", git.PushPlain))
		require.NoError(t, scene.Repo.RunGitCommand("commit", "--amend", "-m", "reworded"))
		require.Error(t, runner.PushBranch(ctx, "main", "origin", git.PushPlain))
		require.NoError(t, runner.PushBranch(ctx, "main", "origin", git.PushForce))
	})

	t.Run("no remote is an error", func(t *testing.T) {
		_, runner := openScene(t)
		_, err := runner.Remote(ctx)
		require.Error(t, err)
	})
}
