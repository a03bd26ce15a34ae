package engine_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/engine"
	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/testhelpers"
)

func newStore(t *testing.T) (*engine.Store, *testhelpers.FakeGit) {
	t.Helper()
	fake := testhelpers.NewFakeGit(t)
	return engine.NewStore(engine.MetadataPath(fake.GitDir()), fake, engine.WithClock(testhelpers.NewTestClock())), fake
}

func TestStoreUniqueness(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.AddStack(engine.NewStack("feat", "main", "a", t0)))
	require.NoError(t, store.AddBranch("feat", engine.NewBranch("api", "b", "feat", t0)))
	require.NoError(t, store.AddStack(engine.NewStack("fix", "main", "c", t0)))

	t.Run("a name belongs to exactly one stack", func(t *testing.T) {
		require.True(t, store.HasBranch("api"))
		stack, err := store.StackForBranch("api")
		require.NoError(t, err)
		require.Equal(t, "feat", stack.Name)
		require.False(t, store.HasBranch("ghost"))
	})

	t.Run("duplicate stacks fail", func(t *testing.T) {
		require.ErrorIs(t, store.AddStack(engine.NewStack("feat", "main", "x", t0)), zyraerrors.ErrStackExists)
	})

	t.Run("a stack may not reuse a branch name", func(t *testing.T) {
		require.ErrorIs(t, store.AddStack(engine.NewStack("api", "main", "x", t0)), zyraerrors.ErrBranchExists)
	})

	t.Run("duplicate branches fail across stacks", func(t *testing.T) {
		require.ErrorIs(t, store.AddBranch("fix", engine.NewBranch("api", "x", "fix", t0)), zyraerrors.ErrBranchExists)
		require.ErrorIs(t, store.AddBranch("fix", engine.NewBranch("feat", "x", "fix", t0)), zyraerrors.ErrBranchExists)
	})

	t.Run("the parent must be in the stack", func(t *testing.T) {
		err := store.AddBranch("fix", engine.NewBranch("patch", "x", "api", t0))
		require.ErrorIs(t, err, zyraerrors.ErrStateConsistency)
	})

	t.Run("unknown stacks are not found", func(t *testing.T) {
		_, err := store.GetStack("nope")
		require.ErrorIs(t, err, zyraerrors.ErrStackNotFound)
	})
}

func TestStoreCurrentStack(t *testing.T) {
	t.Run("follows the checked out branch", func(t *testing.T) {
		store, fake := newStore(t)
		require.NoError(t, store.AddStack(engine.NewStack("feat", "main", "a", t0)))
		require.NoError(t, store.AddBranch("feat", engine.NewBranch("api", "b", "feat", t0)))
		fake.Current = "api"

		stack, err := store.CurrentStack(context.Background())
		require.NoError(t, err)
		require.Equal(t, "feat", stack.Name)

		require.NoError(t, store.SetPRID(context.Background(), "api", 5))
		api, err := stack.GetBranch("api")
		require.NoError(t, err)
		require.Equal(t, int64(5), api.PRID)
	})

	t.Run("an untracked branch has no stack", func(t *testing.T) {
		store, _ := newStore(t)
		_, err := store.CurrentStack(context.Background())
		require.ErrorIs(t, err, zyraerrors.ErrNoStackForBranch)
	})

	t.Run("detached HEAD uses the recorded stack", func(t *testing.T) {
		store, fake := newStore(t)
		require.NoError(t, store.AddStack(engine.NewStack("feat", "main", "a", t0)))
		fake.Current = ""

		_, err := store.CurrentStack(context.Background())
		require.ErrorIs(t, err, zyraerrors.ErrNotOnBranch)

		store.SetDetached("feat", "feat")
		stack, err := store.CurrentStack(context.Background())
		require.NoError(t, err)
		require.Equal(t, "feat", stack.Name)

		store.ClearDetached()
		require.False(t, store.IsDetached())
	})
}

func TestStorePersistence(t *testing.T) {
	build := func(t *testing.T, stacks int) (*engine.Store, *testhelpers.FakeGit) {
		store, fake := newStore(t)
		for i := range stacks {
			root := []string{"alpha", "beta", "gamma"}[i]
			require.NoError(t, store.AddStack(engine.NewStack(root, "main", root+"-hash", store.Now())))
			require.NoError(t, store.AddBranch(root, engine.NewBranch(root+"-1", root+"-hash1", root, store.Now())))
			stack, err := store.GetStack(root)
			require.NoError(t, err)
			require.NoError(t, stack.SetPRID(root+"-1", int64(10+i), store.Now()))
			require.NoError(t, stack.SetStatus(root+"-1", engine.StatusConflict, store.Now()))
		}
		return store, fake
	}

	for _, n := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("round trips %d stacks", n), func(t *testing.T) {
			store, fake := build(t, n)
			require.NoError(t, store.Save())

			loaded, err := engine.Load(store.Path(), fake)
			require.NoError(t, err)
			require.Len(t, loaded.Stacks(), n)
			for i, stack := range store.Stacks() {
				require.Equal(t, stack.Branches, loaded.Stacks()[i].Branches)
				require.Equal(t, stack.BaseBranch, loaded.Stacks()[i].BaseBranch)
			}
		})
	}

	t.Run("writes private pretty JSON", func(t *testing.T) {
		store, _ := build(t, 1)
		require.NoError(t, store.Save())

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())

		data, err := os.ReadFile(store.Path())
		require.NoError(t, err)
		require.Contains(t, string(data), "\n  \"stacks\": [")
		require.Contains(t, string(data), "\"commit_hash\"")
	})

	t.Run("a missing file is an empty store", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		store, err := engine.Load(filepath.Join(t.TempDir(), "none.json"), fake)
		require.NoError(t, err)
		require.Empty(t, store.Stacks())
		require.Equal(t, engine.CurrentVersion, store.Version())
	})

	t.Run("corrupt content is a storage error", func(t *testing.T) {
		fake := testhelpers.NewFakeGit(t)
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

		_, err := engine.Load(path, fake)
		require.ErrorIs(t, err, zyraerrors.ErrStorage)
	})

	t.Run("reload discards unsaved changes", func(t *testing.T) {
		store, _ := build(t, 1)
		require.NoError(t, store.Save())
		require.NoError(t, store.AddStack(engine.NewStack("extra", "main", "x", t0)))

		require.NoError(t, store.Reload())
		require.False(t, store.HasStack("extra"))
		require.True(t, store.HasStack("alpha"))
	})
}

func TestLoadLegacyDocument(t *testing.T) {
	const legacy = `{
  "version": "0.0.9",
  "stacks": [
    {
      "name": "feat",
      "base_branch": "main",
      "head_branch": {"name": "feat", "commit_hash": "abc", "parent": null, "pr_id": null},
      "branches": [
        {"name": "feat", "commit_hash": "abc", "parent": null, "pr_id": null, "status": "Pending",
         "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"},
        {"name": "api", "commit_hash": "def", "parent": "feat", "pr_id": 12, "status": null,
         "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}
      ],
      "created_at": "2024-01-01T00:00:00Z",
      "updated_at": "2024-01-01T00:00:00Z"
    }
  ]
}`
	fake := testhelpers.NewFakeGit(t)
	path := filepath.Join(t.TempDir(), engine.MetadataFileName)
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0600))

	store, err := engine.Load(path, fake)
	require.NoError(t, err)
	require.Equal(t, "0.0.9", store.Version())

	stack, err := store.GetStack("feat")
	require.NoError(t, err)
	root, err := stack.Root()
	require.NoError(t, err)
	require.Equal(t, "", root.Parent)
	require.Equal(t, engine.NoPR, root.PRID)

	api, err := stack.GetBranch("api")
	require.NoError(t, err)
	require.Equal(t, int64(12), api.PRID)
	require.Equal(t, engine.StatusPending, api.Status)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), api.CreatedAt.UTC())

	require.NoError(t, store.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "head_branch")
}
