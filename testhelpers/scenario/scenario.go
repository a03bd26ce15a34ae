// Package scenario provides a high-level test scenario that combines a Scene
// with in-process zyra commands to provide a terse API for integration tests.
package scenario

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/cli"
	"zyra.dev/zyra/internal/engine"
	"zyra.dev/zyra/internal/git"
	"zyra.dev/zyra/testhelpers"
)

// Scenario represents a real repository driven through the zyra command tree.
type Scenario struct {
	T     *testing.T
	Scene *testhelpers.Scene
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv and NewScene.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)
	t.Setenv("ZYRA_LOG_FILE", filepath.Join(t.TempDir(), "zyra.log"))

	return &Scenario{T: t, Scene: scene}
}

// WithInitialCommit creates an initial commit on the main branch.
func (s *Scenario) WithInitialCommit() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit("initial", "init"))
	return s
}

// RunGit runs a git command in the scenario's repository.
func (s *Scenario) RunGit(args ...string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.RunGitCommand(args...))
	return s
}

// Checkout checks out a branch with plain git.
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branch))
	return s
}

// CommitChange creates a file change and commits it.
func (s *Scenario) CommitChange(name, message string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit(message, name))
	return s
}

// Exec runs a zyra command line in-process.
func (s *Scenario) Exec(args ...string) error {
	s.T.Helper()
	cmd := cli.NewRootCmd("test", "none", "unknown")
	cmd.SetArgs(args)
	cmd.SilenceErrors = true
	return cmd.ExecuteContext(context.Background())
}

// Run executes a zyra command and requires it to succeed.
func (s *Scenario) Run(cmdLine string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Exec(strings.Fields(cmdLine)...), "zyra %s", cmdLine)
	return s
}

// RunExpectError executes a zyra command and returns its error, which must be non-nil.
func (s *Scenario) RunExpectError(cmdLine string) error {
	s.T.Helper()
	err := s.Exec(strings.Fields(cmdLine)...)
	require.Error(s.T, err, "expected zyra %s to fail", cmdLine)
	return err
}

// WithStack runs init for root and adds each "child:parent" pair with one
// commit per branch, in order. The scenario ends on the last branch.
func (s *Scenario) WithStack(root string, pairs ...string) *Scenario {
	s.T.Helper()
	s.Run("init " + root)
	s.CommitChange(root, "change on "+root)
	for _, pair := range pairs {
		child, parent, ok := strings.Cut(pair, ":")
		require.True(s.T, ok, "pair %q must look like child:parent", pair)
		s.Run("branch " + child + " --from " + parent)
		s.CommitChange(child, "change on "+child)
	}
	return s
}

// Store loads the persisted stacks.
func (s *Scenario) Store() *engine.Store {
	s.T.Helper()
	runner, err := git.OpenRepo(s.Scene.Dir)
	require.NoError(s.T, err)
	store, err := engine.Load(engine.MetadataPath(runner.GitDir()), runner)
	require.NoError(s.T, err)
	return store
}

// ExpectBranch asserts that the current branch is as expected.
func (s *Scenario) ExpectBranch(expected string) *Scenario {
	s.T.Helper()
	actual, err := s.Scene.Repo.CurrentBranchName()
	require.NoError(s.T, err)
	require.Equal(s.T, expected, actual)
	return s
}

// ExpectParent asserts the recorded parent of a tracked branch.
func (s *Scenario) ExpectParent(branch, parent string) *Scenario {
	s.T.Helper()
	stack, err := s.Store().StackForBranch(branch)
	require.NoError(s.T, err)
	b, err := stack.GetBranch(branch)
	require.NoError(s.T, err)
	require.Equal(s.T, parent, b.Parent, "parent of %s", branch)
	return s
}

// ExpectRecordedTip asserts that the stored commit hash matches the branch tip.
func (s *Scenario) ExpectRecordedTip(branch string) *Scenario {
	s.T.Helper()
	tip, err := s.Scene.Repo.GetRevision(branch)
	require.NoError(s.T, err)
	stack, err := s.Store().StackForBranch(branch)
	require.NoError(s.T, err)
	b, err := stack.GetBranch(branch)
	require.NoError(s.T, err)
	require.Equal(s.T, tip, b.CommitHash, "recorded tip of %s", branch)
	return s
}
