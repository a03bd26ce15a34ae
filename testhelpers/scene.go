package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a temporary repository on main, chdirs into it and
// restores the working directory on cleanup. Scenes mutate the process
// working directory, so tests using them must not run in parallel.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "zyra-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	// macOS hands out /var paths that resolve to /private/var
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:    tmpDir,
		Repo:   repo,
		oldDir: oldDir,
	}

	if err := os.Chdir(tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		t.Fatalf("Failed to change directory: %v", err)
	}

	t.Setenv("ZYRA_NON_INTERACTIVE", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", "/dev/null")

	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
		if os.Getenv("DEBUG") == "" {
			_ = os.RemoveAll(tmpDir)
			_ = os.RemoveAll(tmpDir + "-origin.git")
		}
	})

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// WriteRepoConfig writes raw JSON to the repository config file.
func (s *Scene) WriteRepoConfig(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(s.Dir, ".git", ".zyra_config")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("Failed to write repo config: %v", err)
	}
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
