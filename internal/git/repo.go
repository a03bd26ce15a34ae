package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// repoRunner implements Runner against a repository on disk. Reads go through
// go-git; anything that mutates the work tree shells out to git.
type repoRunner struct {
	cmd    *CommandRunner
	repo   *gogit.Repository
	root   string
	gitDir string
}

// OpenRepo discovers the repository containing dir and returns an executor for it
func OpenRepo(dir string) (Runner, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", zyraerrors.ErrNotGitRepository, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	r := &repoRunner{
		cmd:  NewCommandRunner(root),
		repo: repo,
		root: root,
	}

	if storage, ok := repo.Storer.(*filesystem.Storage); ok {
		r.gitDir = storage.Filesystem().Root()
	} else {
		gitDir, err := r.cmd.Run(context.Background(), "rev-parse", "--absolute-git-dir")
		if err != nil {
			return nil, fmt.Errorf("failed to locate git directory: %w", err)
		}
		r.gitDir = gitDir
	}

	return r, nil
}

func (r *repoRunner) RepoRoot() string {
	return r.root
}

func (r *repoRunner) GitDir() string {
	if filepath.IsAbs(r.gitDir) {
		return r.gitDir
	}
	return filepath.Join(r.root, r.gitDir)
}
