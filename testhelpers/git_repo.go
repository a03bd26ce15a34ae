package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// isolatedEnv keeps the developer's global git config out of test repositories
var isolatedEnv = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")

// GitRepo is a throwaway repository on disk driven through the git CLI
type GitRepo struct {
	Dir string
}

// NewGitRepo runs git init on main in dir and sets a committer identity
func NewGitRepo(dir string) (*GitRepo, error) {
	if _, err := gitIn("", "-c", "core.autocrlf=false", "init", "-b", "main", dir); err != nil {
		return nil, err
	}

	repo := &GitRepo{Dir: dir}
	for _, kv := range [][2]string{
		{"user.name", "Zyra Test"},
		{"user.email", "zyra@example.com"},
		{"commit.gpgsign", "false"},
	} {
		if err := repo.RunGitCommand("config", kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func gitIn(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = isolatedEnv
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(string(out)), nil
}

// RunGitCommand runs git in the repository and discards its output
func (r *GitRepo) RunGitCommand(args ...string) error {
	_, err := gitIn(r.Dir, args...)
	return err
}

// RunGitCommandAndGetOutput runs git in the repository and returns trimmed stdout
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	return gitIn(r.Dir, args...)
}

// CreateChange writes textValue to <prefix>_test.txt and stages it unless unstaged is set
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	name := "test.txt"
	if prefix != "" {
		name = prefix + "_" + name
	}
	path := filepath.Join(r.Dir, name)
	if err := os.WriteFile(path, []byte(textValue), 0600); err != nil {
		return err
	}
	if unstaged {
		return nil
	}
	return r.RunGitCommand("add", path)
}

// CreateChangeAndCommit writes a change and commits it with textValue as the message
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", textValue)
}

// CreateBranch creates a branch at HEAD without switching to it
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// CreateAndCheckoutBranch creates a branch at HEAD and switches to it
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.RunGitCommand("switch", "-c", name)
}

// CheckoutBranch switches to an existing branch
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.RunGitCommand("switch", name)
}

// CheckoutDetached detaches HEAD at rev
func (r *GitRepo) CheckoutDetached(rev string) error {
	return r.RunGitCommand("switch", "--detach", rev)
}

// CurrentBranchName returns the checked out branch, or "" while detached
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// GetRevision resolves rev to a full hash
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// RebaseInProgress reports whether git has a rebase state directory
func (r *GitRepo) RebaseInProgress() bool {
	for _, dir := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(r.Dir, ".git", dir)); err == nil {
			return true
		}
	}
	return false
}

// ResolveMergeConflicts keeps the side being replayed for every path and stages it
func (r *GitRepo) ResolveMergeConflicts() error {
	if err := r.RunGitCommand("checkout", "--theirs", "."); err != nil {
		return err
	}
	return r.RunGitCommand("add", ".")
}

// IsAncestor reports whether ancestor is reachable from descendant
func (r *GitRepo) IsAncestor(ancestor, descendant string) bool {
	return r.RunGitCommand("merge-base", "--is-ancestor", ancestor, descendant) == nil
}

// CreateBareRemote creates a bare repository next to the work tree, registers
// it as remote name and returns its path
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bare := r.Dir + "-" + name + ".git"
	if _, err := gitIn("", "init", "--bare", bare); err != nil {
		return "", err
	}
	if err := r.RunGitCommand("remote", "add", name, bare); err != nil {
		return "", err
	}
	return bare, nil
}
