package testhelpers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	zyraerrors "zyra.dev/zyra/internal/errors"
	"zyra.dev/zyra/internal/git"
)

// FakeGit implements git.Runner in memory. Branches map to synthetic commit
// hashes; rebases and pushes can be scripted to fail.
type FakeGit struct {
	mu sync.Mutex

	root   string
	gitDir string

	// Current is the checked out branch, empty while detached
	Current string
	// Head is the commit HEAD points at
	Head string
	// Branches maps local branch names to commit hashes
	Branches map[string]string
	// RemoteBranches are reported by BranchNames(false)
	RemoteBranches []string
	// Commits holds extra hashes that exist without a branch
	Commits map[string]bool
	// Remotes maps remote names to URLs
	Remotes map[string]string
	// Empty marks branches that have no commits ahead of any base
	Empty map[string]bool
	// RebaseFailures marks branches whose rebase stops on a conflict
	RebaseFailures map[string]bool
	// PushErrors forces a push of the named branch to fail
	PushErrors map[string]error
	// CheckoutErrors forces a checkout of the named branch to fail
	CheckoutErrors map[string]error

	// Calls records mutating operations in order, e.g. "rebase feature main"
	Calls []string

	rebasing bool
	counter  int
}

var _ git.Runner = (*FakeGit)(nil)

// NewFakeGit creates a fake repository with main checked out and an origin remote.
func NewFakeGit(t *testing.T) *FakeGit {
	t.Helper()
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	if err := os.MkdirAll(gitDir, 0o750); err != nil {
		t.Fatalf("Failed to create git dir: %v", err)
	}

	f := &FakeGit{
		root:           root,
		gitDir:         gitDir,
		Branches:       map[string]string{},
		Commits:        map[string]bool{},
		Remotes:        map[string]string{"origin": "git@github.com:owner/repo.git"},
		Empty:          map[string]bool{},
		RebaseFailures: map[string]bool{},
		PushErrors:     map[string]error{},
		CheckoutErrors: map[string]error{},
	}
	f.AddBranch("main")
	f.Current = "main"
	f.Head = f.Branches["main"]
	return f
}

// AddBranch creates a branch at a fresh commit and returns its hash.
func (f *FakeGit) AddBranch(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	hash := f.nextHash()
	f.Branches[name] = hash
	return hash
}

// AddCommit registers a commit not reachable from any branch.
func (f *FakeGit) AddCommit() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	hash := f.nextHash()
	f.Commits[hash] = true
	return hash
}

// Checkout switches the fake HEAD without recording a call.
func (f *FakeGit) Checkout(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Current = name
	f.Head = f.Branches[name]
}

// CallsWithPrefix returns the recorded calls starting with prefix.
func (f *FakeGit) CallsWithPrefix(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeGit) nextHash() string {
	f.counter++
	return fmt.Sprintf("%04x%s", f.counter, strings.Repeat("0", 36))
}

func (f *FakeGit) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *FakeGit) RepoRoot() string { return f.root }

func (f *FakeGit) GitDir() string { return f.gitDir }

func (f *FakeGit) CurrentBranch(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Current == "" {
		return "", zyraerrors.ErrNotOnBranch
	}
	return f.Current, nil
}

func (f *FakeGit) HeadRevision(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Head, nil
}

func (f *FakeGit) Revision(_ context.Context, ref string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if hash, ok := f.resolve(ref); ok {
		return hash, nil
	}
	return "", fmt.Errorf("failed to resolve %s", ref)
}

func (f *FakeGit) resolve(ref string) (string, bool) {
	if ref == "HEAD" {
		return f.Head, f.Head != ""
	}
	if hash, ok := f.Branches[ref]; ok {
		return hash, true
	}
	if ref == "" {
		return "", false
	}
	for hash := range f.Commits {
		if strings.HasPrefix(hash, ref) {
			return hash, true
		}
	}
	for _, hash := range f.Branches {
		if strings.HasPrefix(hash, ref) {
			return hash, true
		}
	}
	return "", false
}

func (f *FakeGit) IsCommit(_ context.Context, ref string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.resolve(ref)
	return ok
}

func (f *FakeGit) HasCommitsBetween(_ context.Context, _, head string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Branches[head]; !ok {
		return false, fmt.Errorf("unknown revision %s", head)
	}
	return !f.Empty[head], nil
}

func (f *FakeGit) BranchNames(localOnly bool) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Branches))
	for name := range f.Branches {
		names = append(names, name)
	}
	if !localOnly {
		names = append(names, f.RemoteBranches...)
	}
	sort.Strings(names)
	return names, nil
}

func (f *FakeGit) CheckoutBranch(_ context.Context, branchName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.CheckoutErrors[branchName]; err != nil {
		return err
	}
	hash, ok := f.Branches[branchName]
	if !ok {
		return fmt.Errorf("failed to checkout branch %s: no such branch", branchName)
	}
	f.record("checkout %s", branchName)
	f.Current = branchName
	f.Head = hash
	return nil
}

func (f *FakeGit) CreateBranch(_ context.Context, branchName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Branches[branchName]; ok {
		return fmt.Errorf("failed to create branch %s: already exists", branchName)
	}
	f.record("create %s", branchName)
	f.Branches[branchName] = f.Head
	f.Current = branchName
	return nil
}

func (f *FakeGit) CheckoutDetached(_ context.Context, revision string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	hash, ok := f.resolve(revision)
	if !ok {
		return fmt.Errorf("failed to checkout %s: unknown revision", revision)
	}
	f.record("detach %s", revision)
	f.Current = ""
	f.Head = hash
	return nil
}

func (f *FakeGit) SetUpstream(_ context.Context, branchName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("upstream %s", branchName)
	return nil
}

func (f *FakeGit) RebaseOnto(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("rebase %s %s", f.Current, ref)
	if f.RebaseFailures[f.Current] {
		f.rebasing = true
		return fmt.Errorf("rebase onto %s failed: CONFLICT", ref)
	}
	hash := f.nextHash()
	f.Branches[f.Current] = hash
	f.Head = hash
	return nil
}

func (f *FakeGit) RebaseAbort(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.rebasing {
		return zyraerrors.ErrRebaseNotInProgress
	}
	f.record("rebase-abort")
	f.rebasing = false
	f.Head = f.Branches[f.Current]
	return nil
}

func (f *FakeGit) RebaseContinue(_ context.Context) (git.RebaseResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.rebasing {
		return git.RebaseDone, zyraerrors.ErrRebaseNotInProgress
	}
	f.record("rebase-continue")
	f.rebasing = false
	hash := f.nextHash()
	f.Branches[f.Current] = hash
	f.Head = hash
	return git.RebaseDone, nil
}

func (f *FakeGit) IsRebaseInProgress(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rebasing
}

// StartRebase puts the fake into the middle of a conflicted rebase.
func (f *FakeGit) StartRebase() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebasing = true
}

func (f *FakeGit) Fetch(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("fetch")
	return nil
}

func (f *FakeGit) PushBranch(_ context.Context, branchName, remote string, mode git.PushMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	flag := map[git.PushMode]string{
		git.PushForceWithLease: "--force-with-lease",
		git.PushForce:          "--force",
		git.PushPlain:          "--plain",
	}[mode]
	f.record("push %s %s %s", remote, flag, branchName)
	if err := f.PushErrors[branchName]; err != nil {
		return err
	}
	return nil
}

func (f *FakeGit) Remote(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.Remotes))
	for name := range f.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return git.PickRemote(names)
}

func (f *FakeGit) RemoteURL(_ context.Context, remote string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url, ok := f.Remotes[remote]
	if !ok {
		return "", fmt.Errorf("no such remote %s", remote)
	}
	return url, nil
}
