// Package git provides a wrapper around git commands and go-git for repository operations.
package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// ErrStaleRemoteInfo indicates that a push failed because the remote has changed
var ErrStaleRemoteInfo = errors.New("stale info")

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "git", true, args...)
}

// RunRaw executes a git command and returns the output untouched
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "git", false, args...)
}

// RunGH executes a gh command with the given context
func (r *CommandRunner) RunGH(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "gh", true, args...)
}

// runInternal is the internal implementation that handles directory and timeout
func (r *CommandRunner) runInternal(ctx context.Context, command string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", zyraerrors.NewGitCommandError(command, args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", zyraerrors.NewGitCommandError(command, args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// splitLines splits command output into non-empty lines
func splitLines(output string) []string {
	if output == "" {
		return []string{}
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// PushMode selects how a branch is pushed
type PushMode int

const (
	// PushForceWithLease refuses to overwrite remote changes we have not seen
	PushForceWithLease PushMode = iota
	// PushForce overwrites the remote branch unconditionally
	PushForce
	// PushPlain performs a fast-forward only push
	PushPlain
)

// RebaseResult represents the result of a rebase operation
type RebaseResult int

const (
	// RebaseDone indicates the rebase was successful
	RebaseDone RebaseResult = iota
	// RebaseConflict indicates a conflict occurred during rebase
	RebaseConflict
)

// Runner is the version-control executor used by the engine and actions.
// This allows the actions to be used with both real git and fake implementations.
type Runner interface {
	// Repository
	RepoRoot() string
	GitDir() string

	// Branch and revision queries
	CurrentBranch(ctx context.Context) (string, error)
	HeadRevision(ctx context.Context) (string, error)
	Revision(ctx context.Context, ref string) (string, error)
	IsCommit(ctx context.Context, ref string) bool
	HasCommitsBetween(ctx context.Context, base, head string) (bool, error)
	BranchNames(localOnly bool) ([]string, error)

	// Branch management
	CheckoutBranch(ctx context.Context, branchName string) error
	CreateBranch(ctx context.Context, branchName string) error
	CheckoutDetached(ctx context.Context, revision string) error
	SetUpstream(ctx context.Context, branchName string) error

	// Rebase
	RebaseOnto(ctx context.Context, ref string) error
	RebaseAbort(ctx context.Context) error
	RebaseContinue(ctx context.Context) (RebaseResult, error)
	IsRebaseInProgress(ctx context.Context) bool

	// Remote
	Fetch(ctx context.Context) error
	PushBranch(ctx context.Context, branchName, remote string, mode PushMode) error
	Remote(ctx context.Context) (string, error)
	RemoteURL(ctx context.Context, remote string) (string, error)
}
