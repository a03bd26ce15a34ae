// Package errors provides sentinel errors and custom error types for the zyra application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotGitRepository indicates the working directory is not inside a git work tree
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrStackNotFound indicates that a named stack does not exist
	ErrStackNotFound = errors.New("stack not found")

	// ErrBranchNotFound indicates that a branch does not exist
	ErrBranchNotFound = errors.New("branch not found")

	// ErrCommitNotFound indicates that a target does not resolve to a commit
	ErrCommitNotFound = errors.New("commit not found")

	// ErrTargetNotFound indicates a goto target matched no stack, branch or commit
	ErrTargetNotFound = errors.New("no stack, branch or commit matches target")

	// ErrStackExists indicates a stack name collision
	ErrStackExists = errors.New("stack already exists")

	// ErrBranchExists indicates a branch name collision anywhere in the store
	ErrBranchExists = errors.New("branch already exists")

	// ErrNoStackForBranch indicates the current branch is not tracked by any stack
	ErrNoStackForBranch = errors.New("no stack found for current branch")

	// ErrNoNextBranch indicates there is nothing to move to upstack
	ErrNoNextBranch = errors.New("no next branch")

	// ErrNoPreviousBranch indicates there is nothing to move to downstack
	ErrNoPreviousBranch = errors.New("no previous branch")

	// ErrRebaseConflict indicates that a rebase operation encountered a conflict
	ErrRebaseConflict = errors.New("rebase conflict")

	// ErrRebaseNotInProgress indicates that no rebase is currently in progress
	ErrRebaseNotInProgress = errors.New("no rebase in progress")

	// ErrStateConsistency indicates persisted stack state contradicts itself
	ErrStateConsistency = errors.New("inconsistent stack state")

	// ErrStorage indicates the metadata file could not be read or written
	ErrStorage = errors.New("metadata storage error")

	// ErrNothingToSubmit indicates a branch has no commits ahead of its parent
	ErrNothingToSubmit = errors.New("nothing to submit")

	// ErrParentMerged indicates a branch cannot be submitted because its parent is merged
	ErrParentMerged = errors.New("parent branch already merged")

	// ErrGitHubAuth indicates the PR service rejected our credentials
	ErrGitHubAuth = errors.New("github authentication failed")

	// ErrGitHubNotFound indicates a pull request or repository could not be found
	ErrGitHubNotFound = errors.New("github resource not found")

	// ErrGitHubRateLimit indicates the PR service rate limit was hit
	ErrGitHubRateLimit = errors.New("github rate limit exceeded")

	// ErrGitHubRequest indicates any other PR service failure
	ErrGitHubRequest = errors.New("github request failed")
)

// NotFoundError represents a named stack, branch or commit that does not exist
type NotFoundError struct {
	Kind string // "stack", "branch" or "commit"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Kind, e.Name)
}

// Is maps the error onto the sentinel for its kind
func (e *NotFoundError) Is(target error) bool {
	switch e.Kind {
	case "stack":
		return target == ErrStackNotFound
	case "branch":
		return target == ErrBranchNotFound
	case "commit":
		return target == ErrCommitNotFound
	}
	return false
}

// NewStackNotFoundError creates a NotFoundError for a stack
func NewStackNotFoundError(name string) *NotFoundError {
	return &NotFoundError{Kind: "stack", Name: name}
}

// NewBranchNotFoundError creates a NotFoundError for a branch
func NewBranchNotFoundError(name string) *NotFoundError {
	return &NotFoundError{Kind: "branch", Name: name}
}

// RebaseConflictError represents a failed rebase of a branch onto its parent
type RebaseConflictError struct {
	BranchName string
	Parent     string
	Err        error
}

func (e *RebaseConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to rebase %s onto %s: %v", e.BranchName, e.Parent, e.Err)
	}
	return fmt.Sprintf("failed to rebase %s onto %s", e.BranchName, e.Parent)
}

// Is returns true if the target error is ErrRebaseConflict
func (e *RebaseConflictError) Is(target error) bool {
	return target == ErrRebaseConflict
}

func (e *RebaseConflictError) Unwrap() error {
	return e.Err
}

// NewRebaseConflictError creates a new RebaseConflictError
func NewRebaseConflictError(branchName, parent string, err error) *RebaseConflictError {
	return &RebaseConflictError{
		BranchName: branchName,
		Parent:     parent,
		Err:        err,
	}
}

// StorageError wraps a failure reading, decoding or writing the metadata file
type StorageError struct {
	Path string
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s metadata %s: %v", e.Op, e.Path, e.Err)
}

// Is returns true if the target error is ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(path, op string, err error) *StorageError {
	return &StorageError{Path: path, Op: op, Err: err}
}

// StateConsistencyError reports a stack whose recorded structure is broken
type StateConsistencyError struct {
	StackName string
	Message   string
}

func (e *StateConsistencyError) Error() string {
	return fmt.Sprintf("stack %s is inconsistent: %s", e.StackName, e.Message)
}

// Is returns true if the target error is ErrStateConsistency
func (e *StateConsistencyError) Is(target error) bool {
	return target == ErrStateConsistency
}

// NewStateConsistencyError creates a new StateConsistencyError
func NewStateConsistencyError(stackName, message string) *StateConsistencyError {
	return &StateConsistencyError{StackName: stackName, Message: message}
}

// GitHubErrorKind classifies PR service failures
type GitHubErrorKind int

const (
	// GitHubRequestFailed is any failure not covered by a more specific kind
	GitHubRequestFailed GitHubErrorKind = iota
	// GitHubUnauthorized maps HTTP 401
	GitHubUnauthorized
	// GitHubNotFound maps HTTP 404
	GitHubNotFound
	// GitHubRateLimited maps HTTP 403 and rate limit responses
	GitHubRateLimited
)

// GitHubError is a PR service failure mapped from the transport status
type GitHubError struct {
	Kind       GitHubErrorKind
	StatusCode int
	Err        error
}

func (e *GitHubError) Error() string {
	switch e.Kind {
	case GitHubUnauthorized:
		return "GitHub authentication failed. Set ZYRA_GITHUB_TOKEN or GITHUB_TOKEN, or run 'gh auth login'"
	case GitHubNotFound:
		return "pull request or repository not found on GitHub (check the remote and token scopes)"
	case GitHubRateLimited:
		return "GitHub rate limit exceeded or access forbidden; wait and retry, or use an authenticated token"
	}
	return fmt.Sprintf("GitHub API error: %v", e.Err)
}

// Is maps the error onto the sentinel for its kind
func (e *GitHubError) Is(target error) bool {
	switch e.Kind {
	case GitHubUnauthorized:
		return target == ErrGitHubAuth
	case GitHubNotFound:
		return target == ErrGitHubNotFound
	case GitHubRateLimited:
		return target == ErrGitHubRateLimit
	}
	return target == ErrGitHubRequest
}

func (e *GitHubError) Unwrap() error {
	return e.Err
}

// NewGitHubError creates a new GitHubError
func NewGitHubError(kind GitHubErrorKind, statusCode int, err error) *GitHubError {
	return &GitHubError{Kind: kind, StatusCode: statusCode, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
