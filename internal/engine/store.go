package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// HeadReader reports the branch the working tree is on.
// git.Runner satisfies it.
type HeadReader interface {
	CurrentBranch(ctx context.Context) (string, error)
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the in-memory collection of every stack, loaded once per command
// and written back as a full snapshot.
type Store struct {
	path string
	meta Metadata
	head HeadReader
	now  func() time.Time
}

// NewStore creates an empty store that will persist to path
func NewStore(path string, head HeadReader, opts ...StoreOption) *Store {
	s := &Store{
		path: path,
		meta: Metadata{Stacks: []Stack{}, Version: CurrentVersion},
		head: head,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store persists to
func (s *Store) Path() string {
	return s.path
}

// Version returns the schema version of the loaded document
func (s *Store) Version() string {
	return s.meta.Version
}

// Now returns the store's notion of the current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Stacks returns every stack in stored order
func (s *Store) Stacks() []*Stack {
	out := make([]*Stack, len(s.meta.Stacks))
	for i := range s.meta.Stacks {
		out[i] = &s.meta.Stacks[i]
	}
	return out
}

// HasStack reports whether a stack with this name exists
func (s *Store) HasStack(name string) bool {
	_, err := s.GetStack(name)
	return err == nil
}

// HasBranch reports whether any stack tracks a branch with this name
func (s *Store) HasBranch(name string) bool {
	_, err := s.StackForBranch(name)
	return err == nil
}

// GetStack returns the stack with this name
func (s *Store) GetStack(name string) (*Stack, error) {
	for i := range s.meta.Stacks {
		if s.meta.Stacks[i].Name == name {
			return &s.meta.Stacks[i], nil
		}
	}
	return nil, zyraerrors.NewStackNotFoundError(name)
}

// StackForBranch returns the stack that tracks branchName
func (s *Store) StackForBranch(branchName string) (*Stack, error) {
	for i := range s.meta.Stacks {
		if s.meta.Stacks[i].HasBranch(branchName) {
			return &s.meta.Stacks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", zyraerrors.ErrNoStackForBranch, branchName)
}

// CurrentStack resolves the stack containing the checked out branch. While
// detached, the stack recorded in the detached context is used.
func (s *Store) CurrentStack(ctx context.Context) (*Stack, error) {
	current, err := s.head.CurrentBranch(ctx)
	if err != nil {
		if errors.Is(err, zyraerrors.ErrNotOnBranch) && s.meta.DetachedHeadContext != nil {
			return s.GetStack(s.meta.DetachedHeadContext.StackName)
		}
		return nil, err
	}
	return s.StackForBranch(current)
}

// AddStack registers a new stack. Its name and every branch name must be
// unused across the whole store.
func (s *Store) AddStack(stack *Stack) error {
	if s.HasStack(stack.Name) {
		return fmt.Errorf("%w: %s", zyraerrors.ErrStackExists, stack.Name)
	}
	for _, b := range stack.Branches {
		if s.HasBranch(b.Name) {
			return fmt.Errorf("%w: %s", zyraerrors.ErrBranchExists, b.Name)
		}
	}
	s.meta.Stacks = append(s.meta.Stacks, *stack)
	return nil
}

// AddBranch appends a branch to the named stack
func (s *Store) AddBranch(stackName string, branch StackBranch) error {
	if s.HasBranch(branch.Name) || s.HasStack(branch.Name) {
		return fmt.Errorf("%w: %s", zyraerrors.ErrBranchExists, branch.Name)
	}
	stack, err := s.GetStack(stackName)
	if err != nil {
		return err
	}
	if branch.Parent != "" && !stack.HasBranch(branch.Parent) {
		return zyraerrors.NewStateConsistencyError(stackName,
			fmt.Sprintf("parent %s of %s is not part of the stack", branch.Parent, branch.Name))
	}
	stack.AddBranch(branch)
	return nil
}

// SetCommitHash records the tip of a branch in the current stack
func (s *Store) SetCommitHash(ctx context.Context, branchName, hash string) error {
	stack, err := s.CurrentStack(ctx)
	if err != nil {
		return err
	}
	return stack.SetCommitHash(branchName, hash, s.now())
}

// SetPRID caches the pull request number of a branch in the current stack
func (s *Store) SetPRID(ctx context.Context, branchName string, id int64) error {
	stack, err := s.CurrentStack(ctx)
	if err != nil {
		return err
	}
	return stack.SetPRID(branchName, id, s.now())
}

// SetStatus changes the status of a branch in the current stack
func (s *Store) SetStatus(ctx context.Context, branchName string, status BranchStatus) error {
	stack, err := s.CurrentStack(ctx)
	if err != nil {
		return err
	}
	return stack.SetStatus(branchName, status, s.now())
}

// DetachedContext returns the recorded detached position, or nil
func (s *Store) DetachedContext() *DetachedHeadContext {
	return s.meta.DetachedHeadContext
}

// IsDetached reports whether the working tree sits on a raw commit
func (s *Store) IsDetached() bool {
	return s.meta.DetachedHeadContext != nil
}

// SetDetached records the branch a raw-commit checkout was reached from
func (s *Store) SetDetached(stackName, branchName string) {
	s.meta.DetachedHeadContext = &DetachedHeadContext{
		StackName:  stackName,
		BranchName: branchName,
	}
}

// ClearDetached forgets the detached position
func (s *Store) ClearDetached() {
	s.meta.DetachedHeadContext = nil
}
