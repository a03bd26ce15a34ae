package engine

import (
	"slices"
	"sort"
	"time"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// NewBranch creates a pending branch without a pull request
func NewBranch(name, commitHash, parent string, now time.Time) StackBranch {
	return StackBranch{
		Name:       name,
		CommitHash: commitHash,
		PRID:       NoPR,
		Status:     StatusPending,
		Parent:     parent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewStack creates a stack whose root branch shares the stack's name
func NewStack(name, baseBranch, rootCommit string, now time.Time) *Stack {
	return &Stack{
		Name:       name,
		BaseBranch: baseBranch,
		Branches:   []StackBranch{NewBranch(name, rootCommit, "", now)},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddBranch appends a branch in insertion order. Name uniqueness is the
// caller's responsibility (see Store.AddBranch).
func (s *Stack) AddBranch(branch StackBranch) {
	s.Branches = append(s.Branches, branch)
	s.touch(branch.CreatedAt)
}

// RemoveBranch drops a branch and keeps the stored order of the rest.
// Children of the removed branch are left pointing at it.
func (s *Stack) RemoveBranch(name string, now time.Time) error {
	idx := s.IndexOf(name)
	if idx < 0 {
		return zyraerrors.NewBranchNotFoundError(name)
	}
	s.Branches = slices.Delete(s.Branches, idx, idx+1)
	s.touch(now)
	return nil
}

// IndexOf returns the position of a branch in stored order, or -1
func (s *Stack) IndexOf(name string) int {
	for i := range s.Branches {
		if s.Branches[i].Name == name {
			return i
		}
	}
	return -1
}

// HasBranch reports whether the stack tracks a branch with this name
func (s *Stack) HasBranch(name string) bool {
	return s.IndexOf(name) >= 0
}

// GetBranch returns the branch with this name
func (s *Stack) GetBranch(name string) (*StackBranch, error) {
	idx := s.IndexOf(name)
	if idx < 0 {
		return nil, zyraerrors.NewBranchNotFoundError(name)
	}
	return &s.Branches[idx], nil
}

// Root returns the parentless branch of the stack
func (s *Stack) Root() (*StackBranch, error) {
	var root *StackBranch
	for i := range s.Branches {
		if !s.Branches[i].IsRoot() {
			continue
		}
		if root != nil {
			return nil, zyraerrors.NewStateConsistencyError(s.Name, "more than one root branch")
		}
		root = &s.Branches[i]
	}
	if root == nil {
		return nil, zyraerrors.NewStateConsistencyError(s.Name, "no root branch")
	}
	return root, nil
}

// Children returns the branches whose parent is parentName, oldest first.
// Ties keep insertion order, so repeated calls agree.
func (s *Stack) Children(parentName string) []StackBranch {
	var children []StackBranch
	for _, b := range s.Branches {
		if b.Parent == parentName && b.Name != parentName {
			children = append(children, b)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].CreatedAt.Before(children[j].CreatedAt)
	})
	return children
}

// ChildNames returns the names of Children(parentName)
func (s *Stack) ChildNames(parentName string) []string {
	children := s.Children(parentName)
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name
	}
	return names
}

// Adjacency maps every parent name to its children in stored order. Roots
// are listed under the empty key.
func (s *Stack) Adjacency() map[string][]string {
	adj := make(map[string][]string, len(s.Branches))
	for _, b := range s.Branches {
		adj[b.Parent] = append(adj[b.Parent], b.Name)
	}
	return adj
}

// Ancestry returns the path from the root down to name. A parent that does
// not exist in the stack ends the walk, so the path starts at the last
// resolvable branch instead of failing.
func (s *Stack) Ancestry(name string) []StackBranch {
	byName := make(map[string]int, len(s.Branches))
	for i, b := range s.Branches {
		byName[b.Name] = i
	}

	var path []StackBranch
	seen := make(map[string]bool)
	current := name
	for current != "" && !seen[current] {
		idx, ok := byName[current]
		if !ok {
			break
		}
		seen[current] = true
		path = append(path, s.Branches[idx])
		current = s.Branches[idx].Parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Snapshot returns a copy of the branch list that later mutations do not affect
func (s *Stack) Snapshot() []StackBranch {
	out := make([]StackBranch, len(s.Branches))
	copy(out, s.Branches)
	return out
}

// SetCommitHash records the last known tip of a branch
func (s *Stack) SetCommitHash(name, hash string, now time.Time) error {
	return s.updateBranch(name, now, func(b *StackBranch) {
		b.CommitHash = hash
	})
}

// SetPRID caches the pull request number of a branch
func (s *Stack) SetPRID(name string, id int64, now time.Time) error {
	return s.updateBranch(name, now, func(b *StackBranch) {
		b.PRID = id
	})
}

// SetStatus changes the status of a branch
func (s *Stack) SetStatus(name string, status BranchStatus, now time.Time) error {
	return s.updateBranch(name, now, func(b *StackBranch) {
		b.Status = status
	})
}

// updateBranch is the single write path for branch fields
func (s *Stack) updateBranch(name string, now time.Time, fn func(*StackBranch)) error {
	b, err := s.GetBranch(name)
	if err != nil {
		return err
	}
	fn(b)
	b.UpdatedAt = now
	s.touch(now)
	return nil
}

func (s *Stack) touch(now time.Time) {
	if now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}
