package engine

import (
	"fmt"
	"time"
)

// CurrentVersion is the schema version written to new metadata documents
const CurrentVersion = "0.1.0"

// NoPR is the sentinel PR identifier for a branch without a pull request
const NoPR int64 = -1

// BranchStatus is the lifecycle state of a branch's change
type BranchStatus string

const (
	// StatusPending means the change is open or not yet submitted
	StatusPending BranchStatus = "Pending"
	// StatusMerged means the change has landed
	StatusMerged BranchStatus = "Merged"
	// StatusConflict means the branch needs manual conflict resolution
	StatusConflict BranchStatus = "Conflict"
	// StatusTesting means the change is under test
	StatusTesting BranchStatus = "Testing"
)

// Glyph returns the marker used for the status in pull request bodies
func (s BranchStatus) Glyph() string {
	switch s {
	case StatusMerged:
		return "✅"
	case StatusConflict:
		return "❌"
	case StatusTesting:
		return "🧪"
	default:
		return "⏳"
	}
}

// Valid reports whether s is one of the known statuses
func (s BranchStatus) Valid() bool {
	switch s {
	case StatusPending, StatusMerged, StatusConflict, StatusTesting:
		return true
	}
	return false
}

// UnmarshalText accepts only known statuses
func (s *BranchStatus) UnmarshalText(text []byte) error {
	v := BranchStatus(text)
	if v == "" {
		v = StatusPending
	}
	if !v.Valid() {
		return fmt.Errorf("unknown branch status %q", string(text))
	}
	*s = v
	return nil
}

// StackBranch is one tracked branch within a stack
type StackBranch struct {
	Name       string       `json:"name"`
	CommitHash string       `json:"commit_hash"`
	PRID       int64        `json:"pr_id"`
	Status     BranchStatus `json:"status"`
	Parent     string       `json:"parent"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// IsRoot reports whether the branch has no parent
func (b StackBranch) IsRoot() bool {
	return b.Parent == ""
}

// HasPR reports whether a pull request identifier is cached for the branch
func (b StackBranch) HasPR() bool {
	return b.PRID > 0
}

// ShortHash returns the first seven characters of the commit hash
func (b StackBranch) ShortHash() string {
	if len(b.CommitHash) > 7 {
		return b.CommitHash[:7]
	}
	return b.CommitHash
}

// Stack is a named tree of branches forked from a base branch
type Stack struct {
	Name       string        `json:"name"`
	BaseBranch string        `json:"base_branch"`
	Branches   []StackBranch `json:"branches"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// DetachedHeadContext records the branch a raw-commit checkout was reached from
type DetachedHeadContext struct {
	StackName  string `json:"stack_name"`
	BranchName string `json:"branch_name"`
}

// Metadata is the persisted document holding every stack
type Metadata struct {
	Stacks              []Stack              `json:"stacks"`
	Version             string               `json:"version"`
	DetachedHeadContext *DetachedHeadContext `json:"detached_head_context,omitempty"`
}
