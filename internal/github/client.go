// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"
)

// PullRequestInfo contains information about a pull request
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	HTMLURL string
	Title   string
	Body    string
	State   string
	Draft   bool
	Base    string
	Head    string
}

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// UpdatePROptions contains options for updating a pull request.
// Nil fields are left untouched.
type UpdatePROptions struct {
	Title *string
	Body  *string
	Base  *string
}

// Client is an interface for GitHub API interactions
type Client interface {
	// FindOpenPullRequest returns the open pull request whose head is the given branch, or nil
	FindOpenPullRequest(ctx context.Context, owner, repo, head string) (*PullRequestInfo, error)

	// CreatePullRequest creates a new pull request
	CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error)

	// UpdatePullRequest updates an existing pull request
	UpdatePullRequest(ctx context.Context, owner, repo string, prNumber int, opts UpdatePROptions) error
}
