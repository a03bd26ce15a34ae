package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// RESTClient implements Client using the GitHub REST API
type RESTClient struct {
	client *github.Client
}

// NewRESTClient creates a client for hostname. An empty token yields an
// anonymous client, which can read public repositories only.
func NewRESTClient(ctx context.Context, hostname, token string) (*RESTClient, error) {
	client, err := createGitHubClient(ctx, hostname, token)
	if err != nil {
		return nil, err
	}
	return &RESTClient{client: client}, nil
}

// WrapClient adapts an already configured go-github client
func WrapClient(client *github.Client) *RESTClient {
	return &RESTClient{client: client}
}

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = github.NewClient(nil)
	}

	if hostname == "" || hostname == "github.com" {
		return client, nil
	}

	// GitHub Enterprise: REST API lives under https://hostname/api/v3/
	baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
	}
	uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
	}
	client.BaseURL = baseURL
	client.UploadURL = uploadURL

	return client, nil
}

// FindOpenPullRequest lists open pull requests filtered by owner:head and
// returns the first whose head ref matches
func (c *RESTClient) FindOpenPullRequest(ctx context.Context, owner, repo, head string) (*PullRequestInfo, error) {
	prs, _, err := c.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", owner, head),
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("failed to list pull requests for %s: %w", head, err))
	}

	for _, pr := range prs {
		if pr.Head == nil {
			continue
		}
		if pr.Head.GetRef() == head || strings.HasSuffix(pr.Head.GetLabel(), ":"+head) {
			return toPullRequestInfo(pr), nil
		}
	}
	return nil, nil
}

// CreatePullRequest creates a new pull request
func (c *RESTClient) CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}

	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	createdPR, _, err := c.client.PullRequests.Create(ctx, owner, repo, pr)
	if err != nil {
		return nil, mapError(fmt.Errorf("failed to create pull request: %w", err))
	}

	return toPullRequestInfo(createdPR), nil
}

// UpdatePullRequest updates an existing pull request
func (c *RESTClient) UpdatePullRequest(ctx context.Context, owner, repo string, prNumber int, opts UpdatePROptions) error {
	update := &github.PullRequest{
		Title: opts.Title,
		Body:  opts.Body,
	}
	if opts.Base != nil {
		update.Base = &github.PullRequestBranch{
			Ref: opts.Base,
		}
	}

	_, _, err := c.client.PullRequests.Edit(ctx, owner, repo, prNumber, update)
	if err != nil {
		return mapError(fmt.Errorf("failed to update pull request #%d: %w", prNumber, err))
	}
	return nil
}

// toPullRequestInfo converts a github.PullRequest to PullRequestInfo
func toPullRequestInfo(pr *github.PullRequest) *PullRequestInfo {
	if pr == nil {
		return nil
	}

	info := &PullRequestInfo{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		Draft:   pr.GetDraft(),
	}
	if pr.Base != nil {
		info.Base = pr.Base.GetRef()
	}
	if pr.Head != nil {
		info.Head = pr.Head.GetRef()
	}

	return info
}
