package github

import (
	"fmt"
	"strings"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Supports both github.com and GitHub Enterprise URLs
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, path string

	switch {
	case strings.Contains(remoteURL, "://"):
		// ssh://git@host[:port]/owner/repo, https://host/owner/repo
		rest := remoteURL[strings.Index(remoteURL, "://")+3:]
		if at := strings.Index(rest, "@"); at >= 0 && at < strings.Index(rest+"/", "/") {
			rest = rest[at+1:]
		}
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid remote URL %q: must be protocol://hostname/owner/repo", remoteURL)
		}
		hostname = parts[0]
		if colon := strings.Index(hostname, ":"); colon >= 0 {
			hostname = hostname[:colon]
		}
		path = parts[1]
	case strings.Contains(remoteURL, "@"):
		// git@hostname:owner/repo
		hostAndPath := strings.SplitN(remoteURL, "@", 2)[1]
		sep := strings.IndexAny(hostAndPath, ":/")
		if sep < 0 {
			return nil, fmt.Errorf("invalid SSH remote URL %q: missing path", remoteURL)
		}
		hostname = hostAndPath[:sep]
		path = hostAndPath[sep+1:]
	default:
		return nil, fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(pathParts) < 2 {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}
	owner := pathParts[len(pathParts)-2]
	repo := pathParts[len(pathParts)-1]

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL %q", remoteURL)
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    owner,
		Repo:     repo,
	}, nil
}
