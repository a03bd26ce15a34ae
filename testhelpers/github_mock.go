package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"

	githubpkg "zyra.dev/zyra/internal/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// PRs maps head branch names to open PRs returned by the list endpoint
	PRs map[string]*github.PullRequest
	// CreatedPRs stores PRs that were created
	CreatedPRs []*github.PullRequest
	// UpdatedPRs stores the latest edit per PR number
	UpdatedPRs map[int]*github.PullRequest
	// ErrorStatus forces a status code for a method ("GET", "POST", "PATCH")
	ErrorStatus map[string]int
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu            sync.Mutex
	mutatingCalls int
	nextNumber    int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		PRs:         make(map[string]*github.PullRequest),
		CreatedPRs:  make([]*github.PullRequest, 0),
		UpdatedPRs:  make(map[int]*github.PullRequest),
		ErrorStatus: make(map[string]int),
		Owner:       "owner",
		Repo:        "repo",
	}
}

// AddOpenPR registers an open PR for head targeting base
func (c *MockGitHubServerConfig) AddOpenPR(number int, head, base string) *github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	pr := &github.PullRequest{
		Number:  github.Int(number),
		Title:   github.String(head),
		State:   github.String("open"),
		Head:    &github.PullRequestBranch{Ref: github.String(head), Label: github.String(c.Owner + ":" + head)},
		Base:    &github.PullRequestBranch{Ref: github.String(base)},
		HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.Owner, c.Repo, number)),
	}
	c.PRs[head] = pr
	if number >= c.nextNumber {
		c.nextNumber = number
	}
	return pr
}

// MutatingCalls returns how many create/edit requests reached the server
func (c *MockGitHubServerConfig) MutatingCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mutatingCalls
}

// NewMockGitHubServer creates an httptest server that mocks GitHub pull request endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"

	handler := func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()

		if r.Method != http.MethodGet {
			config.mutatingCalls++
		}
		if status, ok := config.ErrorStatus[r.Method]; ok {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}

		switch {
		case r.URL.Path == basePath && r.Method == http.MethodGet:
			config.handleList(w, r)
		case r.URL.Path == basePath && r.Method == http.MethodPost:
			config.handleCreate(w, r)
		case strings.HasPrefix(r.URL.Path, basePath+"/") && r.Method == http.MethodPatch:
			number, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, basePath+"/"))
			if err != nil {
				http.Error(w, "invalid PR number", http.StatusBadRequest)
				return
			}
			config.handleEdit(w, r, number)
		default:
			http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(basePath, handler)
	mux.HandleFunc(basePath+"/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (c *MockGitHubServerConfig) handleList(w http.ResponseWriter, r *http.Request) {
	head := r.URL.Query().Get("head")
	branchName := strings.TrimPrefix(head, c.Owner+":")

	pr, exists := c.PRs[branchName]
	if !exists || (pr.State != nil && *pr.State != "open") {
		writeJSON(w, http.StatusOK, []*github.PullRequest{})
		return
	}
	writeJSON(w, http.StatusOK, []*github.PullRequest{pr})
}

func (c *MockGitHubServerConfig) handleCreate(w http.ResponseWriter, r *http.Request) {
	var newPR github.NewPullRequest
	if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.nextNumber++
	number := c.nextNumber
	pr := &github.PullRequest{
		Number:  github.Int(number),
		Title:   newPR.Title,
		Body:    newPR.Body,
		State:   github.String("open"),
		Head:    &github.PullRequestBranch{Ref: newPR.Head, Label: github.String(c.Owner + ":" + newPR.GetHead())},
		Base:    &github.PullRequestBranch{Ref: newPR.Base},
		Draft:   newPR.Draft,
		HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.Owner, c.Repo, number)),
	}

	c.CreatedPRs = append(c.CreatedPRs, pr)
	c.PRs[newPR.GetHead()] = pr
	writeJSON(w, http.StatusCreated, pr)
}

func (c *MockGitHubServerConfig) handleEdit(w http.ResponseWriter, r *http.Request, number int) {
	// The API sends base as a plain string, not {"ref": ...}
	var update struct {
		Title *string `json:"title,omitempty"`
		Body  *string `json:"body,omitempty"`
		Base  *string `json:"base,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pr := &github.PullRequest{Number: github.Int(number), Base: &github.PullRequestBranch{}}
	for _, known := range c.PRs {
		if known.GetNumber() == number {
			copied := *known
			if known.Base != nil {
				base := *known.Base
				copied.Base = &base
			}
			pr = &copied
			break
		}
	}
	if pr.Base == nil {
		pr.Base = &github.PullRequestBranch{}
	}

	if update.Title != nil {
		pr.Title = update.Title
	}
	if update.Body != nil {
		pr.Body = update.Body
	}
	if update.Base != nil {
		pr.Base.Ref = update.Base
	}

	c.UpdatedPRs[number] = pr
	if pr.Head != nil && pr.Head.Ref != nil {
		c.PRs[*pr.Head.Ref] = pr
	}
	writeJSON(w, http.StatusOK, pr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMockGitHubClient creates a PR client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) githubpkg.Client {
	t.Helper()
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL
	return githubpkg.WrapClient(client)
}
