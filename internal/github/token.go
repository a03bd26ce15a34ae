package github

import (
	"context"
	"strings"
)

// TokenResolver finds a GitHub token. Explicit tokens are tried in order,
// then the gh CLI.
type TokenResolver struct {
	// Tokens holds candidate values in priority order; empty entries are skipped
	Tokens []string
	// GHAuthToken runs `gh auth token`; nil disables the fallback
	GHAuthToken func(ctx context.Context) (string, error)
}

// Resolve returns the first available token, or "" for anonymous access
func (r TokenResolver) Resolve(ctx context.Context) string {
	for _, token := range r.Tokens {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}

	if r.GHAuthToken == nil {
		return ""
	}
	out, err := r.GHAuthToken(ctx)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
