package git

import (
	"context"
	"fmt"
	"slices"
)

// Remote picks the remote to push to: the only remote if there is one,
// otherwise origin, otherwise the first listed.
func (r *repoRunner) Remote(ctx context.Context) (string, error) {
	out, err := r.cmd.Run(ctx, "remote")
	if err != nil {
		return "", fmt.Errorf("failed to list remotes: %w", err)
	}
	return PickRemote(splitLines(out))
}

// PickRemote applies the remote selection rule to a list of remote names
func PickRemote(remotes []string) (string, error) {
	switch {
	case len(remotes) == 0:
		return "", fmt.Errorf("no git remote found")
	case len(remotes) == 1:
		return remotes[0], nil
	case slices.Contains(remotes, "origin"):
		return "origin", nil
	default:
		return remotes[0], nil
	}
}

// RemoteURL returns the fetch URL of a remote
func (r *repoRunner) RemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := r.cmd.Run(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to get url of remote %s: %w", remote, err)
	}
	return out, nil
}
