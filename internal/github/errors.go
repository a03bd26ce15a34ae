package github

import (
	"errors"
	"net/http"

	"github.com/google/go-github/v62/github"

	zyraerrors "zyra.dev/zyra/internal/errors"
)

// mapError translates go-github transport failures into GitHubError kinds.
// Nothing here retries; the caller reports and stops.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return zyraerrors.NewGitHubError(zyraerrors.GitHubRateLimited, statusOf(rateErr.Response), err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return zyraerrors.NewGitHubError(zyraerrors.GitHubRateLimited, statusOf(abuseErr.Response), err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		status := statusOf(respErr.Response)
		switch status {
		case http.StatusUnauthorized:
			return zyraerrors.NewGitHubError(zyraerrors.GitHubUnauthorized, status, err)
		case http.StatusNotFound:
			return zyraerrors.NewGitHubError(zyraerrors.GitHubNotFound, status, err)
		case http.StatusForbidden, http.StatusTooManyRequests:
			return zyraerrors.NewGitHubError(zyraerrors.GitHubRateLimited, status, err)
		default:
			return zyraerrors.NewGitHubError(zyraerrors.GitHubRequestFailed, status, err)
		}
	}

	return zyraerrors.NewGitHubError(zyraerrors.GitHubRequestFailed, 0, err)
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
