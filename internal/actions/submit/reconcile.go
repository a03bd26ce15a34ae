package submit

import (
	"errors"

	"zyra.dev/zyra/internal/engine"
	"zyra.dev/zyra/internal/github"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// prDetails is what the user authors for a pull request
type prDetails struct {
	Title string
	Body  string
	Draft bool
}

// reconcile makes the open PR for branchName match the local stack. An
// existing PR based on the right parent is left alone; the remote number
// always wins over the cached one.
func reconcile(ctx *runtime.Context, stackName, branchName string) error {
	client := ctx.GitHubClient
	owner, repo := ctx.Repo.Owner, ctx.Repo.Repo

	stack, err := ctx.Store.GetStack(stackName)
	if err != nil {
		return err
	}
	branch, err := stack.GetBranch(branchName)
	if err != nil {
		return err
	}

	pr, err := client.FindOpenPullRequest(ctx.Context, owner, repo, branchName)
	if err != nil {
		return err
	}

	if pr != nil {
		if int64(pr.Number) != branch.PRID {
			ctx.Splog.Verbose("caching PR #%d for %s", pr.Number, branchName)
			if err := markPending(ctx, stack, branchName, int64(pr.Number)); err != nil {
				return err
			}
		}

		if pr.Base == branch.Parent {
			ctx.Splog.Info("PR #%d for %s is up to date.", pr.Number, tui.ColorBranchName(branchName, false))
			return nil
		}

		ctx.Splog.Info("PR #%d for %s targets %s; retargeting to %s.", pr.Number, branchName, pr.Base, branch.Parent)
		details, err := askDetails(ctx, pr.Title, StripStackInfo(pr.Body), pr.Draft, false)
		if err != nil {
			return err
		}
		body := BuildPRBody(details.Body, stack.Snapshot())
		base := branch.Parent
		if err := client.UpdatePullRequest(ctx.Context, owner, repo, pr.Number, github.UpdatePROptions{
			Title: &details.Title,
			Body:  &body,
			Base:  &base,
		}); err != nil {
			return err
		}
		if err := markPending(ctx, stack, branchName, int64(pr.Number)); err != nil {
			return err
		}
		ctx.Splog.Info("Updated PR #%d: %s", pr.Number, pr.HTMLURL)
		return nil
	}

	details, err := askDetails(ctx, branchName, "", ctx.Config.DraftDefault(), true)
	if err != nil {
		return err
	}
	created, err := client.CreatePullRequest(ctx.Context, owner, repo, github.CreatePROptions{
		Title: details.Title,
		Body:  BuildPRBody(details.Body, stack.Snapshot()),
		Head:  branchName,
		Base:  branch.Parent,
		Draft: details.Draft,
	})
	if err != nil {
		return err
	}
	if err := markPending(ctx, stack, branchName, int64(created.Number)); err != nil {
		return err
	}
	ctx.Splog.Info("Created PR #%d for %s: %s", created.Number, tui.ColorBranchName(branchName, false), created.HTMLURL)
	return nil
}

// markPending caches the PR number, resets the status to Pending and saves
func markPending(ctx *runtime.Context, stack *engine.Stack, branchName string, prID int64) error {
	now := ctx.Store.Now()
	if err := stack.SetPRID(branchName, prID, now); err != nil {
		return err
	}
	if err := stack.SetStatus(branchName, engine.StatusPending, now); err != nil {
		return err
	}
	return ctx.Store.Save()
}

// askDetails prompts for title, body and, for new PRs, the draft flag. When
// prompting is disabled the defaults are used as they are.
func askDetails(ctx *runtime.Context, title, body string, draft, askDraft bool) (prDetails, error) {
	details := prDetails{Title: title, Body: body, Draft: draft}

	var err error
	if details.Title, err = ctx.Prompter.Text("Title", title); err != nil {
		return nonInteractive(ctx, prDetails{Title: title, Body: body, Draft: draft}, err)
	}
	if details.Body, err = ctx.Prompter.Multiline("Body", body); err != nil {
		return nonInteractive(ctx, prDetails{Title: title, Body: body, Draft: draft}, err)
	}
	if askDraft {
		if details.Draft, err = ctx.Prompter.Confirm("Create as draft?", draft); err != nil {
			return nonInteractive(ctx, prDetails{Title: title, Body: body, Draft: draft}, err)
		}
	}
	if details.Title == "" {
		details.Title = title
	}
	return details, nil
}

func nonInteractive(ctx *runtime.Context, defaults prDetails, err error) (prDetails, error) {
	if errors.Is(err, tui.ErrInteractiveDisabled) {
		ctx.Splog.Debug("prompts disabled, using title %q", defaults.Title)
		return defaults, nil
	}
	return prDetails{}, err
}
