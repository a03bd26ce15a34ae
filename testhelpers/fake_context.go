package testhelpers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/engine"
	"zyra.dev/zyra/internal/github"
	"zyra.dev/zyra/internal/runtime"
	"zyra.dev/zyra/internal/tui"
)

// ScriptedPrompter answers prompts from queues. Text and Multiline fall back
// to the default when their queue is empty; Select fails instead so tests
// notice an unexpected prompt.
type ScriptedPrompter struct {
	Texts      []string
	Bodies     []string
	Confirms   []bool
	Selections []string

	// Asked records every prompt title in order
	Asked []string
}

var _ runtime.Prompter = (*ScriptedPrompter)(nil)

func (p *ScriptedPrompter) Text(title, defaultValue string) (string, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Texts) == 0 {
		return defaultValue, nil
	}
	v := p.Texts[0]
	p.Texts = p.Texts[1:]
	return v, nil
}

func (p *ScriptedPrompter) Multiline(title, defaultValue string) (string, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Bodies) == 0 {
		return defaultValue, nil
	}
	v := p.Bodies[0]
	p.Bodies = p.Bodies[1:]
	return v, nil
}

func (p *ScriptedPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Confirms) == 0 {
		return defaultValue, nil
	}
	v := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return v, nil
}

func (p *ScriptedPrompter) Select(title string, options []string, _ int) (string, error) {
	p.Asked = append(p.Asked, title)
	if len(p.Selections) == 0 {
		return "", fmt.Errorf("unexpected selection prompt %q among %v", title, options)
	}
	v := p.Selections[0]
	p.Selections = p.Selections[1:]
	return v, nil
}

// NewTestClock returns a clock that advances one second per call, so
// creation order is visible in timestamps.
func NewTestClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// NewFakeContext builds a runtime context over a FakeGit with an empty store
// in the fake's git dir, a silent logger and a scripted prompter.
func NewFakeContext(t *testing.T, fake *FakeGit) (*runtime.Context, *ScriptedPrompter) {
	t.Helper()

	store := engine.NewStore(engine.MetadataPath(fake.GitDir()), fake, engine.WithClock(NewTestClock()))
	ctx := runtime.NewContext(context.Background(), store, fake)

	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Out: io.Discard, Err: io.Discard})
	require.NoError(t, err)
	ctx.Splog = splog

	prompter := &ScriptedPrompter{}
	ctx.Prompter = prompter
	return ctx, prompter
}

// WithGitHub attaches a PR client and the owner/repo it serves to ctx
func WithGitHub(ctx *runtime.Context, client github.Client, owner, repo string) {
	ctx.GitHubClient = client
	ctx.Repo = &github.RepoInfo{Hostname: "github.com", Owner: owner, Repo: repo}
	ctx.Remote = "origin"
}

// TrackStack creates the fake branch root and a stack rooted at it, then adds
// each "child:parent" pair as a fake branch in the given order and saves.
func TrackStack(t *testing.T, ctx *runtime.Context, fake *FakeGit, root string, pairs ...string) {
	t.Helper()

	hash := fake.AddBranch(root)
	require.NoError(t, ctx.Store.AddStack(engine.NewStack(root, "main", hash, ctx.Store.Now())))

	for _, pair := range pairs {
		child, parent, ok := strings.Cut(pair, ":")
		require.True(t, ok, "pair %q must look like child:parent", pair)
		hash := fake.AddBranch(child)
		require.NoError(t, ctx.Store.AddBranch(root, engine.NewBranch(child, hash, parent, ctx.Store.Now())))
	}
	require.NoError(t, ctx.Store.Save())
}
