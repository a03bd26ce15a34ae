package runtime

import (
	"context"
	"fmt"

	"zyra.dev/zyra/internal/config"
	"zyra.dev/zyra/internal/engine"
	"zyra.dev/zyra/internal/git"
	"zyra.dev/zyra/internal/github"
	"zyra.dev/zyra/internal/tui"
)

// Prompter asks the user questions. The terminal implementation lives in tui;
// tests script answers.
type Prompter interface {
	Text(title, defaultValue string) (string, error)
	Multiline(title, defaultValue string) (string, error)
	Confirm(title string, defaultValue bool) (bool, error)
	Select(title string, options []string, defaultIndex int) (string, error)
}

// Context carries every handle a command needs. Nothing here is global:
// each command builds one and passes it down.
type Context struct {
	Context  context.Context
	Store    *engine.Store
	Git      git.Runner
	Prompter Prompter
	Splog    *tui.Splog
	Config   *config.RepoConfig
	RepoRoot string

	// Set only for commands that talk to GitHub
	GitHubClient github.Client
	Repo         *github.RepoInfo
	Remote       string
}

// Options selects optional parts of the context
type Options struct {
	Verbose     bool
	NeedsGitHub bool
}

// NewContext creates a context around an existing store and executor
func NewContext(ctx context.Context, store *engine.Store, runner git.Runner) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Context:  ctx,
		Store:    store,
		Git:      runner,
		Prompter: tui.TerminalPrompter{},
		Splog:    tui.NewSplog(),
		Config:   &config.RepoConfig{},
		RepoRoot: runner.RepoRoot(),
	}
}

// GetContext opens the repository containing the working directory and loads its stacks
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	runner, err := git.OpenRepo("")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repoConfig, err := config.GetRepoConfig(runner.GitDir())
	if err != nil {
		return nil, err
	}

	splog, logErr := tui.NewSplogWithOptions(tui.SplogOptions{
		Debug:   env.DebugEnabled(),
		Verbose: opts.Verbose,
		LogFile: tui.GetLogFilePath(env.LogFile),
		Rotation: tui.LogRotation{
			MaxSize:    env.LogMaxSize,
			MaxBackups: env.LogMaxBackups,
			MaxAge:     env.LogMaxAge,
		},
	})
	if logErr != nil {
		splog.Debug("file logging disabled: %v", logErr)
	}

	store, err := engine.Load(engine.MetadataPath(runner.GitDir()), runner)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}

	c := &Context{
		Context:  ctx,
		Store:    store,
		Git:      runner,
		Prompter: tui.TerminalPrompter{Disabled: env.PromptsDisabled()},
		Splog:    splog,
		Config:   repoConfig,
		RepoRoot: runner.RepoRoot(),
	}

	if opts.NeedsGitHub {
		if err := c.connectGitHub(env); err != nil {
			_ = splog.Close()
			return nil, err
		}
	}

	return c, nil
}

// connectGitHub resolves the remote, the repository it points at and a token,
// then builds the PR client once for the whole command
func (c *Context) connectGitHub(env *config.Env) error {
	remote := c.Config.RemoteName()
	if remote == "" {
		var err error
		remote, err = c.Git.Remote(c.Context)
		if err != nil {
			return err
		}
	}

	remoteURL, err := c.Git.RemoteURL(c.Context, remote)
	if err != nil {
		return err
	}
	repo, err := github.ParseGitHubRemoteURL(remoteURL)
	if err != nil {
		return fmt.Errorf("failed to determine GitHub repository from remote %s: %w", remote, err)
	}
	host := repo.Hostname
	if override := c.Config.Host(); override != "" {
		host = override
	}

	ghRunner := git.NewCommandRunner(c.RepoRoot)
	resolver := github.TokenResolver{
		Tokens: env.Tokens(),
		GHAuthToken: func(ctx context.Context) (string, error) {
			return ghRunner.RunGH(ctx, "auth", "token")
		},
	}
	token := resolver.Resolve(c.Context)
	if token == "" {
		c.Splog.Warn("No GitHub token found; requests are anonymous. Set GITHUB_TOKEN or ZYRA_GITHUB_TOKEN")
	}

	client, err := github.NewRESTClient(c.Context, host, token)
	if err != nil {
		return err
	}

	c.Remote = remote
	c.Repo = repo
	c.GitHubClient = client
	c.Splog.Debug("using remote %s (%s/%s on %s)", remote, repo.Owner, repo.Repo, host)
	return nil
}
