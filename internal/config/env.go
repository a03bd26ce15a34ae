package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings sourced from environment variables.
type Env struct {
	// ZyraGitHubToken takes precedence over the generic token variables.
	ZyraGitHubToken string `env:"ZYRA_GITHUB_TOKEN"`
	// GHToken is the token exported by the gh CLI.
	GHToken string `env:"GH_TOKEN"`
	// GitHubToken is the conventional CI token.
	GitHubToken string `env:"GITHUB_TOKEN"`

	// LogFile overrides the rotating log file location.
	LogFile string `env:"ZYRA_LOG_FILE"`
	// LogMaxSize is the size in megabytes before rotation.
	LogMaxSize int `env:"ZYRA_LOG_MAX_SIZE" envDefault:"10"`
	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups int `env:"ZYRA_LOG_MAX_BACKUPS" envDefault:"5"`
	// LogMaxAge is the number of days rotated files are kept.
	LogMaxAge int `env:"ZYRA_LOG_MAX_AGE" envDefault:"30"`

	// Debug and ZyraDebug enable debug output when set to any value.
	Debug     string `env:"DEBUG"`
	ZyraDebug string `env:"ZYRA_DEBUG"`

	// NonInteractive disables every prompt when set to any value.
	NonInteractive string `env:"ZYRA_NON_INTERACTIVE"`
}

// LoadEnv parses the process environment.
func LoadEnv() (*Env, error) {
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// DebugEnabled reports whether debug output was requested.
func (e *Env) DebugEnabled() bool {
	return e != nil && (e.Debug != "" || e.ZyraDebug != "")
}

// PromptsDisabled reports whether ZYRA_NON_INTERACTIVE was set.
func (e *Env) PromptsDisabled() bool {
	return e != nil && e.NonInteractive != ""
}

// Tokens returns token candidates in priority order.
func (e *Env) Tokens() []string {
	if e == nil {
		return nil
	}
	return []string{e.ZyraGitHubToken, e.GHToken, e.GitHubToken}
}
