package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// RepoConfigFileName is the repository config file inside the git directory
const RepoConfigFileName = ".zyra_config"

// DefaultTrunk is used when no trunk is configured
const DefaultTrunk = "main"

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Trunk      *string `json:"trunk,omitempty"`
	Remote     *string `json:"remote,omitempty"`
	Draft      *bool   `json:"draft,omitempty"`
	GitHubHost *string `json:"githubHost,omitempty"`
}

// RepoConfigPath returns the config file location for a git directory
func RepoConfigPath(gitDir string) string {
	return filepath.Join(gitDir, RepoConfigFileName)
}

// GetRepoConfig reads the repository configuration. A missing file yields defaults.
func GetRepoConfig(gitDir string) (*RepoConfig, error) {
	data, err := os.ReadFile(RepoConfigPath(gitDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// Save writes the configuration back to gitDir
func (c *RepoConfig) Save(gitDir string) error {
	configJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(RepoConfigPath(gitDir), configJSON, 0600)
}

// TrunkName returns the configured trunk, or "main"
func (c *RepoConfig) TrunkName() string {
	if c != nil && c.Trunk != nil && *c.Trunk != "" {
		return *c.Trunk
	}
	return DefaultTrunk
}

// RemoteName returns the remote override, or "" to let git pick
func (c *RepoConfig) RemoteName() string {
	if c != nil && c.Remote != nil {
		return *c.Remote
	}
	return ""
}

// DraftDefault returns the default answer for the draft prompt
func (c *RepoConfig) DraftDefault() bool {
	return c != nil && c.Draft != nil && *c.Draft
}

// Host returns the GitHub host override, or "" to use the remote's host
func (c *RepoConfig) Host() string {
	if c != nil && c.GitHubHost != nil {
		return *c.GitHubHost
	}
	return ""
}
