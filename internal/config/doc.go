// Package config manages zyra configuration.
//
// It handles:
//   - Repository-specific configuration stored in the git directory
//   - Environment variables (tokens, logging, interactivity)
package config
