// Package branch provides CLI commands that create branches and drive rebases.
package branch
