// Package navigation provides CLI commands for moving between branches of a stack.
package navigation
