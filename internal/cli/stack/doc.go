// Package stack provides CLI commands for operating on entire stacks.
package stack
