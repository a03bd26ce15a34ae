// Package tui is the terminal surface of zyra.
//
// It covers prompts (bubbletea models plus survey for multi-line input),
// the Splog logger that writes user-facing lines and the rotating debug log,
// lipgloss colors, and the list, graph and machine-readable stack views.
package tui
