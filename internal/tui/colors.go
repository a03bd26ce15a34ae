package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	branchStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	currentBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	stackStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	hashStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	redStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// ColorBranchName colors a branch name, highlighting the checked out one
func ColorBranchName(name string, current bool) string {
	if current {
		return currentBranchStyle.Render(name)
	}
	return branchStyle.Render(name)
}

// ColorStackName colors a stack name
func ColorStackName(name string) string {
	return stackStyle.Render(name)
}

// ColorHash colors a commit hash
func ColorHash(hash string) string {
	return hashStyle.Render(hash)
}

// ColorDim renders secondary text
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return redStyle.Render(text)
}
