package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"zyra.dev/zyra/internal/engine"
)

const (
	// CurrentBranchSymbol marks the checked out branch
	CurrentBranchSymbol = "●"
	// BranchSymbol marks every other branch
	BranchSymbol = "○"
)

// OutputFormat selects how a stack is printed
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json or yaml)", s)
	}
}

// StackSummary is the structured form of a stack
type StackSummary struct {
	Stack    string          `json:"stack" yaml:"stack"`
	Branches []BranchSummary `json:"branches" yaml:"branches"`
}

// BranchSummary is one branch within a StackSummary
type BranchSummary struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Commit string `json:"commit" yaml:"commit"`
}

// Summarize lists every branch in stored order
func Summarize(stack *engine.Stack) StackSummary {
	summary := StackSummary{Stack: stack.Name, Branches: make([]BranchSummary, 0, len(stack.Branches))}
	for _, b := range stack.Branches {
		summary.Branches = append(summary.Branches, BranchSummary{
			Name:   b.Name,
			Status: string(b.Status),
			Commit: b.ShortHash(),
		})
	}
	return summary
}

// MarshalStack renders the summary as json or yaml
func MarshalStack(stack *engine.Stack, format OutputFormat) (string, error) {
	summary := Summarize(stack)
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode stack: %w", err)
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := yaml.Marshal(summary)
		if err != nil {
			return "", fmt.Errorf("failed to encode stack: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("format %q is not structured", format)
	}
}

func branchLine(b engine.StackBranch, current string) (marker, label string) {
	marker = ColorDim(BranchSymbol)
	if b.Name == current {
		marker = CurrentBranchSymbol
	}
	label = fmt.Sprintf("%s %s", ColorBranchName(b.Name, b.Name == current), ColorHash("["+b.ShortHash()+"]"))
	if b.Status != engine.StatusPending {
		label += fmt.Sprintf(" %s %s", b.Status.Glyph(), b.Status)
	}
	return marker, label
}

// RenderStackList shows the path from the root down to current
func RenderStackList(stack *engine.Stack, current string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stack: %s\n", ColorStackName(stack.Name)))

	path := stack.Ancestry(current)
	for i, b := range path {
		marker, label := branchLine(b, current)
		sb.WriteString(fmt.Sprintf("   %s %s\n", marker, label))
		if i < len(path)-1 {
			sb.WriteString("   │\n")
		}
	}
	return sb.String()
}

// RenderStackGraph draws the whole tree with box-drawing connectors
func RenderStackGraph(stack *engine.Stack, current string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stack: %s\n", ColorStackName(stack.Name)))

	root, err := stack.Root()
	if err != nil {
		sb.WriteString(ColorRed(err.Error()) + "\n")
		return sb.String()
	}

	var walk func(b engine.StackBranch, prefix string, last bool, isRoot bool)
	walk = func(b engine.StackBranch, prefix string, last bool, isRoot bool) {
		marker, label := branchLine(b, current)
		connector := "├── "
		if last {
			connector = "└── "
		}
		if isRoot {
			connector = ""
			label += ColorDim(" (root)")
		}
		sb.WriteString(fmt.Sprintf("%s %s%s%s\n", marker, prefix, connector, label))

		childPrefix := prefix
		if !isRoot {
			if last {
				childPrefix += "    "
			} else {
				childPrefix += "│   "
			}
		}
		children := stack.Children(b.Name)
		for i, child := range children {
			walk(child, childPrefix, i == len(children)-1, false)
		}
	}
	walk(*root, "", true, true)

	return sb.String()
}

// RenderSimple joins branch names in stored order: a ➜ b ➜ c
func RenderSimple(stack *engine.Stack) string {
	names := make([]string, 0, len(stack.Branches))
	for _, b := range stack.Branches {
		names = append(names, b.Name)
	}
	return strings.Join(names, " ➜ ")
}
