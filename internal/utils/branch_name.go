package utils

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxBranchNameByteLength is the maximum length for a branch name
	MaxBranchNameByteLength = 234
)

var (
	// BranchNameReplaceRegex matches characters that are not valid in branch names
	// Valid characters: letters, numbers, -, _, /, .
	BranchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)

	// BranchNameIgnoreRegex matches trailing slashes and dots that should be removed
	BranchNameIgnoreRegex = regexp.MustCompile(`[/.]*$`)

	hyphenRegex = regexp.MustCompile(`-+`)
)

// SanitizeBranchName sanitizes a branch name by replacing invalid characters
func SanitizeBranchName(name string) string {
	name = BranchNameIgnoreRegex.ReplaceAllString(name, "")
	name = BranchNameReplaceRegex.ReplaceAllString(name, "-")
	name = hyphenRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if len(name) > MaxBranchNameByteLength {
		name = name[:MaxBranchNameByteLength]
		name = strings.TrimSuffix(name, "-")
	}

	return name
}

// ValidateBranchName rejects names that SanitizeBranchName would change,
// suggesting the sanitized form
func ValidateBranchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if strings.Contains(name, "..") || strings.HasPrefix(name, "/") || strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid branch name %q", name)
	}
	if sanitized := SanitizeBranchName(name); sanitized != name {
		if sanitized == "" {
			return fmt.Errorf("invalid branch name %q", name)
		}
		return fmt.Errorf("invalid branch name %q (try %q)", name, sanitized)
	}
	return nil
}
