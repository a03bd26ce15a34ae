package submit

import (
	"fmt"
	"strings"

	"zyra.dev/zyra/internal/engine"
)

const stackInfoHeading = "\n\n### Stack Information\nThis PR is part of a stack of branches:\n"

// BuildPRBody appends a status line per branch, in stored order, to the
// human-written body. A previously generated section is replaced.
func BuildPRBody(body string, branches []engine.StackBranch) string {
	body = StripStackInfo(body)
	if len(branches) == 0 {
		return body
	}

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString(stackInfoHeading)
	for _, b := range branches {
		fmt.Fprintf(&sb, "\n- %s %s", b.Status.Glyph(), b.Name)
		if b.HasPR() {
			fmt.Fprintf(&sb, " (PR #%d)", b.PRID)
		}
	}
	return sb.String()
}

// StripStackInfo removes the generated stack section from a PR body
func StripStackInfo(body string) string {
	if i := strings.Index(body, stackInfoHeading); i >= 0 {
		return body[:i]
	}
	return body
}
