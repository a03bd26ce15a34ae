package submit_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/actions/submit"
	"zyra.dev/zyra/internal/engine"
)

func TestBuildPRBody(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	branch := func(name string, status engine.BranchStatus, pr int64) engine.StackBranch {
		b := engine.NewBranch(name, "", "", now)
		b.Status = status
		b.PRID = pr
		return b
	}

	t.Run("one line per branch with its status glyph", func(t *testing.T) {
		body := submit.BuildPRBody("Adds the API.", []engine.StackBranch{
			branch("feat", engine.StatusPending, engine.NoPR),
			branch("api", engine.StatusMerged, 12),
			branch("ui", engine.StatusConflict, engine.NoPR),
		})

		require.Equal(t, "Adds the API.\n\n### Stack Information\nThis PR is part of a stack of branches:\n"+
			"\n- ⏳ feat"+
			"\n- ✅ api (PR #12)"+
			"\n- ❌ ui", body)

		var bullets []string
		for _, line := range strings.Split(body, "\n") {
			if strings.HasPrefix(line, "- ") {
				bullets = append(bullets, line)
			}
		}
		require.Len(t, bullets, 3)
	})

	t.Run("testing branches get the test tube", func(t *testing.T) {
		body := submit.BuildPRBody("", []engine.StackBranch{branch("qa", engine.StatusTesting, engine.NoPR)})
		require.True(t, strings.HasSuffix(body, "\n- 🧪 qa"))
	})

	t.Run("no branches leaves the body alone", func(t *testing.T) {
		require.Equal(t, "plain", submit.BuildPRBody("plain", nil))
	})

	t.Run("regenerating replaces the previous section", func(t *testing.T) {
		first := submit.BuildPRBody("text", []engine.StackBranch{branch("a", engine.StatusPending, engine.NoPR)})
		second := submit.BuildPRBody(first, []engine.StackBranch{branch("a", engine.StatusMerged, 3)})

		require.Equal(t, 1, strings.Count(second, "### Stack Information"))
		require.Contains(t, second, "- ✅ a (PR #3)")
		require.Equal(t, "text", submit.StripStackInfo(second))
	})
}
