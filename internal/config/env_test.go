package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/config"
)

func TestLoadEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"DEBUG", "ZYRA_DEBUG", "ZYRA_NON_INTERACTIVE"} {
			t.Setenv(key, "")
		}
		env, err := config.LoadEnv()
		require.NoError(t, err)
		require.Equal(t, 10, env.LogMaxSize)
		require.Equal(t, 5, env.LogMaxBackups)
		require.Equal(t, 30, env.LogMaxAge)
		require.False(t, env.DebugEnabled())
		require.False(t, env.PromptsDisabled())
	})

	t.Run("token candidates keep their priority", func(t *testing.T) {
		t.Setenv("ZYRA_GITHUB_TOKEN", "zyra")
		t.Setenv("GH_TOKEN", "gh")
		t.Setenv("GITHUB_TOKEN", "github")
		env, err := config.LoadEnv()
		require.NoError(t, err)
		require.Equal(t, []string{"zyra", "gh", "github"}, env.Tokens())
	})

	t.Run("debug and non-interactive flags", func(t *testing.T) {
		t.Setenv("ZYRA_DEBUG", "1")
		t.Setenv("ZYRA_NON_INTERACTIVE", "true")
		env, err := config.LoadEnv()
		require.NoError(t, err)
		require.True(t, env.DebugEnabled())
		require.True(t, env.PromptsDisabled())
	})

	t.Run("non-interactive accepts any value", func(t *testing.T) {
		for _, value := range []string{"yes", "on", "1"} {
			t.Setenv("ZYRA_NON_INTERACTIVE", value)
			env, err := config.LoadEnv()
			require.NoError(t, err, value)
			require.True(t, env.PromptsDisabled(), value)
		}
	})

	t.Run("invalid numbers are rejected", func(t *testing.T) {
		t.Setenv("ZYRA_LOG_MAX_SIZE", "lots")
		_, err := config.LoadEnv()
		require.Error(t, err)
	})
}
