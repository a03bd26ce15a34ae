package tui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"zyra.dev/zyra/internal/tui"
)

func TestSplog(t *testing.T) {
	t.Run("prints bare messages with level prefixes", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Out: &out, Err: &bytes.Buffer{}})
		require.NoError(t, err)

		splog.Info("hello %s", "world")
		splog.Warn("careful")
		splog.Error("broken")
		splog.Debug("hidden")

		require.Equal(t, "hello world\n⚠️  careful\n❌ broken\n", out.String())
	})

	t.Run("debug records go to the error writer", func(t *testing.T) {
		var out, errOut bytes.Buffer
		splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Out: &out, Err: &errOut, Debug: true})
		require.NoError(t, err)

		splog.Debug("details %d", 42)

		require.Empty(t, out.String())
		require.Contains(t, errOut.String(), "details 42")
	})

	t.Run("verbose lines are promoted with --verbose", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Out: &out, Err: &bytes.Buffer{}, Verbose: true})
		require.NoError(t, err)

		splog.Verbose("rebasing %s", "api")
		require.Equal(t, "[zyra] rebasing api\n", out.String())
	})

	t.Run("writes every record to the log file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "zyra.log")
		splog, err := tui.NewSplogWithOptions(tui.SplogOptions{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}, LogFile: logFile})
		require.NoError(t, err)

		splog.Info("visible")
		splog.Debug("only in file")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "visible")
		require.Contains(t, string(data), "only in file")
	})
}

func TestGetLogFilePath(t *testing.T) {
	require.Equal(t, "/tmp/custom.log", tui.GetLogFilePath("/tmp/custom.log"))
	require.Equal(t, "zyra.log", filepath.Base(tui.GetLogFilePath("")))
}
