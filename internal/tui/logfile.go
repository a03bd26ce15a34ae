package tui

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
)

// GetLogFilePath returns the path to the log file.
// An explicit override wins; otherwise ~/.zyra/logs/zyra.log
func GetLogFilePath(override string) string {
	if override != "" {
		return override
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "zyra.log"
	}

	return filepath.Join(homeDir, ".zyra", "logs", "zyra.log")
}

// isTerminalWriter reports whether w is a terminal, so colors make sense
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
