package utils

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether both stdin and stdout are attached to a terminal
func IsTerminal() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
