// Command cppedit edits C++ source files in the terminal.
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	// Query the terminal background before Bubble Tea owns the input loop.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
