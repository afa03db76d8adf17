package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styles holds the lipgloss styles used for text-format output, grounded in
// DanielLaubacher-gogrep/internal/output/color.go's Styles/NewStyles split
// between a colored and a plain variant (color only applies on a terminal).
type styles struct {
	Header lipgloss.Style
	Weight lipgloss.Style
}

func newStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		Weight: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

func noStyles() styles {
	return styles{
		Header: lipgloss.NewStyle(),
		Weight: lipgloss.NewStyle(),
	}
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
