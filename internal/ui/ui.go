// Package ui provides the terminal styling for command output.
//
// Styling degrades gracefully: when stdout is not a terminal, or the
// terminal reports no color support, every helper returns its input
// unchanged so piped output stays plain.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// colorEnabled reports whether stdout can render styled output.
func colorEnabled() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

func render(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

// Success styles a completed-action line.
func Success(s string) string { return render(successStyle, s) }

// Warn styles a warning line.
func Warn(s string) string { return render(warnStyle, s) }

// Error styles an error line.
func Error(s string) string { return render(errorStyle, s) }

// Accent styles an emphasized value such as a file or format name.
func Accent(s string) string { return render(accentStyle, s) }

// Muted styles low-priority detail such as skip reasons.
func Muted(s string) string { return render(mutedStyle, s) }
