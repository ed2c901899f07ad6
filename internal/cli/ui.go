package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorGray  = lipgloss.Color("245") // Gray - secondary text
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleDetail  = lipgloss.NewStyle().Foreground(colorGray)
)

// printSuccess prints a green confirmation line to stderr, keeping stdout
// free for the JSON payload.
func printSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleSuccess.Render("✓ "+fmt.Sprintf(format, args...)))
}

// printError prints a red error line to stderr.
func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleError.Render("✗ "+fmt.Sprintf(format, args...)))
}

// printDetail prints a dimmed secondary line to stderr.
func printDetail(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleDetail.Render("  "+fmt.Sprintf(format, args...)))
}
