// Package cli provides status formatting helpers.
package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/palette/internal/palette"
)

const (
	colorGreen  = "2"
	colorRed    = "1"
	colorYellow = "3"
)

func colorize(text, color string) string {
	if !colorEnabled() {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

func colorEnabled() bool {
	if noColor || IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return true
}

// formatAdjustment labels a derived color: OK when it passed untouched,
// FIXED when it was adjusted into AA, FAIL when AA was out of reach.
func formatAdjustment(adj palette.Adjustment) string {
	switch {
	case !adj.Resolved:
		return colorize("FAIL", colorRed)
	case adj.Adjusted():
		return colorize("FIXED", colorYellow)
	default:
		return colorize("OK", colorGreen)
	}
}

func formatPass(pass bool) string {
	if pass {
		return colorize("pass", colorGreen)
	}
	return colorize("fail", colorRed)
}
