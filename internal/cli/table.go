// Package cli provides table helpers for human-readable output.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/palette/internal/theme"
)

const tablePadding = 2

// writeTable aligns columns by visible width so colored status labels and
// swatches line up with plain cells.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for _, row := range all {
		var b strings.Builder
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+tablePadding))
			}
		}
		if _, err := fmt.Fprintln(out, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f:1", ratio)
}

// formatColor renders color as a swatch when requested and colors are on.
func formatColor(color string, swatch bool) string {
	if swatch && colorEnabled() {
		return theme.RenderSwatch(color)
	}
	return color
}
