// Package cli provides the contrast check command.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/palette/internal/colors"
)

func init() {
	rootCmd.AddCommand(contrastCmd)
}

var contrastCmd = &cobra.Command{
	Use:   "contrast FOREGROUND BACKGROUND",
	Short: "Check WCAG contrast between two colors",
	Long:  "Report the contrast ratio of two colors and which WCAG levels it meets.",
	Example: `  palette contrast "#3c6dd5" white
  palette contrast "rgb(220, 0, 78)" "#213137" --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContrast(cmd.OutOrStdout(), args[0], args[1])
	},
}

// ContrastOutput is the payload of `palette contrast`.
type ContrastOutput struct {
	Foreground string        `json:"foreground"`
	Background string        `json:"background"`
	Scores     colors.Scores `json:"scores"`
}

func runContrast(out io.Writer, fgValue, bgValue string) error {
	fg, err := colors.Parse(fgValue)
	if err != nil {
		return err
	}
	bg, err := colors.Parse(bgValue)
	if err != nil {
		return err
	}

	output := ContrastOutput{
		Foreground: fg.String(),
		Background: bg.String(),
		Scores:     colors.Guidelines(fg, bg),
	}
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(out, output)
	}

	s := output.Scores
	return writeTable(out, []string{"LEVEL", "MINIMUM", "RESULT"}, [][]string{
		{"ratio", "", formatRatio(s.Ratio)},
		{"AA", formatRatio(colors.RatioAA), formatPass(s.AA)},
		{"AA large", formatRatio(colors.RatioAALarge), formatPass(s.AALarge)},
		{"AAA", formatRatio(colors.RatioAAA), formatPass(s.AAA)},
		{"AAA large", formatRatio(colors.RatioAAALarge), formatPass(s.AAALarge)},
	})
}
