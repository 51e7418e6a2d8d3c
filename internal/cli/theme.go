// Package cli provides theme inspection commands.
package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

var (
	themeMode      string
	themeCustom    bool
	themePrimary   string
	themeSecondary string
	themeSwatches  bool
)

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themePresetsCmd)

	themeShowCmd.Flags().StringVar(&themeMode, "mode", "", "theme mode: dark or light (default: config theme.mode)")
	themeShowCmd.Flags().BoolVar(&themeCustom, "custom", false, "use a custom palette")
	themeShowCmd.Flags().StringVar(&themePrimary, "primary", "", "custom primary color")
	themeShowCmd.Flags().StringVar(&themeSecondary, "secondary", "", "custom secondary color")
	themeShowCmd.Flags().BoolVar(&themeSwatches, "swatches", false, "render color swatches")
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect derived themes",
	Long:  "Build themes from a mode and palette selection and inspect the result.",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the theme for a selection",
	Example: `  palette theme show --mode dark
  palette theme show --mode light --custom --primary "#90caf9" --secondary "#ffeb3b" --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := themeSelectionFromFlags()
		if err != nil {
			return err
		}
		t, err := newThemeBuilder().Build(sel)
		if err != nil {
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), t)
		}
		return writeTheme(cmd.OutOrStdout(), t)
	},
}

var themePresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in mode presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modes := make([]string, 0, len(theme.Presets))
		for mode := range theme.Presets {
			modes = append(modes, string(mode))
		}
		sort.Strings(modes)

		if IsJSONOutput() || IsJSONLOutput() {
			presets := make([]PresetOutput, 0, len(modes))
			for _, mode := range modes {
				presets = append(presets, PresetOutput{Mode: mode, Tokens: theme.Presets[palette.Mode(mode)]})
			}
			return WriteOutput(cmd.OutOrStdout(), presets)
		}

		rows := make([][]string, 0, len(modes))
		for _, mode := range modes {
			tokens := theme.Presets[palette.Mode(mode)]
			rows = append(rows, []string{mode, tokens.Background, tokens.Paper, tokens.Primary, tokens.Secondary})
		}
		return writeTable(cmd.OutOrStdout(), []string{"MODE", "BACKGROUND", "PAPER", "PRIMARY", "SECONDARY"}, rows)
	},
}

// PresetOutput is one entry of `palette theme presets --json`.
type PresetOutput struct {
	Mode   string       `json:"mode"`
	Tokens theme.Tokens `json:"tokens"`
}

func themeSelectionFromFlags() (theme.Selection, error) {
	sel, err := GetConfig().Selection()
	if err != nil {
		return theme.Selection{}, err
	}

	if themeMode != "" {
		mode, err := palette.ParseMode(themeMode)
		if err != nil {
			return theme.Selection{}, err
		}
		sel.Mode = mode
	}
	if themeCustom || themePrimary != "" || themeSecondary != "" {
		sel.Palette = theme.PaletteCustom
	}
	if themePrimary != "" {
		sel.Primary = themePrimary
	}
	if themeSecondary != "" {
		sel.Secondary = themeSecondary
	}
	if sel.Palette == theme.PaletteCustom {
		preset := theme.PresetFor(sel.Mode)
		if sel.Primary == "" {
			sel.Primary = preset.Primary
		}
		if sel.Secondary == "" {
			sel.Secondary = preset.Secondary
		}
	}
	return sel, nil
}

func writeTheme(out io.Writer, t theme.Theme) error {
	p := t.Palette
	swatch := func(color string) string {
		return formatColor(color, themeSwatches)
	}

	rows := [][]string{
		{"mode", string(t.Mode)},
		{"background", swatch(p.Background.Default)},
		{"paper", swatch(p.Background.Paper)},
		{"paper text", p.PaperText},
		{"primary", swatch(p.Primary.Main)},
		{"primary text", p.Primary.ContrastText},
		{"secondary", swatch(p.Secondary.Main)},
		{"secondary text", p.Secondary.ContrastText},
		{"dark class", formatYesNo(t.DarkClass)},
	}
	if o := t.Overrides.TextPrimary; o != nil {
		rows = append(rows, []string{"text primary", fmt.Sprintf("%s (hover %s)", swatch(o.Color), o.HoverBackground)})
	}
	if o := t.Overrides.TextSecondary; o != nil {
		rows = append(rows, []string{"text secondary", fmt.Sprintf("%s (hover %s)", swatch(o.Color), o.HoverBackground)})
	}
	if err := writeTable(out, nil, rows); err != nil {
		return err
	}

	for _, warning := range t.Warnings {
		fmt.Fprintln(out, colorize("warning: "+warning, colorYellow))
	}
	return nil
}
