// Package cli provides the interactive preview command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/opencode-ai/palette/internal/theme"
	"github.com/opencode-ai/palette/internal/tui"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the theme in the terminal",
	Long: `Launch an interactive preview of the configured theme.

Press d to toggle dark and light mode and c to toggle the custom palette
from theme.primary and theme.secondary.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview()
	},
}

func runPreview() error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "preview requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use `palette theme show`",
			NextStep: "palette theme show --swatches",
		}
	}

	cfg := GetConfig()
	sel, err := cfg.Selection()
	if err != nil {
		return err
	}
	store, err := theme.NewStore(newThemeBuilder(), sel)
	if err != nil {
		return err
	}

	return tui.Run(tui.Config{
		Store:           store,
		CustomPrimary:   cfg.Theme.Primary,
		CustomSecondary: cfg.Theme.Secondary,
	})
}
