// Package cli implements the palette command line.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/palette/internal/config"
	"github.com/opencode-ai/palette/internal/logging"
	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

var (
	cfgFile        string
	jsonOutput     bool
	jsonlOutput    bool
	logLevel       string
	logFormat      string
	nonInteractive bool
	noColor        bool
	noProgress     bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "palette",
	Short: "Derive accessible theme palettes",
	Long: `Derive UI palettes whose foreground colors meet WCAG AA contrast.

Colors that fail against the background are lightened in dark mode and
darkened in light mode until they pass, or until pure white or black is
reached.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./palette.yaml or ~/.config/palette/config.yaml)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (text, json)")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or start interactive views")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	if jsonOutput && jsonlOutput {
		return errors.New("--json and --jsonl are mutually exclusive")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	}); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// GetConfig returns the loaded configuration, or defaults before loading.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}

func newDeriver() *palette.Deriver {
	return palette.New(GetConfig().DeriverOptions()...)
}

func newThemeBuilder() *theme.Builder {
	return theme.NewBuilder(newDeriver())
}
