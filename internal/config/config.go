// Package config provides configuration management for palette using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

// Default configuration values.
const (
	defaultMode        = "light"
	defaultPalette     = "default"
	defaultStep        = palette.DefaultStep
	defaultStrategy    = "hsl"
	defaultConcurrency = palette.DefaultConcurrency
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// Config holds all configuration for the application.
type Config struct {
	Theme   ThemeConfig   `mapstructure:"theme"`
	Derive  DeriveConfig  `mapstructure:"derive"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ThemeConfig holds the initial theme selection.
type ThemeConfig struct {
	Mode      string `mapstructure:"mode"`    // dark, light
	Palette   string `mapstructure:"palette"` // default, custom
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
}

// DeriveConfig holds color adjustment settings.
type DeriveConfig struct {
	Step        float64 `mapstructure:"step"`
	MaxSteps    int     `mapstructure:"max_steps"` // 0 = strategy bound
	Strategy    string  `mapstructure:"strategy"`  // hsl, blend
	Concurrency int     `mapstructure:"concurrency"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with PALETTE_ and use underscores for
// nesting, e.g. PALETTE_THEME_MODE=dark.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("palette")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/palette")
	}

	v.SetEnvPrefix("PALETTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Theme: ThemeConfig{Mode: defaultMode, Palette: defaultPalette},
		Derive: DeriveConfig{
			Step:        defaultStep,
			Strategy:    defaultStrategy,
			Concurrency: defaultConcurrency,
		},
		Logging: LoggingConfig{Level: defaultLogLevel, Format: defaultLogFormat},
	}
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("theme.mode", defaultMode)
	v.SetDefault("theme.palette", defaultPalette)
	v.SetDefault("theme.primary", "")
	v.SetDefault("theme.secondary", "")

	v.SetDefault("derive.step", defaultStep)
	v.SetDefault("derive.max_steps", 0)
	v.SetDefault("derive.strategy", defaultStrategy)
	v.SetDefault("derive.concurrency", defaultConcurrency)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.Selection(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	if c.Derive.Step < palette.MinStep || c.Derive.Step > 1 {
		return fmt.Errorf("derive.step must be in [%g, 1]", palette.MinStep)
	}
	if c.Derive.MaxSteps < 0 {
		return fmt.Errorf("derive.max_steps must be non-negative")
	}
	if _, err := palette.ParseStrategy(c.Derive.Strategy); err != nil {
		return fmt.Errorf("derive.strategy: %w", err)
	}
	if c.Derive.Concurrency < 1 {
		return fmt.Errorf("derive.concurrency must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Selection converts the theme section into a theme selection.
func (c *Config) Selection() (theme.Selection, error) {
	mode, err := palette.ParseMode(c.Theme.Mode)
	if err != nil {
		return theme.Selection{}, err
	}
	sel := theme.Selection{
		Mode:      mode,
		Palette:   theme.PaletteKind(strings.ToLower(strings.TrimSpace(c.Theme.Palette))),
		Primary:   c.Theme.Primary,
		Secondary: c.Theme.Secondary,
	}
	if err := sel.Validate(); err != nil {
		return theme.Selection{}, err
	}
	return sel, nil
}

// DeriverOptions converts the derive section into palette options.
func (c *Config) DeriverOptions() []palette.Option {
	strategy, _ := palette.ParseStrategy(c.Derive.Strategy)
	return []palette.Option{
		palette.WithStep(c.Derive.Step),
		palette.WithMaxSteps(c.Derive.MaxSteps),
		palette.WithStrategy(strategy),
		palette.WithConcurrency(c.Derive.Concurrency),
	}
}
