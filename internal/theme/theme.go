package theme

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/palette/internal/colors"
	"github.com/opencode-ai/palette/internal/logging"
	"github.com/opencode-ai/palette/internal/palette"
)

// PaletteKind chooses between preset and user-supplied main colors.
type PaletteKind string

const (
	PaletteDefault PaletteKind = "default"
	PaletteCustom  PaletteKind = "custom"
)

const (
	fontFamily   = "'Open Sans', arial, sans-serif"
	fontSize     = 16
	h6FontSize   = "1.2rem"
	hoverOpacity = 0.1
	layerZIndex  = 101
)

// Selection is the user's theme choice.
type Selection struct {
	Mode      palette.Mode `json:"mode" yaml:"mode"`
	Palette   PaletteKind  `json:"palette" yaml:"palette"`
	Primary   string       `json:"primary,omitempty" yaml:"primary"`
	Secondary string       `json:"secondary,omitempty" yaml:"secondary"`
}

// Validate checks mode and palette kind and, for custom palettes, that both
// colors are present.
func (s Selection) Validate() error {
	if s.Mode != palette.ModeDark && s.Mode != palette.ModeLight {
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	switch s.Palette {
	case PaletteDefault, "":
	case PaletteCustom:
		if strings.TrimSpace(s.Primary) == "" || strings.TrimSpace(s.Secondary) == "" {
			return fmt.Errorf("custom palette requires primary and secondary colors")
		}
	default:
		return fmt.Errorf("unknown palette %q", s.Palette)
	}
	return nil
}

// Mains returns the primary and secondary colors the selection resolves to.
func (s Selection) Mains() (string, string) {
	if s.Palette == PaletteCustom {
		return s.Primary, s.Secondary
	}
	preset := PresetFor(s.Mode)
	return preset.Primary, preset.Secondary
}

// Swatch is a main color with its readable text color.
type Swatch struct {
	Main         string `json:"main"`
	ContrastText string `json:"contrast_text"`
}

// Background holds the page and surface colors.
type Background struct {
	Default string `json:"default"`
	Paper   string `json:"paper"`
}

// Palette is the resolved color set of a theme.
type Palette struct {
	Type       palette.Mode `json:"type"`
	Primary    Swatch       `json:"primary"`
	Secondary  Swatch       `json:"secondary"`
	Background Background   `json:"background"`
	PaperText  string       `json:"paper_text"`
}

// Typography holds font settings.
type Typography struct {
	FontFamily          string `json:"font_family"`
	FontSize            int    `json:"font_size"`
	H6FontSize          string `json:"h6_font_size"`
	ButtonTextTransform string `json:"button_text_transform"`
}

// ButtonOverride replaces a text button color that fails contrast on paper.
type ButtonOverride struct {
	Color           string `json:"color"`
	HoverBackground string `json:"hover_background"`
}

// Overrides holds per-variant component overrides. Nil means none needed.
type Overrides struct {
	TextPrimary   *ButtonOverride `json:"text_primary,omitempty"`
	TextSecondary *ButtonOverride `json:"text_secondary,omitempty"`
}

// Theme is the derived theme.
type Theme struct {
	Mode       palette.Mode   `json:"mode"`
	Palette    Palette        `json:"palette"`
	Typography Typography     `json:"typography"`
	Overrides  Overrides      `json:"overrides"`
	ZIndex     map[string]int `json:"z_index"`
	DarkClass  bool           `json:"dark_class"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// Builder derives themes from selections.
type Builder struct {
	deriver *palette.Deriver
	logger  zerolog.Logger
}

// NewBuilder creates a Builder. A nil deriver uses palette defaults.
func NewBuilder(deriver *palette.Deriver) *Builder {
	if deriver == nil {
		deriver = palette.New()
	}
	return &Builder{
		deriver: deriver,
		logger:  logging.Component("theme"),
	}
}

// WithLogger returns a copy of the builder using logger.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	clone := *b
	clone.logger = logger
	return &clone
}

// Build resolves a selection into a theme. Main colors are kept as chosen;
// text buttons whose main color fails AA on paper get an override.
func (b *Builder) Build(sel Selection) (Theme, error) {
	if sel.Palette == "" {
		sel.Palette = PaletteDefault
	}
	if err := sel.Validate(); err != nil {
		return Theme{}, err
	}

	preset := PresetFor(sel.Mode)
	primary, secondary := sel.Mains()

	result, err := b.deriver.DerivePalette(palette.Request{
		Mode:       sel.Mode,
		Background: preset.Paper,
		Primary:    primary,
		Secondary:  secondary,
	})
	if err != nil {
		return Theme{}, err
	}

	paper, err := colors.Parse(preset.Paper)
	if err != nil {
		return Theme{}, fmt.Errorf("paper: %w", err)
	}
	primarySwatch, err := swatch(primary)
	if err != nil {
		return Theme{}, fmt.Errorf("primary: %w", err)
	}
	secondarySwatch, err := swatch(secondary)
	if err != nil {
		return Theme{}, fmt.Errorf("secondary: %w", err)
	}

	t := Theme{
		Mode: sel.Mode,
		Palette: Palette{
			Type:      sel.Mode,
			Primary:   primarySwatch,
			Secondary: secondarySwatch,
			Background: Background{
				Default: preset.Background,
				Paper:   preset.Paper,
			},
			PaperText: colors.ContrastText(paper, colors.DefaultContrastThreshold).String(),
		},
		Typography: Typography{
			FontFamily:          fontFamily,
			FontSize:            fontSize,
			H6FontSize:          h6FontSize,
			ButtonTextTransform: "none",
		},
		ZIndex: map[string]int{
			"mobile_stepper": layerZIndex,
			"app_bar":        layerZIndex,
			"drawer":         layerZIndex,
			"modal":          layerZIndex,
			"snackbar":       layerZIndex,
			"tooltip":        layerZIndex,
		},
		DarkClass: sel.Mode == palette.ModeDark,
	}

	t.Overrides.TextPrimary = b.override("primary", result.Primary, result.PrimaryAdjustment, preset.Paper, &t)
	t.Overrides.TextSecondary = b.override("secondary", result.Secondary, result.SecondaryAdjustment, preset.Paper, &t)

	return t, nil
}

func (b *Builder) override(role, derived string, adj palette.Adjustment, paper string, t *Theme) *ButtonOverride {
	if !adj.Resolved {
		b.logger.Warn().
			Str("role", role).
			Str("color", adj.Original).
			Str("paper", paper).
			Str("fallback", derived).
			Float64("ratio", adj.Ratio).
			Msg("contrast could not reach AA")
		t.Warnings = append(t.Warnings, fmt.Sprintf("%s %s cannot reach AA contrast on %s (best %.2f:1)", role, adj.Original, paper, adj.Ratio))
	}
	if !adj.Adjusted() {
		return nil
	}

	c, err := colors.Parse(derived)
	if err != nil {
		return nil
	}
	return &ButtonOverride{
		Color:           derived,
		HoverBackground: c.Fade(hoverOpacity).String(),
	}
}

func swatch(main string) (Swatch, error) {
	c, err := colors.Parse(main)
	if err != nil {
		return Swatch{}, err
	}
	return Swatch{
		Main:         main,
		ContrastText: colors.ContrastText(c, colors.DefaultContrastThreshold).String(),
	}, nil
}
