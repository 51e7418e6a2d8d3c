// Package palette derives foreground colors that meet WCAG AA contrast
// against a background.
package palette

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/opencode-ai/palette/internal/colors"
)

// ErrUnresolvableContrast means the lightness bound was reached without
// meeting AA. The derived color is still the best available.
var ErrUnresolvableContrast = errors.New("contrast could not be resolved")

// Mode is the theme mode a palette is derived for.
type Mode string

const (
	ModeDark  Mode = "dark"
	ModeLight Mode = "light"
)

// ParseMode validates a mode string.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeDark:
		return ModeDark, nil
	case ModeLight:
		return ModeLight, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected dark or light)", value)
	}
}

// Direction returns the adjustment direction for failing colors: dark
// backgrounds push foregrounds lighter, light backgrounds push them darker.
func (m Mode) Direction() Direction {
	if m == ModeDark {
		return Lighten
	}
	return Darken
}

// Direction is the way a color moves along the lightness axis.
type Direction string

const (
	Lighten Direction = "lighten"
	Darken  Direction = "darken"
)

// Bound returns the color repeated adjustment saturates at.
func (d Direction) Bound() colors.Color {
	if d == Lighten {
		return colors.White
	}
	return colors.Black
}

// Strategy selects the lighten/darken transform.
type Strategy string

const (
	// StrategyHSL shifts HSL lightness by a fixed amount per step.
	StrategyHSL Strategy = "hsl"
	// StrategyBlend mixes each channel toward white or black per step.
	StrategyBlend Strategy = "blend"
)

// ParseStrategy validates a strategy string.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case StrategyHSL, "":
		return StrategyHSL, nil
	case StrategyBlend:
		return StrategyBlend, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (expected hsl or blend)", value)
	}
}

// at returns color moved n steps in dir. Each position is computed from the
// original color so 8-bit rounding never accumulates between steps.
func (s Strategy) at(c colors.Color, dir Direction, step float64, n int) colors.Color {
	if s == StrategyBlend {
		return c.Blend(dir.Bound(), 1-math.Pow(1-step, float64(n)))
	}
	amount := float64(n) * step
	if dir == Lighten {
		return c.Lighten(amount)
	}
	return c.Darken(amount)
}

// stepBound is the number of steps needed to cross the full lightness
// range, plus one.
func (s Strategy) stepBound(step float64) int {
	if step >= 1 {
		return 2
	}
	if s == StrategyBlend {
		// Remaining distance shrinks by (1-step) per step; stop once it is
		// below half an 8-bit level.
		return int(math.Ceil(math.Log(1.0/510)/math.Log(1-step))) + 1
	}
	return int(math.Ceil(1/step)) + 1
}

// Adjustment describes what happened to one foreground color.
type Adjustment struct {
	Original string  `json:"original"`
	Steps    int     `json:"steps"`
	Resolved bool    `json:"resolved"`
	Ratio    float64 `json:"ratio"`
}

// Adjusted reports whether the color was changed.
func (a Adjustment) Adjusted() bool {
	return a.Steps > 0
}

// Request is the input to DerivePalette.
type Request struct {
	Mode       Mode   `json:"mode" yaml:"mode"`
	Background string `json:"background" yaml:"background"`
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
}

// Result holds the derived foreground colors.
type Result struct {
	Primary             string     `json:"primary"`
	Secondary           string     `json:"secondary"`
	PrimaryAdjustment   Adjustment `json:"primary_adjustment"`
	SecondaryAdjustment Adjustment `json:"secondary_adjustment"`
}

// Unresolved lists the roles whose contrast could not reach AA.
func (r Result) Unresolved() []string {
	var roles []string
	if !r.PrimaryAdjustment.Resolved {
		roles = append(roles, "primary")
	}
	if !r.SecondaryAdjustment.Resolved {
		roles = append(roles, "secondary")
	}
	return roles
}

// Err returns ErrUnresolvableContrast when any role is unresolved.
func (r Result) Err() error {
	roles := r.Unresolved()
	if len(roles) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnresolvableContrast, strings.Join(roles, ", "))
}
