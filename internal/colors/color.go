// Package colors provides the color value used by palette derivation.
package colors

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// White is pure sRGB white, the bound for repeated lightening.
	White = Color{rgb: colorful.Color{R: 1, G: 1, B: 1}, alpha: 1}
	// Black is pure sRGB black, the bound for repeated darkening.
	Black = Color{rgb: colorful.Color{}, alpha: 1}
)

// Color is an sRGB color with alpha. Channels are kept at 8-bit precision
// so every value round-trips through its hex form.
type Color struct {
	rgb   colorful.Color
	alpha float64
}

func newColor(c colorful.Color, alpha float64) Color {
	return Color{rgb: quantize(c), alpha: clamp01(alpha)}
}

// Hex returns the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return c.rgb.Hex()
}

// String returns #rrggbb for opaque colors and rgba() otherwise.
func (c Color) String() string {
	if c.alpha >= 1 {
		return c.Hex()
	}
	r, g, b := c.rgb.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.alpha, 'f', -1, 64))
}

// Alpha returns the opacity in [0, 1].
func (c Color) Alpha() float64 {
	return c.alpha
}

// Equal reports whether both colors have identical channels and alpha.
func (c Color) Equal(other Color) bool {
	return c.rgb == other.rgb && c.alpha == other.alpha
}

// Lightness returns the HSL lightness in [0, 1].
func (c Color) Lightness() float64 {
	_, _, l := c.rgb.Hsl()
	return l
}

// Luminance returns the WCAG relative luminance in [0, 1].
func (c Color) Luminance() float64 {
	r, g, b := c.rgb.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Lighten raises the HSL lightness by amount, clamped at white.
func (c Color) Lighten(amount float64) Color {
	h, s, l := c.rgb.Hsl()
	return newColor(colorful.Hsl(h, s, clamp01(l+amount)), c.alpha)
}

// Darken lowers the HSL lightness by amount, clamped at black.
func (c Color) Darken(amount float64) Color {
	h, s, l := c.rgb.Hsl()
	return newColor(colorful.Hsl(h, s, clamp01(l-amount)), c.alpha)
}

// Blend mixes the color toward target by t in RGB space.
func (c Color) Blend(target Color, t float64) Color {
	return newColor(c.rgb.BlendRgb(target.rgb, clamp01(t)), c.alpha)
}

// Fade returns the same color with the given opacity.
func (c Color) Fade(alpha float64) Color {
	return Color{rgb: c.rgb, alpha: clamp01(alpha)}
}

func quantize(c colorful.Color) colorful.Color {
	return colorful.Color{
		R: math.Round(clamp01(c.R)*255) / 255,
		G: math.Round(clamp01(c.G)*255) / 255,
		B: math.Round(clamp01(c.B)*255) / 255,
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
