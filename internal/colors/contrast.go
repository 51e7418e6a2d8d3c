package colors

// WCAG 2 contrast thresholds.
const (
	RatioAA       = 4.5
	RatioAALarge  = 3.0
	RatioAAA      = 7.0
	RatioAAALarge = 4.5
)

// DefaultContrastThreshold is the minimum ratio ContrastText requires of
// white text before falling back to dark text.
const DefaultContrastThreshold = 3.0

// Scores reports which WCAG levels a color pair meets.
type Scores struct {
	Ratio    float64 `json:"ratio"`
	AA       bool    `json:"aa"`
	AALarge  bool    `json:"aa_large"`
	AAA      bool    `json:"aaa"`
	AAALarge bool    `json:"aaa_large"`
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1, 21].
// Alpha is ignored.
func ContrastRatio(a, b Color) float64 {
	la := a.Luminance()
	lb := b.Luminance()
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// Guidelines scores a color pair against the WCAG levels. The result is
// symmetric in its arguments.
func Guidelines(a, b Color) Scores {
	ratio := ContrastRatio(a, b)
	return Scores{
		Ratio:    ratio,
		AA:       ratio >= RatioAA,
		AALarge:  ratio >= RatioAALarge,
		AAA:      ratio >= RatioAAA,
		AAALarge: ratio >= RatioAAALarge,
	}
}

// ContrastText picks a text color for the given background: white when it
// reaches threshold, otherwise black at 87% opacity.
func ContrastText(background Color, threshold float64) Color {
	if threshold <= 0 {
		threshold = DefaultContrastThreshold
	}
	if ContrastRatio(background, White) >= threshold {
		return White
	}
	return Black.Fade(0.87)
}
