package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a string cannot be parsed as a color.
var ErrInvalidColor = errors.New("invalid color")

// Parse reads a color from #rgb, #rrggbb, rgb(), rgba(), hsl(), hsla() or
// one of the names white, black and transparent.
func Parse(value string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}

	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	case "transparent":
		return Black.Fade(0), nil
	}

	var (
		c   Color
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err = parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		c, err = parseRGB(s)
	case strings.HasPrefix(s, "hsl"):
		c, err = parseHSL(s)
	default:
		err = errors.New("unrecognized format")
	}
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, value, err)
	}
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(value string) Color {
	c, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (Color, error) {
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("hex must have 3 or 6 digits")
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return Color{}, fmt.Errorf("bad hex digit %q", r)
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return newColor(c, 1), nil
}

func parseRGB(s string) (Color, error) {
	args, err := functionArgs(s, "rgb", "rgba")
	if err != nil {
		return Color{}, err
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("expected 3 or 4 arguments, got %d", len(args))
	}

	channels := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("channel %q out of range 0-255", args[i])
		}
		channels[i] = v / 255
	}

	alpha, err := parseAlpha(args)
	if err != nil {
		return Color{}, err
	}
	return newColor(colorful.Color{R: channels[0], G: channels[1], B: channels[2]}, alpha), nil
}

func parseHSL(s string) (Color, error) {
	args, err := functionArgs(s, "hsl", "hsla")
	if err != nil {
		return Color{}, err
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("expected 3 or 4 arguments, got %d", len(args))
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, fmt.Errorf("hue %q is not a number", args[0])
	}
	sat, err := parsePercent(args[1])
	if err != nil {
		return Color{}, err
	}
	light, err := parsePercent(args[2])
	if err != nil {
		return Color{}, err
	}

	alpha, err := parseAlpha(args)
	if err != nil {
		return Color{}, err
	}

	h = mod(h, 360)
	return newColor(colorful.Hsl(h, sat, light), alpha), nil
}

func functionArgs(s string, names ...string) ([]string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, errors.New("missing parentheses")
	}
	name := strings.TrimSpace(s[:open])
	known := false
	for _, n := range names {
		if name == n {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown function %q", name)
	}

	parts := strings.Split(s[open+1:len(s)-1], ",")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		args = append(args, strings.TrimSpace(part))
	}
	return args, nil
}

func parseAlpha(args []string) (float64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	v, err := strconv.ParseFloat(args[3], 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("alpha %q out of range 0-1", args[3])
	}
	return v, nil
}

func parsePercent(arg string) (float64, error) {
	if !strings.HasSuffix(arg, "%") {
		return 0, fmt.Errorf("%q must be a percentage", arg)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("percentage %q out of range", arg)
	}
	return v / 100, nil
}

func mod(v, m float64) float64 {
	r := v - m*float64(int(v/m))
	if r < 0 {
		r += m
	}
	return r
}
