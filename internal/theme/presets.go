// Package theme builds UI themes from a mode and palette selection.
package theme

import "github.com/opencode-ai/palette/internal/palette"

// Tokens defines the base color roles of a mode.
type Tokens struct {
	Background string `json:"background" yaml:"background"`
	Paper      string `json:"paper" yaml:"paper"`
	Primary    string `json:"primary" yaml:"primary"`
	Secondary  string `json:"secondary" yaml:"secondary"`
}

// DarkTokens is the dark mode preset.
var DarkTokens = Tokens{
	Background: "#34434c",
	Paper:      "#213137",
	Primary:    "#69E1E8",
	Secondary:  "#dc004e",
}

// LightTokens is the light mode preset.
var LightTokens = Tokens{
	Background: "#e3e7e8",
	Paper:      "#f3fdff",
	Primary:    "#3c6dd5",
	Secondary:  "#dc004e",
}

// Presets lists base tokens by mode.
var Presets = map[palette.Mode]Tokens{
	palette.ModeDark:  DarkTokens,
	palette.ModeLight: LightTokens,
}

// PresetFor returns the tokens of a mode, falling back to light.
func PresetFor(mode palette.Mode) Tokens {
	if tokens, ok := Presets[mode]; ok {
		return tokens
	}
	return LightTokens
}
