package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/palette/internal/colors"
	"github.com/opencode-ai/palette/internal/palette"
)

// Styles contains lipgloss styles derived from a theme.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Paper     lipgloss.Style
	Page      lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
}

// BuildStyles converts a theme into lipgloss styles. Button overrides win
// over main colors for text on paper.
func BuildStyles(t Theme) Styles {
	p := t.Palette
	paperText := solid(p.PaperText)

	primary := p.Primary.Main
	if t.Overrides.TextPrimary != nil {
		primary = t.Overrides.TextPrimary.Color
	}
	secondary := p.Secondary.Main
	if t.Overrides.TextSecondary != nil {
		secondary = t.Overrides.TextSecondary.Color
	}

	warning := "#d29922"
	if t.Mode == palette.ModeLight {
		warning = "#9a6700"
	}

	return Styles{
		Theme:     t,
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(paperText)).Background(lipgloss.Color(p.Background.Paper)).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(paperText)).Background(lipgloss.Color(p.Background.Paper)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(paperText)).Background(lipgloss.Color(p.Background.Paper)).Faint(true),
		Paper:     lipgloss.NewStyle().Foreground(lipgloss.Color(paperText)).Background(lipgloss.Color(p.Background.Paper)).Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(primary)),
		Page:      lipgloss.NewStyle().Background(lipgloss.Color(p.Background.Default)),
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color(primary)).Background(lipgloss.Color(p.Background.Paper)).Bold(true),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color(secondary)).Background(lipgloss.Color(p.Background.Paper)).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(warning)).Background(lipgloss.Color(p.Background.Paper)),
	}
}

// RenderSwatch renders a color block labeled with its hex value.
func RenderSwatch(color string) string {
	c, err := colors.Parse(color)
	if err != nil {
		return color
	}
	text := colors.ContrastText(c, colors.DefaultContrastThreshold)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(text.Hex())).
		Padding(0, 1).
		Render(fmt.Sprintf("%-9s", c.Hex()))
}

// solid drops alpha so terminals get a plain hex color.
func solid(color string) string {
	c, err := colors.Parse(color)
	if err != nil {
		return color
	}
	if c.Alpha() < 1 {
		return c.Fade(1).Hex()
	}
	return c.Hex()
}
