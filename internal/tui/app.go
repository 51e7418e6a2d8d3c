package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

// Config configures the preview.
type Config struct {
	Store *theme.Store
	// Custom colors used when toggling to the custom palette.
	CustomPrimary   string
	CustomSecondary string
}

// Run launches the preview and blocks until it exits.
func Run(cfg Config) error {
	if cfg.Store == nil {
		return errors.New("theme store is required")
	}

	program := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	id := subscribe(cfg.Store, program.Send)
	defer func() { _ = cfg.Store.Unsubscribe(id) }()

	_, err := program.Run()
	return err
}

type model struct {
	store           *theme.Store
	customPrimary   string
	customSecondary string

	width       int
	height      int
	selection   theme.Selection
	styles      theme.Styles
	status      string
	lastUpdated time.Time
}

const (
	minWidth  = 50
	minHeight = 14
)

func initialModel(cfg Config) model {
	sel, current := cfg.Store.Current()
	return model{
		store:           cfg.Store,
		customPrimary:   cfg.CustomPrimary,
		customSecondary: cfg.CustomSecondary,
		selection:       sel,
		styles:          theme.BuildStyles(current),
		lastUpdated:     time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			m.status = ""
			return m, updateSelection(m.store, toggleMode)
		case "c":
			m.status = ""
			if m.selection.Palette != theme.PaletteCustom && (m.customPrimary == "" || m.customSecondary == "") {
				m.status = "No custom colors configured (theme.primary, theme.secondary)."
				return m, nil
			}
			return m, updateSelection(m.store, m.togglePalette)
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ThemeChangedMsg:
		m.selection = msg.Selection
		m.styles = theme.BuildStyles(msg.Theme)
		m.lastUpdated = msg.Timestamp
	case UpdateErrorMsg:
		m.status = fmt.Sprintf("Update failed: %v", msg.Err)
	}
	return m, nil
}

func toggleMode(sel theme.Selection) theme.Selection {
	if sel.Mode == palette.ModeDark {
		sel.Mode = palette.ModeLight
	} else {
		sel.Mode = palette.ModeDark
	}
	return sel
}

func (m model) togglePalette(sel theme.Selection) theme.Selection {
	if sel.Palette == theme.PaletteCustom {
		sel.Palette = theme.PaletteDefault
		return sel
	}
	sel.Palette = theme.PaletteCustom
	sel.Primary = m.customPrimary
	sel.Secondary = m.customSecondary
	return sel
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(), "\n"))
		}
	}

	t := m.styles.Theme
	lines := []string{
		m.styles.Title.Render(fmt.Sprintf("palette preview: %s mode, %s palette", t.Mode, m.selection.Palette)),
		"",
	}
	lines = append(lines, m.swatchLines()...)
	lines = append(lines, "", m.styles.Page.Padding(1, 2).Render(m.styles.Paper.Render(m.sampleLines())))

	for _, warning := range t.Warnings {
		lines = append(lines, m.styles.Warning.Render("warning: "+warning))
	}
	if m.status != "" {
		lines = append(lines, "", m.styles.Warning.Render(m.status))
	}

	lines = append(lines, "", m.styles.Muted.Render(fmt.Sprintf("Last updated: %s", m.lastUpdated.Format("15:04:05"))))
	lines = append(lines, m.styles.Muted.Render("Shortcuts: d toggle mode | c toggle custom palette | q quit"))
	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

func (m model) swatchLines() []string {
	p := m.styles.Theme.Palette
	rows := []struct {
		label string
		color string
	}{
		{"background", p.Background.Default},
		{"paper", p.Background.Paper},
		{"primary", p.Primary.Main},
		{"secondary", p.Secondary.Main},
	}
	if o := m.styles.Theme.Overrides.TextPrimary; o != nil {
		rows = append(rows, struct {
			label string
			color string
		}{"text primary", o.Color})
	}
	if o := m.styles.Theme.Overrides.TextSecondary; o != nil {
		rows = append(rows, struct {
			label string
			color string
		}{"text secondary", o.Color})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-15s %s", row.label, theme.RenderSwatch(row.color)))
	}
	return lines
}

func (m model) sampleLines() string {
	return strings.Join([]string{
		m.styles.Text.Render("Text on paper"),
		m.styles.Primary.Render("PRIMARY BUTTON") + m.styles.Text.Render("  ") + m.styles.Secondary.Render("SECONDARY BUTTON"),
	}, "\n")
}

func (m model) smallViewLines() []string {
	return []string{
		m.styles.Warning.Render(fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)),
		m.styles.Muted.Render(fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)),
		m.styles.Muted.Render("Press q to quit."),
	}
}
