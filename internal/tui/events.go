// Package tui implements the palette preview terminal interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/palette/internal/theme"
)

// ThemeChangedMsg carries a theme the store just switched to.
type ThemeChangedMsg struct {
	Selection theme.Selection
	Theme     theme.Theme
	Timestamp time.Time
}

// UpdateErrorMsg reports a rejected selection change.
type UpdateErrorMsg struct {
	Err error
}

// subscribe bridges store notifications into the program and returns the
// subscription id.
func subscribe(store *theme.Store, send func(tea.Msg)) string {
	return store.Subscribe(func(sel theme.Selection, t theme.Theme) {
		if send == nil {
			return
		}
		send(ThemeChangedMsg{Selection: sel, Theme: t, Timestamp: time.Now()})
	})
}

// updateSelection applies fn off the event loop; the resulting theme comes
// back through the subscription.
func updateSelection(store *theme.Store, fn func(theme.Selection) theme.Selection) tea.Cmd {
	return func() tea.Msg {
		if _, err := store.Update(fn); err != nil {
			return UpdateErrorMsg{Err: err}
		}
		return nil
	}
}
