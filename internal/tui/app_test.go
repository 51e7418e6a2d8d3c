package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

func newTestStore(t *testing.T) *theme.Store {
	t.Helper()
	store, err := theme.NewStore(theme.NewBuilder(nil), theme.Selection{
		Mode:    palette.ModeLight,
		Palette: theme.PaletteDefault,
	})
	require.NoError(t, err)
	return store
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// collect subscribes to store and returns the messages it would send.
func collect(t *testing.T, store *theme.Store) *[]tea.Msg {
	t.Helper()
	var msgs []tea.Msg
	id := subscribe(store, func(msg tea.Msg) { msgs = append(msgs, msg) })
	t.Cleanup(func() { _ = store.Unsubscribe(id) })
	return &msgs
}

func TestViewShowsSelection(t *testing.T) {
	m := initialModel(Config{Store: newTestStore(t)})

	view := m.View()
	assert.Contains(t, view, "palette preview: light mode, default palette")
	assert.Contains(t, view, "background")
	assert.Contains(t, view, "PRIMARY BUTTON")
	assert.Contains(t, view, "Shortcuts:")
}

func TestToggleModeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	msgs := collect(t, store)
	m := initialModel(Config{Store: store})

	updated, cmd := m.Update(keyMsg("d"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())

	require.Len(t, *msgs, 1)
	changed, ok := (*msgs)[0].(ThemeChangedMsg)
	require.True(t, ok)
	assert.Equal(t, palette.ModeDark, changed.Selection.Mode)
	assert.True(t, changed.Theme.DarkClass)

	updated, _ = updated.Update(changed)
	view := updated.View()
	assert.Contains(t, view, "dark mode")

	sel, _ := store.Current()
	assert.Equal(t, palette.ModeDark, sel.Mode)
}

func TestConcurrentTogglesKeepSelectionAndThemeTogether(t *testing.T) {
	store := newTestStore(t)
	msgs := collect(t, store)
	m := initialModel(Config{Store: store})

	_, first := m.Update(keyMsg("d"))
	_, second := m.Update(keyMsg("d"))

	var wg sync.WaitGroup
	for _, cmd := range []tea.Cmd{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Nil(t, cmd())
		}()
	}
	wg.Wait()

	require.Len(t, *msgs, 2)
	for _, msg := range *msgs {
		changed := msg.(ThemeChangedMsg)
		assert.Equal(t, changed.Selection.Mode, changed.Theme.Mode)
	}
	last := (*msgs)[1].(ThemeChangedMsg)
	assert.Equal(t, palette.ModeLight, last.Selection.Mode)

	sel, _ := store.Current()
	assert.Equal(t, palette.ModeLight, sel.Mode)
}

func TestTogglePaletteWithoutCustomColors(t *testing.T) {
	store := newTestStore(t)
	m := initialModel(Config{Store: store})

	updated, cmd := m.Update(keyMsg("c"))
	assert.Nil(t, cmd)
	assert.Contains(t, updated.View(), "No custom colors configured")

	sel, _ := store.Current()
	assert.Equal(t, theme.PaletteDefault, sel.Palette)
}

func TestTogglePaletteWithCustomColors(t *testing.T) {
	store := newTestStore(t)
	msgs := collect(t, store)
	m := initialModel(Config{Store: store, CustomPrimary: "#90caf9", CustomSecondary: "#dc004e"})

	updated, cmd := m.Update(keyMsg("c"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	require.Len(t, *msgs, 1)

	updated, _ = updated.Update((*msgs)[0])
	assert.Contains(t, updated.View(), "custom palette")

	sel, current := store.Current()
	assert.Equal(t, theme.PaletteCustom, sel.Palette)
	assert.Equal(t, "#90caf9", current.Palette.Primary.Main)

	// Light paper cannot carry #90caf9 as text.
	assert.NotNil(t, current.Overrides.TextPrimary)

	_, cmd = updated.Update(keyMsg("c"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	sel, _ = store.Current()
	assert.Equal(t, theme.PaletteDefault, sel.Palette)
}

func TestUpdateErrorShowsStatus(t *testing.T) {
	m := initialModel(Config{Store: newTestStore(t)})

	updated, _ := m.Update(UpdateErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, updated.View(), "Update failed: boom")
}

func TestSmallTerminal(t *testing.T) {
	m := initialModel(Config{Store: newTestStore(t)})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	view := updated.View()
	assert.Contains(t, view, "Terminal too small (20x5).")
	assert.False(t, strings.Contains(view, "PRIMARY BUTTON"))

	updated, _ = updated.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, updated.View(), "PRIMARY BUTTON")
}

func TestQuitKeys(t *testing.T) {
	m := initialModel(Config{Store: newTestStore(t)})

	for _, msg := range []tea.KeyMsg{keyMsg("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, msg.String())
	}
}

func TestRunRequiresStore(t *testing.T) {
	assert.Error(t, Run(Config{}))
}
