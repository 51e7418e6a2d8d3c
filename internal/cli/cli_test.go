package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/palette/internal/colors"
	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

// resetFlags clears command globals and restores them after the test.
func resetFlags(t *testing.T) {
	t.Helper()

	for _, p := range []*string{
		&cfgFile, &logLevel, &logFormat,
		&deriveMode, &deriveBackground, &derivePrimary, &deriveSecondary, &deriveFile,
		&themeMode, &themePrimary, &themeSecondary,
	} {
		swap(t, p, "")
	}
	for _, p := range []*bool{
		&jsonOutput, &jsonlOutput, &nonInteractive, &deriveStrict, &themeCustom, &themeSwatches,
	} {
		swap(t, p, false)
	}
	swap(t, &noColor, true)
	swap(t, &noProgress, true)
	swap(t, &appConfig, nil)
}

func swap[T any](t *testing.T, p *T, v T) {
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

// executeCommand runs the root command in an empty directory and home.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunContrastJSON(t *testing.T) {
	resetFlags(t)
	jsonOutput = true

	var out bytes.Buffer
	require.NoError(t, runContrast(&out, "#3c6dd5", "white"))

	var got ContrastOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "#3c6dd5", got.Foreground)
	assert.Equal(t, "#ffffff", got.Background)
	assert.InDelta(t, 4.84, got.Scores.Ratio, 0.01)
	assert.True(t, got.Scores.AA)
	assert.False(t, got.Scores.AAA)
}

func TestRunContrastTable(t *testing.T) {
	resetFlags(t)

	var out bytes.Buffer
	require.NoError(t, runContrast(&out, "black", "white"))

	text := out.String()
	assert.Contains(t, text, "21.00:1")
	assert.Contains(t, text, "AAA large")
	assert.NotContains(t, text, "fail")
}

func TestRunContrastInvalidColor(t *testing.T) {
	resetFlags(t)

	err := runContrast(&bytes.Buffer{}, "#12", "white")
	assert.ErrorIs(t, err, colors.ErrInvalidColor)
}

func TestRunDeriveTable(t *testing.T) {
	resetFlags(t)
	deriveMode = "dark"
	deriveBackground = "#213137"
	derivePrimary = "#1a1a1a"
	deriveSecondary = "#69E1E8"

	var out bytes.Buffer
	require.NoError(t, runDerive(&out))

	text := out.String()
	assert.Contains(t, text, "ROLE")
	assert.Contains(t, text, "#1a1a1a")
	assert.Contains(t, text, "FIXED")
	assert.Contains(t, text, "OK")
	assert.NotContains(t, text, "NAME")
}

func TestRunDeriveStrictFailsOnUnresolved(t *testing.T) {
	resetFlags(t)
	deriveMode = "dark"
	deriveBackground = "#ffffff"
	derivePrimary = "#eeeeee"
	deriveSecondary = "#000000"

	var out bytes.Buffer
	require.NoError(t, runDerive(&out))
	assert.Contains(t, out.String(), "FAIL")

	deriveStrict = true
	out.Reset()
	err := runDerive(&out)
	assert.ErrorIs(t, err, palette.ErrUnresolvableContrast)
}

func TestRunDeriveInvalidInput(t *testing.T) {
	resetFlags(t)
	deriveMode = "dark"
	derivePrimary = "not-a-color"

	err := runDerive(&bytes.Buffer{})
	assert.ErrorIs(t, err, colors.ErrInvalidColor)
}

func TestDeriveRequestFromFlagsDefaults(t *testing.T) {
	resetFlags(t)

	req, err := deriveRequestFromFlags()
	require.NoError(t, err)

	preset := theme.PresetFor(palette.ModeLight)
	assert.Equal(t, palette.ModeLight, req.Mode)
	assert.Equal(t, preset.Paper, req.Background)
	assert.Equal(t, preset.Primary, req.Primary)
	assert.Equal(t, preset.Secondary, req.Secondary)

	deriveMode = "sepia"
	_, err = deriveRequestFromFlags()
	assert.Error(t, err)
}

func TestRunDeriveBatchJSON(t *testing.T) {
	resetFlags(t)
	jsonOutput = true

	path := filepath.Join(t.TempDir(), "requests.yaml")
	content := `requests:
  - name: dark-fix
    mode: dark
    background: "#213137"
    primary: "#1a1a1a"
    secondary: "#dc004e"
  - mode: light
    background: "#f3fdff"
    primary: "#3c6dd5"
    secondary: "#dc004e"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out, errOut bytes.Buffer
	require.NoError(t, runDeriveBatch(t.Context(), &out, &errOut, path))
	assert.Empty(t, errOut.String())

	var got []DeriveOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "dark-fix", got[0].Name)
	assert.True(t, got[0].Result.PrimaryAdjustment.Adjusted())
	assert.True(t, got[0].Result.PrimaryAdjustment.Resolved)

	assert.Equal(t, "request-2", got[1].Name)
	assert.Equal(t, "#3c6dd5", got[1].Result.Primary)
	assert.Equal(t, "#dc004e", got[1].Result.Secondary)
}

func TestRunDeriveBatchJSONL(t *testing.T) {
	resetFlags(t)
	jsonlOutput = true

	path := filepath.Join(t.TempDir(), "requests.yaml")
	content := `requests:
  - name: a
    mode: light
    background: "#ffffff"
    primary: "#3c6dd5"
    secondary: "#dc004e"
  - name: b
    mode: dark
    background: "#213137"
    primary: "#69E1E8"
    secondary: "#dc004e"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out bytes.Buffer
	require.NoError(t, runDeriveBatch(t.Context(), &out, &bytes.Buffer{}, path))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for i, name := range []string{"a", "b"} {
		var line DeriveOutput
		require.NoError(t, json.Unmarshal([]byte(lines[i]), &line))
		assert.Equal(t, name, line.Name)
	}
}

func TestRunDeriveBatchMissingFile(t *testing.T) {
	resetFlags(t)

	err := runDeriveBatch(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestThemeSelectionFromFlags(t *testing.T) {
	resetFlags(t)

	sel, err := themeSelectionFromFlags()
	require.NoError(t, err)
	assert.Equal(t, palette.ModeLight, sel.Mode)
	assert.Equal(t, theme.PaletteDefault, sel.Palette)

	themeMode = "dark"
	themePrimary = "#90caf9"
	sel, err = themeSelectionFromFlags()
	require.NoError(t, err)
	assert.Equal(t, palette.ModeDark, sel.Mode)
	assert.Equal(t, theme.PaletteCustom, sel.Palette)
	assert.Equal(t, "#90caf9", sel.Primary)
	assert.Equal(t, theme.PresetFor(palette.ModeDark).Secondary, sel.Secondary)
}

func TestExecuteThemeShowJSON(t *testing.T) {
	out, err := executeCommand(t, "theme", "show", "--mode", "dark", "--json")
	require.NoError(t, err)

	var got theme.Theme
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, palette.ModeDark, got.Mode)
	assert.True(t, got.DarkClass)
	assert.Equal(t, theme.DarkTokens.Paper, got.Palette.Background.Paper)
}

func TestExecuteThemePresets(t *testing.T) {
	out, err := executeCommand(t, "theme", "presets", "--no-color")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "dark"))
	assert.True(t, strings.HasPrefix(lines[2], "light"))
	assert.Contains(t, lines[1], theme.DarkTokens.Primary)
}

func TestExecuteRejectsBothJSONFlags(t *testing.T) {
	_, err := executeCommand(t, "contrast", "black", "white", "--json", "--jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestExecuteRejectsBadLogLevel(t *testing.T) {
	_, err := executeCommand(t, "contrast", "black", "white", "--log-level", "loud")
	assert.Error(t, err)
}

func TestPreviewRefusesNonInteractive(t *testing.T) {
	resetFlags(t)
	nonInteractive = true

	err := runPreview()
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Error(), "interactive terminal")
	assert.Contains(t, preflight.Error(), "try: palette theme show")
}

func TestWriteOutputJSONLNonSlice(t *testing.T) {
	resetFlags(t)
	jsonlOutput = true

	var out bytes.Buffer
	require.NoError(t, WriteOutput(&out, map[string]int{"a": 1}))
	assert.Equal(t, "{\"a\":1}\n", out.String())
}

func TestWriteTableAlignsColoredCells(t *testing.T) {
	resetFlags(t)

	colored := "\x1b[31mFAIL\x1b[0m"
	var out bytes.Buffer
	require.NoError(t, writeTable(&out, []string{"STATUS", "OUTPUT"}, [][]string{
		{colored, "#ffffff"},
		{"OK", "#3c6dd5"},
	}))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	col := strings.Index(lines[0], "OUTPUT")
	assert.Equal(t, col, lipgloss.Width(lines[1])-len("#ffffff"))
	assert.Equal(t, col, strings.Index(lines[2], "#3c6dd5"))
}

func TestBatchProgressReportsTally(t *testing.T) {
	resetFlags(t)
	noProgress = false
	t.Setenv("PALETTE_NO_PROGRESS", "")
	os.Unsetenv("PALETTE_NO_PROGRESS")

	results := []palette.Result{
		{
			PrimaryAdjustment:   palette.Adjustment{Resolved: true},
			SecondaryAdjustment: palette.Adjustment{Resolved: true, Steps: 3},
		},
		{
			PrimaryAdjustment:   palette.Adjustment{Steps: 11},
			SecondaryAdjustment: palette.Adjustment{Resolved: true},
		},
	}

	var out bytes.Buffer
	progress := startBatchProgress(&out, len(results))
	require.NotNil(t, progress)
	progress.Done(results)

	assert.True(t, strings.HasPrefix(out.String(), "Deriving 2 palettes... done in "))
	assert.Contains(t, out.String(), "2 passed, 1 fixed, 1 unresolved")

	jsonOutput = true
	assert.Nil(t, startBatchProgress(&out, 1))
}
