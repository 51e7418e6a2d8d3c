package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencode-ai/palette/internal/palette"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requests.yaml")

	content := `requests:
  - name: dark-default
    mode: dark
    background: "#213137"
    primary: "#69E1E8"
    secondary: "#dc004e"
  - mode: Light
    background: "#f3fdff"
    primary: "#90caf9"
    secondary: "#3c6dd5"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write batch: %v", err)
	}

	file, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if file.Source != path {
		t.Fatalf("expected source %q, got %q", path, file.Source)
	}
	if len(file.Items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(file.Items))
	}
	if file.Items[0].Name != "dark-default" {
		t.Fatalf("unexpected name: %q", file.Items[0].Name)
	}
	if file.Items[1].Name != "request-2" {
		t.Fatalf("expected generated name, got %q", file.Items[1].Name)
	}
	if file.Items[1].Mode != palette.ModeLight {
		t.Fatalf("expected normalized light mode, got %q", file.Items[1].Mode)
	}

	reqs := file.Requests()
	if reqs[0].Background != "#213137" || reqs[1].Primary != "#90caf9" {
		t.Fatalf("unexpected requests: %+v", reqs)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "requests: []\n", "no requests"},
		{"bad mode", "requests:\n  - {mode: sepia, background: '#fff', primary: '#000', secondary: '#000'}\n", "unknown mode"},
		{"missing colors", "requests:\n  - {name: a, mode: dark, background: '#fff'}\n", "missing primary, secondary"},
		{"duplicate", "requests:\n  - {name: a, mode: dark, background: '#fff', primary: '#000', secondary: '#000'}\n  - {name: a, mode: dark, background: '#fff', primary: '#000', secondary: '#000'}\n", "duplicate request name"},
		{"not yaml", "requests: [", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadFile(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
