// Package batch loads palette derivation requests from YAML files.
package batch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/palette/internal/palette"
)

// Entry is one named derivation request.
type Entry struct {
	Name            string `yaml:"name"`
	palette.Request `yaml:",inline"`
}

// File is the on-disk batch format.
type File struct {
	Items  []Entry `yaml:"requests"`
	Source string  `yaml:"-"`
}

// Requests returns the palette requests in file order.
func (f *File) Requests() []palette.Request {
	reqs := make([]palette.Request, len(f.Items))
	for i, entry := range f.Items {
		reqs[i] = entry.Request
	}
	return reqs
}

// LoadFile reads and validates a batch file.
func LoadFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("batch path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	file.Source = path
	return file, nil
}

// Parse decodes and validates batch YAML.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("no requests defined")
	}

	seen := make(map[string]struct{}, len(file.Items))
	for i := range file.Items {
		entry := &file.Items[i]
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" {
			entry.Name = fmt.Sprintf("request-%d", i+1)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate request name %q", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("request %q: %w", entry.Name, err)
		}
	}
	return &file, nil
}

func (e *Entry) validate() error {
	mode, err := palette.ParseMode(string(e.Mode))
	if err != nil {
		return err
	}
	e.Mode = mode

	missing := make([]string, 0, 3)
	if strings.TrimSpace(e.Background) == "" {
		missing = append(missing, "background")
	}
	if strings.TrimSpace(e.Primary) == "" {
		missing = append(missing, "primary")
	}
	if strings.TrimSpace(e.Secondary) == "" {
		missing = append(missing, "secondary")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
