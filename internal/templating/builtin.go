package templating

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltin parses the embedded template definitions, ordered by file
// name.
func LoadBuiltin() ([]Template, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin templates: %w", err)
	}
	out := make([]Template, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		applyDefaults(&t)
		if err := t.Check(); err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		out = append(out, t)
	}
	return out, nil
}

// applyDefaults fills the optional fields a definition may omit.
func applyDefaults(t *Template) {
	if t.Status == "" {
		t.Status = StatusActive
	}
	if t.Format == "" {
		t.Format = FormatPDF
	}
	if t.Version == "" {
		t.Version = "1.0"
	}
	for i := range t.Variables {
		if t.Variables[i].Kind == "" {
			t.Variables[i].Kind = KindText
		}
	}
}
