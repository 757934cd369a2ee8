package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source looks up an external palette for a theme id.
// A missing palette is (Partial{}, nil); an unreadable or malformed one
// is an error wrapping ErrSourceUnavailable.
type Source interface {
	Lookup(id string) (Partial, error)
}

// FileSource reads palette documents from Dir, one file per theme id.
// Files may be JSON or YAML.
type FileSource struct {
	Dir   string
	Files map[string]string // theme id -> file name
}

// Path returns the palette file of id, or "" when none is configured
func (s FileSource) Path(id string) string {
	name, ok := s.Files[id]
	if !ok || name == "" || s.Dir == "" {
		return ""
	}
	return filepath.Join(s.Dir, name)
}

// Lookup implements Source
func (s FileSource) Lookup(id string) (Partial, error) {
	path := s.Path(id)
	if path == "" {
		return Partial{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Partial{}, nil
	}
	if err != nil {
		return Partial{}, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Partial{}, fmt.Errorf("%w: failed to parse %s: %v", ErrSourceUnavailable, path, err)
	}

	return Partial{
		Primary:     str(doc, "colors", "brand", "primary"),
		Bg:          firstNonEmpty(str(doc, "colors", "background", "dark"), str(doc, "colors", "background", "primary")),
		Accent:      str(doc, "colors", "brand", "secondary"),
		Fg:          firstNonEmpty(str(doc, "colors", "text", "primary"), str(doc, "colors", "text", "inverse")),
		BgSecondary: str(doc, "colors", "background", "secondary"),
		BgTertiary:  str(doc, "colors", "background", "tertiary"),
	}, nil
}

// str follows path through nested mappings. A missing key or a value of
// the wrong type anywhere on the path yields "", leaving sibling fields usable.
func str(doc map[string]any, path ...string) string {
	var v any = doc
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			return ""
		}
		v = m[key]
	}
	s, _ := v.(string)
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
