package routeio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Translations is an opaque key to template-string lookup: a formatter
// asks for "turn/right" or "highway/motorway" and gets back a phrase
// template it then fills in. routeio itself never interprets a template's
// contents, and nothing in the search or annotation path reads one.
type Translations struct {
	templates map[string]string
}

// NewTranslations wraps an already-loaded key to template map.
func NewTranslations(templates map[string]string) *Translations {
	return &Translations{templates: templates}
}

// LoadTranslationsYAML reads a flat key: template mapping from path, in the
// style profile.LoadYAML reads a profile file.
func LoadTranslationsYAML(path string) (*Translations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routeio: read translations %q: %w", path, err)
	}
	var templates map[string]string
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("routeio: parse translations %q: %w", path, err)
	}
	return NewTranslations(templates), nil
}

// Lookup returns the template registered for key, if any.
func (t *Translations) Lookup(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	tmpl, ok := t.templates[key]
	return tmpl, ok
}
