package theme

import (
	"fmt"
	"sort"
)

// Registry maps theme identifiers to themes. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	themes    map[string]Theme
	defaultID string
}

// RegistryOption configures a Registry under construction.
type RegistryOption func(*Registry) error

// WithTheme registers t, replacing a built-in theme with the same ID.
func WithTheme(t Theme) RegistryOption {
	return func(r *Registry) error {
		if t.ID == "" {
			return fmt.Errorf("registering theme %q: empty id", t.Name)
		}
		r.themes[t.ID] = t.Clone()
		return nil
	}
}

// WithDefault changes the fallback theme. The id must be registered by the
// time all options have been applied.
func WithDefault(id string) RegistryOption {
	return func(r *Registry) error {
		r.defaultID = id
		return nil
	}
}

// NewRegistry builds a registry holding the built-in themes plus any themes
// added through options.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		themes:    make(map[string]Theme),
		defaultID: DefaultID,
	}
	for _, t := range builtinThemes() {
		r.themes[t.ID] = t
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if _, ok := r.themes[r.defaultID]; !ok {
		return nil, fmt.Errorf("default theme %q is not registered", r.defaultID)
	}
	return r, nil
}

// builtin holds only the built-in themes.
var builtin = func() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}()

// Builtin returns the registry of built-in themes.
func Builtin() *Registry {
	return builtin
}

// Resolve returns the theme registered under id, or the default theme when
// id is empty or unknown. The returned value is a private copy.
func (r *Registry) Resolve(id string) Theme {
	if t, ok := r.themes[id]; ok {
		return t.Clone()
	}
	return r.themes[r.defaultID].Clone()
}

// Lookup returns the theme registered under id without falling back.
func (r *Registry) Lookup(id string) (Theme, bool) {
	t, ok := r.themes[id]
	if !ok {
		return Theme{}, false
	}
	return t.Clone(), true
}

// DefaultID returns the identifier of the fallback theme.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// IDs returns all registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.themes))
	for id := range r.themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Color resolves a palette key against t, falling back to the body text
// color for unknown keys.
func (t Theme) Color(key ColorKey) Color {
	if c, ok := t.Colors.Color(key); ok {
		return c
	}
	return t.Colors.BodyText
}

// Resolve looks id up in the built-in registry.
func Resolve(id string) Theme {
	return builtin.Resolve(id)
}
