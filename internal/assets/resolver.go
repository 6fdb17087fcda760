package assets

import "errors"

// AssetResolver layers a custom asset directory over the embedded assets.
// A custom copy wins; a name it lacks falls through to the embedded one.
// Invalid names and read errors stop the lookup instead of falling through.
type AssetResolver struct {
	layers []AssetLoader // custom first, embedded last
	themes string        // custom themes directory, "" when absent
}

// NewAssetResolver returns a resolver over customBasePath, or over the
// embedded assets alone when it is empty. A set but unusable path fails
// with ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	embedded := NewEmbeddedLoader()
	if customBasePath == "" {
		return &AssetResolver{layers: []AssetLoader{embedded}}, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	themes, _ := custom.ThemesDir()
	return &AssetResolver{
		layers: []AssetLoader{custom, embedded},
		themes: themes,
	}, nil
}

// LoadStyle loads a stylesheet from the first layer that has it.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(ErrStyleNotFound, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplate loads a template from the first layer that has it.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(ErrTemplateNotFound, func(l AssetLoader) (string, error) {
		return l.LoadTemplate(name)
	})
}

// ThemesDir returns the custom themes directory, if one exists.
func (r *AssetResolver) ThemesDir() (string, bool) {
	return r.themes, r.themes != ""
}

// HasCustomLoader reports whether a custom directory is layered in.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

func (r *AssetResolver) first(notFound error, load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, notFound) {
			return "", err
		}
	}
	return "", err
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
