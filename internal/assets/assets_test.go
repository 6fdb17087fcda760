package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{
			name:      "base style returns content",
			styleName: DefaultStyleName,
		},
		{
			name:      "nonexistent style returns ErrStyleNotFound",
			styleName: "nonexistent",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "empty name returns ErrInvalidAssetName",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal with slash returns ErrInvalidAssetName",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "path traversal with backslash returns ErrInvalidAssetName",
			styleName: "..\\secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "name with extension returns ErrInvalidAssetName",
			styleName: "slide.css",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "valid name that does not exist",
			styleName: "my_style",
			wantErr:   ErrStyleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if content == "" {
				t.Errorf("LoadStyle(%q) returned empty content", tt.styleName)
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		contains []string
		wantErr  error
	}{
		{
			name:     "slide template defines text block",
			template: SlideTemplateName,
			contains: []string{`define "text"`, `{{.BaseCSS}}`, `class="slide"`},
		},
		{
			name:     "importer page queries the api",
			template: ImporterTemplateName,
			contains: []string{"/api/slides", "/api/scene"},
		},
		{
			name:     "unknown template",
			template: "cover",
			wantErr:  ErrTemplateNotFound,
		},
		{
			name:     "traversal rejected",
			template: "../templates/slide",
			wantErr:  ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadTemplate(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.template, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.template, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("LoadTemplate(%q) missing %q", tt.template, want)
				}
			}
		})
	}
}

func TestLoadTemplate_SlideParses(t *testing.T) {
	t.Parallel()

	src, err := LoadTemplate(SlideTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	tmpl, err := template.New(SlideTemplateName).Parse(src)
	if err != nil {
		t.Fatalf("parsing slide template: %v", err)
	}
	if tmpl.Lookup("text") == nil {
		t.Error("slide template does not define the \"text\" block")
	}
}

func TestEmbeddedLoader_ThemesDir(t *testing.T) {
	t.Parallel()

	if dir, ok := NewEmbeddedLoader().ThemesDir(); ok || dir != "" {
		t.Errorf("ThemesDir() = (%q, %v), want (\"\", false)", dir, ok)
	}
}

func TestSlideStyleCanvas(t *testing.T) {
	t.Parallel()

	css, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	for _, want := range []string{"width: 1920px", "height: 1080px", "white-space: pre-line"} {
		if !strings.Contains(css, want) {
			t.Errorf("slide.css missing %q", want)
		}
	}
}
