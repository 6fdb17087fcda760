package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value under limit is valid", "12345", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty config", func(*Config) {}, nil},
		{"design scene", func(c *Config) { c.Output.Scene = SceneDesign }, nil},
		{"slides scene", func(c *Config) { c.Output.Scene = SceneSlides }, nil},
		{"unknown scene", func(c *Config) { c.Output.Scene = "figma" }, ErrInvalidValue},
		{"theme name too long", func(c *Config) { c.Theme.Name = strings.Repeat("a", MaxThemeLength+1) }, ErrFieldTooLong},
		{"valid timeout", func(c *Config) { c.Render.Timeout = "2m30s" }, nil},
		{"unparseable timeout", func(c *Config) { c.Render.Timeout = "soon" }, ErrInvalidValue},
		{"zero timeout", func(c *Config) { c.Render.Timeout = "0s" }, ErrInvalidValue},
		{"negative workers", func(c *Config) { c.Render.Workers = -1 }, ErrInvalidValue},
		{"negative concurrency", func(c *Config) { c.Render.Concurrency = -2 }, ErrInvalidValue},
		{"font too long", func(c *Config) { c.Render.Fonts = []string{strings.Repeat("f", MaxFontLength+1)} }, ErrFieldTooLong},
		{"too many fonts", func(c *Config) { c.Render.Fonts = make([]string, MaxFonts+1) }, ErrFieldTooLong},
		{"brand too long", func(c *Config) { c.Brand.Text = strings.Repeat("b", MaxBrandLength+1) }, ErrFieldTooLong},
		{"assets path too long", func(c *Config) { c.Assets.BasePath = strings.Repeat("p", MaxPathLength+1) }, ErrFieldTooLong},
		{"output dir too long", func(c *Config) { c.Output.DefaultDir = strings.Repeat("o", MaxPathLength+1) }, ErrFieldTooLong},
		{"valid port", func(c *Config) { c.Server.Port = 9876 }, nil},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, ErrInvalidValue},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, ErrInvalidValue},
		{"valid log level", func(c *Config) { c.Log.Level = "Debug" }, nil},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"45s", 45 * time.Second, false},
		{"1m", time.Minute, false},
		{"-5s", 0, true},
		{"fast", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			t.Parallel()

			got, err := RenderConfig{Timeout: tt.timeout}.TimeoutDuration()
			if (err != nil) != tt.wantErr {
				t.Fatalf("TimeoutDuration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// LoadConfig
// ---------------------------------------------------------------------------

const fullYAML = `
input:
  defaultDir: ./talks
output:
  defaultDir: ./out
  html: true
  scene: design
theme:
  name: daker-dark
  strict: true
render:
  timeout: 45s
  workers: 2
  concurrency: 3
  fonts:
    - Inter
    - Noto Sans KR
brand:
  text: ACME
assets:
  basePath: ./assets
server:
  port: 8080
log:
  level: debug
  json: true
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig_FullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "deck.yaml", fullYAML)

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := &Config{
		Input:  InputConfig{DefaultDir: "./talks"},
		Output: OutputConfig{DefaultDir: "./out", HTML: true, Scene: SceneDesign},
		Theme:  ThemeConfig{Name: "daker-dark", Strict: true},
		Render: RenderConfig{Timeout: "45s", Workers: 2, Concurrency: 3, Fonts: []string{"Inter", "Noto Sans KR"}},
		Brand:  BrandConfig{Text: "ACME"},
		Assets: AssetsConfig{BasePath: "./assets"},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "debug", JSON: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unknownField := writeConfig(t, dir, "unknown.yaml", "theme:\n  colour: red\n")
	badYAML := writeConfig(t, dir, "bad.yaml", "theme: [unclosed\n")
	invalid := writeConfig(t, dir, "invalid.yaml", "output:\n  scene: pdf\n")

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", filepath.Join(dir, "nope.yaml"), ErrConfigNotFound},
		{"unknown field", unknownField, ErrConfigParse},
		{"malformed yaml", badYAML, ErrConfigParse},
		{"invalid value", invalid, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// Not parallel: changes the working directory.
func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	writeConfig(t, dir, "work.yml", "brand:\n  text: Work\n")

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig(work) error = %v", err)
	}
	if cfg.Brand.Text != "Work" {
		t.Errorf("Brand.Text = %q, want %q", cfg.Brand.Text, "Work")
	}

	_, err = LoadConfig("absent")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(absent) error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "absent.yaml") {
		t.Errorf("error %q should list the searched paths", err)
	}
}

// Not parallel: changes the working directory.
func TestLoadConfig_YAMLBeforeYML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfig(t, dir, "deck.yaml", "brand:\n  text: YAML\n")
	writeConfig(t, dir, "deck.yml", "brand:\n  text: YML\n")

	cfg, err := LoadConfig("deck")
	if err != nil {
		t.Fatalf("LoadConfig(deck) error = %v", err)
	}
	if cfg.Brand.Text != "YAML" {
		t.Errorf("Brand.Text = %q, want %q", cfg.Brand.Text, "YAML")
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("deck")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the two local candidates", paths)
	}
	if paths[0] != "deck.yaml" || paths[1] != "deck.yml" {
		t.Errorf("SearchPaths() local candidates = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, appConfigDir) {
			t.Errorf("user path %q should be under %s", p, appConfigDir)
		}
	}
}
