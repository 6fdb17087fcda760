// Package config loads the YAML configuration of the md2slides CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxThemeLength    = 64   // theme ids are asset names
	MaxBrandLength    = 50   // "DAKER.ai"
	MaxTimeoutLength  = 20   // "30s", "2m30s"
	MaxFontLength     = 100  // family name
	MaxFonts          = 16   // families listed under render.fonts
	MaxLogLevelLength = 10   // "debug", "warn"
)

// Config directory name under the user config dir.
const appConfigDir = "go-md2slides"

// Scene modes accepted by output.scene.
const (
	SceneDesign = "design"
	SceneSlides = "slides"
)

// Config holds all configuration for slide generation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Theme  ThemeConfig  `yaml:"theme"`
	Render RenderConfig `yaml:"render"`
	Brand  BrandConfig  `yaml:"brand"`
	Assets AssetsConfig `yaml:"assets"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines where and what is written.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to input)
	HTML       bool   `yaml:"html"`       // Also write slide_NN.html
	Scene      string `yaml:"scene"`      // "", "design" or "slides": also write slides.json
}

// ThemeConfig selects the deck theme.
type ThemeConfig struct {
	Name   string `yaml:"name"`   // Theme id (empty = default)
	Strict bool   `yaml:"strict"` // Fail on unknown theme instead of falling back
}

// RenderConfig tunes the browser capture.
type RenderConfig struct {
	Timeout     string   `yaml:"timeout"`     // Per-slide capture timeout, e.g. "30s"
	Workers     int      `yaml:"workers"`     // Decks converted in parallel (0 = auto)
	Concurrency int      `yaml:"concurrency"` // Pages open at once per deck (0 = default)
	Fonts       []string `yaml:"fonts"`       // Families assumed installed; skips probing
}

// BrandConfig sets the brand mark.
type BrandConfig struct {
	Text string `yaml:"text"` // Bottom-left mark and SVG title prefix
}

// AssetsConfig configures custom asset loading.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory with styles/, templates/ and themes/
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Port int `yaml:"port"` // 0 = default port
}

// LogConfig configures diagnostics on stderr.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`  // JSON lines instead of console output
}

// TimeoutDuration parses render.timeout. Zero means unset.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, r.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	switch c.Output.Scene {
	case "", SceneDesign, SceneSlides:
	default:
		return fmt.Errorf("%w: output.scene: %q (must be %s or %s)", ErrInvalidValue, c.Output.Scene, SceneDesign, SceneSlides)
	}

	if err := validateFieldLength("theme.name", c.Theme.Name, MaxThemeLength); err != nil {
		return err
	}

	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if _, err := c.Render.TimeoutDuration(); err != nil {
		return err
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers: must be >= 0, got %d", ErrInvalidValue, c.Render.Workers)
	}
	if c.Render.Concurrency < 0 {
		return fmt.Errorf("%w: render.concurrency: must be >= 0, got %d", ErrInvalidValue, c.Render.Concurrency)
	}
	if len(c.Render.Fonts) > MaxFonts {
		return fmt.Errorf("%w: render.fonts (%d entries, max %d)", ErrFieldTooLong, len(c.Render.Fonts), MaxFonts)
	}
	for i, f := range c.Render.Fonts {
		if err := validateFieldLength(fmt.Sprintf("render.fonts[%d]", i), f, MaxFontLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("brand.text", c.Brand.Text, MaxBrandLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port: must be between 0 and 65535, got %d", ErrInvalidValue, c.Server.Port)
	}

	if err := validateFieldLength("log.level", c.Log.Level, MaxLogLevelLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn or error)", ErrInvalidValue, c.Log.Level)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: default theme, no extra
// outputs, automatic worker count.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appConfigDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries the current directory, then the user config directory, each with
// .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
