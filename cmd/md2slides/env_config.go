package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2slides/internal/config"
)

// envPrefix namespaces every environment variable the CLI reads.
const envPrefix = "MD2SLIDES_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2SLIDES_CONFIG: config file name or path
	Theme      string // MD2SLIDES_THEME: theme id
	Timeout    string // MD2SLIDES_TIMEOUT: per-slide capture timeout
	OutputDir  string // MD2SLIDES_OUTPUT_DIR: default output directory
	Workers    int    // MD2SLIDES_WORKERS: decks converted in parallel
	Brand      string // MD2SLIDES_BRAND: brand mark text
	Port       int    // MD2SLIDES_PORT: serve port
}

// knownEnvVars lists valid MD2SLIDES_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envPrefix + "CONFIG":     true,
	envPrefix + "THEME":      true,
	envPrefix + "TIMEOUT":    true,
	envPrefix + "OUTPUT_DIR": true,
	envPrefix + "WORKERS":    true,
	envPrefix + "BRAND":      true,
	envPrefix + "PORT":       true,
	envPrefix + "CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv(envPrefix + "CONFIG"),
		Theme:      os.Getenv(envPrefix + "THEME"),
		Timeout:    os.Getenv(envPrefix + "TIMEOUT"),
		OutputDir:  os.Getenv(envPrefix + "OUTPUT_DIR"),
		Brand:      os.Getenv(envPrefix + "BRAND"),
	}

	if workers := os.Getenv(envPrefix + "WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if port := os.Getenv(envPrefix + "PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 && p <= 65535 {
			cfg.Port = p
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MD2SLIDES_*
// variable, such as MD2SLIDES_THEMES for MD2SLIDES_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment variables onto the loaded config.
// Resulting priority: CLI flags > env > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme.Name = env.Theme
	}
	if env.Timeout != "" {
		cfg.Render.Timeout = env.Timeout
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.Brand != "" {
		cfg.Brand.Text = env.Brand
	}
	if env.Port > 0 {
		cfg.Server.Port = env.Port
	}
}
