package main

import (
	"fmt"
	"time"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/logger"
)

// loadConfig loads the config named by the flag or MD2SLIDES_CONFIG and
// overlays the environment. Without a name it starts from defaults.
func loadConfig(configFlag string, env *envConfig) (*config.Config, error) {
	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, &configError{name: name, err: err}
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// configError names the config that failed to load.
type configError struct {
	name string
	err  error
}

func (e *configError) Error() string { return "loading config: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// mergeCommonFlags applies flags shared by every command. CLI wins.
func mergeCommonFlags(f commonFlags, cfg *config.Config) {
	if f.verbose {
		cfg.Log.Level = "debug"
	} else if f.quiet {
		cfg.Log.Level = "error"
	}
	if f.logJSON {
		cfg.Log.JSON = true
	}
}

// mergeThemeFlags applies theme and branding flags. CLI wins.
func mergeThemeFlags(f themeFlags, cfg *config.Config) {
	if f.name != "" {
		cfg.Theme.Name = f.name
	}
	if f.strict {
		cfg.Theme.Strict = true
	}
	if f.brand != "" {
		cfg.Brand.Text = f.brand
	}
	if f.assets != "" {
		cfg.Assets.BasePath = f.assets
	}
	if len(f.fonts) > 0 {
		cfg.Render.Fonts = f.fonts
	}
}

// mergeConvertFlags applies convert flags onto cfg. CLI wins.
func mergeConvertFlags(f *convertFlags, cfg *config.Config) {
	mergeCommonFlags(f.common, cfg)
	mergeThemeFlags(f.theme, cfg)

	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.workers > 0 {
		cfg.Render.Workers = f.workers
	}
	if f.concurrency > 0 {
		cfg.Render.Concurrency = f.concurrency
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.outputMode.html {
		cfg.Output.HTML = true
	}
	if f.outputMode.scene != "" {
		cfg.Output.Scene = f.outputMode.scene
	}
}

// mergeServeFlags applies serve flags onto cfg. CLI wins.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	mergeCommonFlags(f.common, cfg)
	mergeThemeFlags(f.theme, cfg)

	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.port > 0 {
		cfg.Server.Port = f.port
	}
}

// validateTimeout checks a --timeout value before it reaches the config.
func validateTimeout(s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, s)
	}
	return nil
}

// newLogger builds the diagnostics logger. The CLI defaults to warnings
// so normal runs only print the result lines.
func newLogger(cfg *config.Config, env *Environment) (*logger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "warn"
	}
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: !cfg.Log.JSON,
		Writer:        env.Stderr,
	})
}

// converterOptions translates cfg into converter options.
func converterOptions(cfg *config.Config, log *logger.Logger) ([]md2slides.Option, error) {
	timeout, err := cfg.Render.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []md2slides.Option{md2slides.WithLogger(log.Zerolog())}
	if timeout > 0 {
		opts = append(opts, md2slides.WithTimeout(timeout))
	}
	if cfg.Render.Concurrency > 0 {
		opts = append(opts, md2slides.WithConcurrency(cfg.Render.Concurrency))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2slides.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Brand.Text != "" {
		opts = append(opts, md2slides.WithBrand(cfg.Brand.Text))
	}
	if len(cfg.Render.Fonts) > 0 {
		opts = append(opts, md2slides.WithFonts(cfg.Render.Fonts...))
	}
	return opts, nil
}
