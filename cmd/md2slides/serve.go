package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fonts"
	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/server"
	"github.com/alnah/go-md2slides/internal/theme"
)

// serveFunc runs srv on addr until ctx is done.
type serveFunc func(ctx context.Context, srv *server.Server, addr string) error

func listenAndServe(ctx context.Context, srv *server.Server, addr string) error {
	return srv.ListenAndServe(ctx, addr)
}

// runServe serves one deck to the design plugin.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg, env)
	if err != nil {
		return err
	}

	if len(positional) != 1 {
		return fmt.Errorf("%w: serve takes exactly one markdown file", ErrNoInput)
	}
	mdPath := positional[0]
	if err := validateMarkdownExtension(mdPath); err != nil {
		return err
	}
	if _, err := os.Stat(mdPath); err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	outDir := cfg.Output.DefaultDir
	if outDir == "" {
		outDir = deckDir(mdPath)
	}

	loader, registry, err := loadDeckAssets(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	th, err := pickTheme(registry, cfg.Theme)
	if err != nil {
		return err
	}
	if th.ID != cfg.Theme.Name && cfg.Theme.Name != "" {
		log.With("requested", cfg.Theme.Name).With("theme", th.ID).Warn("unknown theme, using default")
	}

	families := cfg.Render.Fonts
	if len(families) == 0 {
		families = fonts.DefaultFamilies
	}
	srv := server.New(server.Config{
		OutputDir:    outDir,
		MarkdownPath: mdPath,
		Theme:        th,
		Layout: layout.Options{
			Face:  fonts.Resolve(fonts.Assume(families...), th.Font),
			Brand: cfg.Brand.Text,
		},
		Assets: loader,
		Logger: log,
	})

	port := cfg.Server.Port
	if port == 0 {
		port = server.DefaultPort
	}
	addr := net.JoinHostPort("localhost", strconv.Itoa(port))

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s (theme %s) on http://%s\n", mdPath, th.ID, addr)
	}
	return env.Serve(ctx, srv, addr)
}

// loadDeckAssets builds the asset loader and theme registry for basePath.
// An empty basePath uses the embedded assets and built-in themes.
func loadDeckAssets(basePath string) (assets.AssetLoader, *theme.Registry, error) {
	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if basePath != "" {
		resolver, err := assets.NewAssetResolver(basePath)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", md2slides.ErrInvalidAssetPath, err)
		}
		loader = resolver
	}

	dir, _ := loader.ThemesDir()
	registry, err := theme.LoadRegistry(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading themes: %w", err)
	}
	return loader, registry, nil
}

// pickTheme resolves the configured theme, failing on unknown ids in
// strict mode.
func pickTheme(registry *theme.Registry, tc config.ThemeConfig) (theme.Theme, error) {
	if tc.Strict && tc.Name != "" {
		th, ok := registry.Lookup(tc.Name)
		if !ok {
			return theme.Theme{}, &themeError{
				err:       fmt.Errorf("%w: %q", md2slides.ErrThemeNotFound, tc.Name),
				available: registry.IDs(),
			}
		}
		return th, nil
	}
	return registry.Resolve(tc.Name), nil
}

// themeError carries the registered ids for the not-found hint.
type themeError struct {
	err       error
	available []string
}

func (e *themeError) Error() string { return e.err.Error() }
func (e *themeError) Unwrap() error { return e.err }
