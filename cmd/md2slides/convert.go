package main

import (
	"context"
	"fmt"
	"os"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fileutil"
)

// batchError reports failed decks. It unwraps to ErrDecksFailed and to the
// first failure so exit codes follow the underlying cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d decks failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error {
	return []error{ErrDecksFailed, e.first}
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env)
	if err != nil {
		return err
	}

	// Validate raw flag values early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if err := validateTimeout(flags.timeout); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Render.Workers); err != nil {
		return err
	}

	log, err := newLogger(cfg, env)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	decks, err := discoverDecks(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(decks) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	css, err := resolveCSS(flags.css)
	if err != nil {
		return err
	}

	opts, err := converterOptions(cfg, log)
	if err != nil {
		return err
	}

	poolSize := min(md2slides.ResolvePoolSize(cfg.Render.Workers), len(decks))
	log.With("pool_size", poolSize).With("decks", len(decks)).Debug("starting conversion")

	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Error(err, "closing converters")
		}
	}()

	results := convertBatch(ctx, pool, decks, &conversionParams{
		css:         css,
		theme:       cfg.Theme.Name,
		strictTheme: cfg.Theme.Strict,
		htmlOutput:  cfg.Output.HTML,
		htmlOnly:    flags.outputMode.htmlOnly,
		scene:       cfg.Output.Scene,
	})

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return &batchError{failed: failed, total: len(results), first: firstError(results)}
	}
	return nil
}

// resolveInputPath returns the positional input, or the configured default
// directory.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected one input, got %d", errUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", ErrNoInput
	}
}

// resolveCSS returns inline rules as is and reads anything else as a file.
func resolveCSS(value string) (string, error) {
	if value == "" || fileutil.IsCSS(value) {
		return value, nil
	}
	data, err := os.ReadFile(value) // #nosec G304 -- user-provided CSS path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

func firstError(results []DeckResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
