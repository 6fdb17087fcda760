package md2slides

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/logger"
	"github.com/alnah/go-md2slides/internal/scene"
)

// Canvas size of every slide in CSS pixels.
const (
	SlideWidth  = layout.CanvasWidth
	SlideHeight = layout.CanvasHeight
)

// Scene modes accepted by Input.Scene.
const (
	SceneDesign = string(scene.ModeDesign)
	SceneSlides = string(scene.ModeSlides)
)

// Input is one deck to convert.
type Input struct {
	Markdown string // required; slides are separated by "---" lines
	Theme    string // theme id; empty or unknown falls back to the default
	CSS      string // extra CSS appended to every slide document
	HTMLOnly bool   // skip the browser; only HTML is produced
	Scene    string // "", SceneDesign or SceneSlides; non-empty adds scene JSON

	// StrictTheme turns an unknown Theme into ErrThemeNotFound instead of
	// a silent fallback.
	StrictTheme bool
}

// SlideResult is one rendered slide.
type SlideResult struct {
	Index int    // 0-based
	Name  string // "Slide NN"
	HTML  []byte
	SVG   []byte // nil in HTML-only mode or when the capture failed
}

// ConvertResult holds the output of one Convert call. Slides are in deck
// order and always cover the whole deck; Failures lists slides whose
// capture failed.
type ConvertResult struct {
	Theme    string // resolved theme id
	Font     string // family the slides are set in
	Slides   []SlideResult
	Failures []*SlideError
	Scene    []byte // scene JSON when Input.Scene is set

	// MissingFonts lists families the theme asked for that were not
	// available, so Font is a fallback.
	MissingFonts []string
}

// Err joins the per-slide failures, or returns nil when every slide
// succeeded.
func (r *ConvertResult) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	concurrency int
	assetPath   string
	brand       string
	fonts       []string
	log         *logger.Logger
}

// Defaults for converterConfig.
const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 4
)

// WithTimeout sets the per-slide capture timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2slides: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithConcurrency bounds the number of browser pages open at once.
// NewConverter returns ErrInvalidConcurrency when n < 1.
func WithConcurrency(n int) Option {
	return func(c *Converter) {
		c.cfg.concurrency = n
	}
}

// WithAssetPath sets a directory with custom templates, styles and themes.
// Missing assets fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithBrand replaces the brand mark shown in the bottom-left corner and in
// slide titles.
func WithBrand(text string) Option {
	return func(c *Converter) {
		c.cfg.brand = text
	}
}

// WithFonts declares the given families available and skips font probing.
func WithFonts(families ...string) Option {
	return func(c *Converter) {
		c.cfg.fonts = append([]string(nil), families...)
	}
}

// WithLogger sets the logger for font fallbacks, slide failures and
// timings. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.log = logger.Wrap(l)
	}
}

func (cfg converterConfig) validate() error {
	if cfg.concurrency < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidConcurrency, cfg.concurrency)
	}
	return nil
}
