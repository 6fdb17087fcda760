package md2slides

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fonts"
	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/logger"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/render"
	"github.com/alnah/go-md2slides/internal/scene"
	"github.com/alnah/go-md2slides/internal/theme"
)

// Converter orchestrates the markdown-to-slides pipeline.
// Create with NewConverter, use Convert for each deck, and Close when done.
// A Converter owns at most one browser and is safe for concurrent use.
type Converter struct {
	cfg      converterConfig
	log      *logger.Logger
	loader   assets.AssetLoader
	themes   *theme.Registry
	renderer *render.Renderer
	capturer slideCapturer
	prober   fonts.Prober

	fontsOnce  sync.Once
	capability fonts.Capability
}

// NewConverter creates a Converter. Assets and custom themes are loaded
// here; the browser is started lazily by the first capture.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:     defaultTimeout,
			concurrency: defaultConcurrency,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}
	c.log = c.cfg.log
	if c.log == nil {
		c.log = logger.Nop()
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.loader = resolver
	} else {
		c.loader = assets.NewEmbeddedLoader()
	}

	themesDir, _ := c.loader.ThemesDir()
	registry, err := theme.LoadRegistry(themesDir)
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}
	c.themes = registry

	c.renderer, err = render.New(c.loader)
	if err != nil {
		return nil, err
	}

	// Create the browser renderer if not injected (e.g., by tests)
	if c.capturer == nil || c.prober == nil {
		rr := newRodRenderer(c.cfg.timeout)
		if c.capturer == nil {
			c.capturer = rr
		}
		if c.prober == nil {
			c.prober = rr
		}
	}

	return c, nil
}

// Themes returns the identifiers of every theme this converter can use.
func (c *Converter) Themes() []string {
	return c.themes.IDs()
}

// DefaultTheme returns the identifier used for empty or unknown themes.
func (c *Converter) DefaultTheme() string {
	return c.themes.DefaultID()
}

// Convert renders every slide of input. The context bounds the whole run;
// each capture is further bounded by the converter timeout.
//
// A failed capture does not abort the run: the slide is reported in
// ConvertResult.Failures and the others are still produced. Failing to
// start the browser is fatal and returns an error wrapping
// ErrBrowserConnect. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	slides := pipeline.Parse(input.Markdown)
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	th, err := c.resolveTheme(input)
	if err != nil {
		return nil, err
	}

	log := c.log.WithFields(map[string]any{"theme": th.ID, "slides": len(slides)})

	face := fonts.Resolve(c.fontCapability(ctx, input.HTMLOnly), th.Font)
	opts := layout.Options{Face: face, Brand: c.cfg.brand}

	res := &ConvertResult{
		Theme:  th.ID,
		Font:   face.Family,
		Slides: make([]SlideResult, len(slides)),
	}
	if th.Font != nil && th.Font.Family != "" && th.Font.Family != face.Family {
		res.MissingFonts = []string{th.Font.Family}
	}
	for i, slide := range slides {
		root := layout.LayoutSlide(slide, i, len(slides), th, opts)
		doc, err := c.renderer.HTML(root, render.Options{
			Title: render.Title(c.cfg.brand, i),
			CSS:   input.CSS,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrHTMLRender, root.Name(), err)
		}
		res.Slides[i] = SlideResult{Index: i, Name: root.Name(), HTML: []byte(doc)}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if input.Scene != "" {
		res.Scene, err = c.buildScene(ctx, slides, th, scene.Mode(input.Scene))
		if err != nil {
			return nil, err
		}
	}

	if input.HTMLOnly {
		return res, nil
	}

	start := time.Now()
	if err := c.captureAll(ctx, res, log); err != nil {
		return nil, err
	}
	log.With("duration_ms", time.Since(start).Milliseconds()).
		With("failed", len(res.Failures)).
		Debug("capture finished")

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.capturer != nil {
		return c.capturer.Close()
	}
	return nil
}

// resolveTheme looks the input theme up in the registry. Unknown ids fall
// back to the default theme unless the input is strict.
func (c *Converter) resolveTheme(input Input) (theme.Theme, error) {
	if input.StrictTheme && input.Theme != "" {
		th, ok := c.themes.Lookup(input.Theme)
		if !ok {
			return theme.Theme{}, fmt.Errorf("%w: %q", ErrThemeNotFound, input.Theme)
		}
		return th, nil
	}
	th := c.themes.Resolve(input.Theme)
	if input.Theme != "" && th.ID != input.Theme {
		c.log.With("requested", input.Theme).With("theme", th.ID).Warn("unknown theme, using default")
	}
	return th, nil
}

// fontCapability returns the fonts slides may use. Probing happens at most
// once per converter; HTML-only runs never start the browser for it.
func (c *Converter) fontCapability(ctx context.Context, htmlOnly bool) fonts.Capability {
	if len(c.cfg.fonts) > 0 {
		return fonts.Assume(c.cfg.fonts...)
	}
	if htmlOnly {
		return fonts.Assume(fonts.DefaultFamilies...)
	}

	// The result is shared by every later call, so the first caller's
	// cancellation must not decide it. The renderer timeout still bounds it.
	c.fontsOnce.Do(func() {
		families := c.probeFamilies()
		capability, err := fonts.Detect(context.WithoutCancel(ctx), c.prober, families)
		if err != nil {
			c.log.With("error", err.Error()).Warn("font probe failed, using fallback fonts")
		}
		for _, f := range families {
			if !capability.Available(f) {
				c.log.With("family", f).Debug("font unavailable")
			}
		}
		c.capability = capability
	})
	return c.capability
}

// probeFamilies lists the default families plus every theme's own family.
func (c *Converter) probeFamilies() []string {
	families := append([]string(nil), fonts.DefaultFamilies...)
	for _, id := range c.themes.IDs() {
		if th, ok := c.themes.Lookup(id); ok && th.Font != nil && th.Font.Family != "" {
			families = append(families, th.Font.Family)
		}
	}
	return families
}

// buildScene lays the deck out for the design tool, which loads its own
// fonts, and encodes the result.
func (c *Converter) buildScene(ctx context.Context, slides []pipeline.Slide, th theme.Theme, mode scene.Mode) ([]byte, error) {
	families := c.cfg.fonts
	if len(families) == 0 {
		families = fonts.DefaultFamilies
	}
	face := fonts.Resolve(fonts.Assume(families...), th.Font)

	doc, _, err := scene.Run(ctx, slides, th, scene.Options{
		Mode:   mode,
		Layout: layout.Options{Face: face, Brand: c.cfg.brand},
	})
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	var buf bytes.Buffer
	if err := scene.Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// captureAll rasterizes every slide with at most cfg.concurrency pages open.
// Only a browser start failure or cancellation of ctx aborts the batch.
func (c *Converter) captureAll(ctx context.Context, res *ConvertResult, log *logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.concurrency)

	failures := make([]error, len(res.Slides))
	for i := range res.Slides {
		slide := &res.Slides[i]
		g.Go(func() error {
			svg, err := c.captureSlide(gctx, slide)
			if err == nil {
				slide.SVG = svg
				return nil
			}
			if errors.Is(err, ErrBrowserConnect) {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures[i] = err
			log.With("slide", slide.Name).Error(err, "slide capture failed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, err := range failures {
		if err != nil {
			res.Failures = append(res.Failures, &SlideError{Index: i, Err: err})
		}
	}
	return nil
}

func (c *Converter) captureSlide(ctx context.Context, slide *SlideResult) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	start := time.Now()
	png, err := c.capturer.Capture(ctx, string(slide.HTML))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s: %w", ErrCapture, c.cfg.timeout, err)
		}
		return nil, err
	}

	c.log.With("slide", slide.Name).
		With("duration_ms", time.Since(start).Milliseconds()).
		Debug("slide captured")
	return wrapSVG(png, render.Title(c.cfg.brand, slide.Index)), nil
}

// validateInput checks that required fields are present and valid.
func validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	switch input.Scene {
	case "", SceneDesign, SceneSlides:
	default:
		return fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidSceneMode, input.Scene, SceneDesign, SceneSlides)
	}
	return nil
}
