package md2slides

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/fonts"
	"github.com/alnah/go-md2slides/internal/process"
)

// slideCapturer rasterizes one standalone slide document to PNG.
type slideCapturer interface {
	Capture(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ slideCapturer = (*rodRenderer)(nil)
	_ fonts.Prober  = (*rodRenderer)(nil)
)

// waitFontsJS resolves once every web font used by the page has loaded.
const waitFontsJS = `() => document.fonts.ready.then(() => true)`

// rodRenderer implements slideCapturer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
// Capture may be called from several goroutines; each call uses its own page.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given page timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close releases browser resources. Chrome helper processes are killed
// with the whole process group so none outlive the converter.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// Capture writes htmlContent to a temp file, opens it at canvas size, waits
// for fonts and screenshots exactly the canvas. Without a deadline on ctx
// the renderer timeout applies.
func (r *rodRenderer) Capture(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTemp("html", []byte(htmlContent))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	// Closed through the unbound handle so a cancelled ctx cannot leak it.
	defer func() { _ = page.Close() }()

	bound := page.Context(ctx)
	if err := bound.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             SlideWidth,
		Height:            SlideHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, pageError(ctx, ErrPageCreate, err)
	}

	if err := bound.Navigate("file://" + tmpPath); err != nil {
		return nil, pageError(ctx, ErrPageLoad, err)
	}
	if err := bound.WaitLoad(); err != nil {
		return nil, pageError(ctx, ErrPageLoad, err)
	}
	if _, err := bound.Eval(waitFontsJS); err != nil {
		return nil, pageError(ctx, ErrPageLoad, err)
	}

	png, err := bound.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			Width:  SlideWidth,
			Height: SlideHeight,
			Scale:  1,
		},
	})
	if err != nil {
		return nil, pageError(ctx, ErrCapture, err)
	}
	return png, nil
}

// withTimeout bounds ctx by the renderer timeout unless it already has a
// deadline.
func (r *rodRenderer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// pageError prefers the context error so timeouts stay detectable with
// errors.Is.
func pageError(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// wrapSVG embeds a PNG screenshot in a minimal SVG document of canvas size.
func wrapSVG(png []byte, title string) []byte {
	w := strconv.Itoa(SlideWidth)
	h := strconv.Itoa(SlideHeight)

	var buf bytes.Buffer
	buf.Grow(base64.StdEncoding.EncodedLen(len(png)) + 512)
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" `)
	buf.WriteString(`width="` + w + `" height="` + h + `" viewBox="0 0 ` + w + ` ` + h + `">` + "\n")
	buf.WriteString("  <title>" + html.EscapeString(title) + "</title>\n")
	buf.WriteString(`  <image width="` + w + `" height="` + h + `" href="data:image/png;base64,`)
	buf.WriteString(base64.StdEncoding.EncodeToString(png))
	buf.WriteString(`"/>` + "\n</svg>\n")
	return buf.Bytes()
}
