package md2slides

// Notes:
// - Tests Converter.Convert with a mocked capturer and font prober so no
//   browser is needed
// - Internal test options (withCapturer, withProber) enable dependency
//   injection
// - Real layout, rendering and scene building run underneath

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2slides/internal/fonts"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockCapturer struct {
	mu       sync.Mutex
	png      []byte
	failOn   map[string]error // slide name -> error
	block    bool             // wait for ctx instead of returning
	delay    time.Duration
	calls    int
	inFlight int
	peak     int
	closed   int
}

func (m *mockCapturer) Capture(ctx context.Context, htmlContent string) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.inFlight++
	m.peak = max(m.peak, m.inFlight)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	for name, err := range m.failOn {
		if strings.Contains(htmlContent, `data-name="`+name+`"`) {
			return nil, err
		}
	}
	if m.png == nil {
		return []byte("png"), nil
	}
	return m.png, nil
}

func (m *mockCapturer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

type mockProber struct {
	mu     sync.Mutex
	found  map[string]bool
	err    error
	calls  int
	probed []string
}

func (m *mockProber) Probe(ctx context.Context, families []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.probed = families
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.found, m.err
}

// ---------------------------------------------------------------------------
// Test Options (Internal Dependency Injection)
// ---------------------------------------------------------------------------

func withCapturer(c slideCapturer) Option {
	return func(conv *Converter) {
		conv.capturer = c
	}
}

func withProber(p fonts.Prober) Option {
	return func(conv *Converter) {
		conv.prober = p
	}
}

func newTestConverter(t *testing.T, capt *mockCapturer, opts ...Option) *Converter {
	t.Helper()

	opts = append([]Option{withCapturer(capt), withProber(&mockProber{})}, opts...)
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

const threeSlides = "# Title\n\n---\n\n## Agenda\n\n- one\n- **two**\n\n---\n\nThanks"

// ---------------------------------------------------------------------------
// TestValidateInput - Input Validation
// ---------------------------------------------------------------------------

func TestValidateInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"valid", Input{Markdown: "# Hi"}, nil},
		{"empty markdown", Input{}, ErrEmptyMarkdown},
		{"design scene", Input{Markdown: "# Hi", Scene: SceneDesign}, nil},
		{"slides scene", Input{Markdown: "# Hi", Scene: SceneSlides}, nil},
		{"unknown scene", Input{Markdown: "# Hi", Scene: "figma"}, ErrInvalidSceneMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateInput(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateInput() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Construction
// ---------------------------------------------------------------------------

func TestNewConverter_InvalidConcurrency(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithConcurrency(0))
	if !errors.Is(err, ErrInvalidConcurrency) {
		t.Errorf("NewConverter() error = %v, want ErrInvalidConcurrency", err)
	}
}

func TestNewConverter_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithAssetPath(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("NewConverter() error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

func TestNewConverter_CustomThemes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	themes := filepath.Join(dir, "themes")
	if err := os.MkdirAll(themes, 0o750); err != nil {
		t.Fatal(err)
	}
	ocean := "id: ocean\nextends: daker-dark\ncolors:\n  accent1: \"#00b4d8\"\n"
	if err := os.WriteFile(filepath.Join(themes, "ocean.yaml"), []byte(ocean), 0o600); err != nil {
		t.Fatal(err)
	}

	conv := newTestConverter(t, &mockCapturer{}, WithAssetPath(dir))

	want := []string{"clean-white", "corporate-blue", "daker-dark", "daker-light", "minimal", "ocean"}
	if diff := cmp.Diff(want, conv.Themes()); diff != "" {
		t.Errorf("Themes() mismatch (-want +got):\n%s", diff)
	}
	if got := conv.DefaultTheme(); got != "clean-white" {
		t.Errorf("DefaultTheme() = %q, want clean-white", got)
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Sea", Theme: "ocean", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Theme != "ocean" {
		t.Errorf("Theme = %q, want ocean", res.Theme)
	}
}

func TestNewConverter_BrokenThemeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	themes := filepath.Join(dir, "themes")
	if err := os.MkdirAll(themes, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themes, "bad.yaml"), []byte("id: bad\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewConverter(WithAssetPath(dir)); err == nil {
		t.Error("NewConverter() with an incomplete theme file should fail")
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Pipeline
// ---------------------------------------------------------------------------

func TestConvert_Success(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{png: []byte("fake-png")}
	conv := newTestConverter(t, capt)

	res, err := conv.Convert(context.Background(), Input{Markdown: threeSlides, Theme: "daker-dark"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("Err() = %v, want nil", res.Err())
	}
	if res.Theme != "daker-dark" {
		t.Errorf("Theme = %q, want daker-dark", res.Theme)
	}

	var names []string
	for i, s := range res.Slides {
		names = append(names, s.Name)
		if s.Index != i {
			t.Errorf("Slides[%d].Index = %d", i, s.Index)
		}
		if !strings.Contains(string(s.HTML), "<!DOCTYPE html>") {
			t.Errorf("%s: HTML is not a document", s.Name)
		}
		svg := string(s.SVG)
		if !strings.Contains(svg, base64.StdEncoding.EncodeToString([]byte("fake-png"))) {
			t.Errorf("%s: SVG does not embed the screenshot", s.Name)
		}
		if !strings.Contains(svg, "<title>DAKER.ai - "+s.Name+"</title>") {
			t.Errorf("%s: SVG title missing:\n%s", s.Name, svg)
		}
	}
	if diff := cmp.Diff([]string{"Slide 01", "Slide 02", "Slide 03"}, names); diff != "" {
		t.Errorf("slide names mismatch (-want +got):\n%s", diff)
	}
	if capt.calls != 3 {
		t.Errorf("Capture calls = %d, want 3", capt.calls)
	}
	if !strings.Contains(string(res.Slides[1].HTML), "02 / 03") {
		t.Error("second slide is missing its pagination label")
	}
	if res.Scene != nil {
		t.Error("Scene should be nil when not requested")
	}
}

func TestConvert_HTMLOnly(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{}
	prober := &mockProber{}
	conv := newTestConverter(t, capt, withProber(prober))

	res, err := conv.Convert(context.Background(), Input{Markdown: threeSlides, HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if capt.calls != 0 || prober.calls != 0 {
		t.Errorf("browser used in HTML-only mode: captures=%d probes=%d", capt.calls, prober.calls)
	}
	for _, s := range res.Slides {
		if s.SVG != nil {
			t.Errorf("%s: SVG = %q, want nil", s.Name, s.SVG)
		}
		if len(s.HTML) == 0 {
			t.Errorf("%s: empty HTML", s.Name)
		}
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		input   Input
		wantErr error
	}{
		{"empty markdown", context.Background(), Input{}, ErrEmptyMarkdown},
		{"only separators", context.Background(), Input{Markdown: "---\n\n---\n"}, ErrNoSlides},
		{"strict unknown theme", context.Background(), Input{Markdown: "# A", Theme: "nope", StrictTheme: true}, ErrThemeNotFound},
		{"bad scene mode", context.Background(), Input{Markdown: "# A", Scene: "3d"}, ErrInvalidSceneMode},
		{"canceled", canceled, Input{Markdown: "# A"}, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, &mockCapturer{})
			res, err := conv.Convert(tt.ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Errorf("Convert() result = %+v, want nil", res)
			}
		})
	}
}

func TestConvert_UnknownThemeFallsBack(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockCapturer{})

	res, err := conv.Convert(context.Background(), Input{Markdown: "# A", Theme: "nope", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Theme != "clean-white" {
		t.Errorf("Theme = %q, want clean-white", res.Theme)
	}
}

func TestConvert_SlideFailure(t *testing.T) {
	t.Parallel()

	pageErr := errors.New("boom")
	capt := &mockCapturer{failOn: map[string]error{"Slide 02": pageErr}}
	conv := newTestConverter(t, capt)

	res, err := conv.Convert(context.Background(), Input{Markdown: threeSlides})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(res.Failures) != 1 {
		t.Fatalf("Failures = %v, want one", res.Failures)
	}
	if res.Failures[0].Index != 1 {
		t.Errorf("failed index = %d, want 1", res.Failures[0].Index)
	}
	if !errors.Is(res.Err(), pageErr) {
		t.Errorf("Err() = %v, want it to wrap the capture error", res.Err())
	}
	var slideErr *SlideError
	if !errors.As(res.Err(), &slideErr) || slideErr.Index != 1 {
		t.Errorf("Err() = %v, want a *SlideError for index 1", res.Err())
	}

	if res.Slides[0].SVG == nil || res.Slides[2].SVG == nil {
		t.Error("healthy slides should still be captured")
	}
	if res.Slides[1].SVG != nil {
		t.Error("failed slide should have no SVG")
	}
}

func TestConvert_BrowserConnectIsFatal(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{failOn: map[string]error{
		"Slide 01": ErrBrowserConnect,
		"Slide 02": ErrBrowserConnect,
		"Slide 03": ErrBrowserConnect,
	}}
	conv := newTestConverter(t, capt)

	res, err := conv.Convert(context.Background(), Input{Markdown: threeSlides})
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Convert() error = %v, want ErrBrowserConnect", err)
	}
	if res != nil {
		t.Error("Convert() should return no result on browser failure")
	}
}

func TestConvert_Timeout(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{block: true}
	conv := newTestConverter(t, capt, WithTimeout(20*time.Millisecond))

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Slow"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Failures) != 1 {
		t.Fatalf("Failures = %v, want one", res.Failures)
	}
	failure := res.Failures[0]
	if !errors.Is(failure, ErrCapture) || !errors.Is(failure, context.DeadlineExceeded) {
		t.Errorf("failure = %v, want ErrCapture and DeadlineExceeded", failure)
	}
}

func TestConvert_ConcurrencyLimit(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{delay: 10 * time.Millisecond}
	conv := newTestConverter(t, capt, WithConcurrency(2))

	md := strings.Repeat("# Slide\n\n---\n\n", 7) + "# Last"
	res, err := conv.Convert(context.Background(), Input{Markdown: md})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Slides) != 8 {
		t.Fatalf("slides = %d, want 8", len(res.Slides))
	}
	if capt.peak > 2 {
		t.Errorf("peak concurrent captures = %d, want at most 2", capt.peak)
	}
}

func TestConvert_Scene(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockCapturer{})

	res, err := conv.Convert(context.Background(), Input{
		Markdown: threeSlides,
		Theme:    "minimal",
		HTMLOnly: true,
		Scene:    SceneSlides,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	var doc struct {
		Theme  string `json:"theme"`
		Mode   string `json:"mode"`
		Slides []struct {
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(res.Scene, &doc); err != nil {
		t.Fatalf("scene is not JSON: %v", err)
	}
	if doc.Theme != "minimal" || doc.Mode != SceneSlides || len(doc.Slides) != 3 {
		t.Errorf("scene = %+v", doc)
	}
	if doc.Slides[0].Type != "SLIDE" || doc.Slides[0].Name != "Slide 01" {
		t.Errorf("first scene node = %+v", doc.Slides[0])
	}
}

func TestConvert_CustomCSSAndBrand(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{}
	conv := newTestConverter(t, capt, WithBrand("ACME"))

	res, err := conv.Convert(context.Background(), Input{
		Markdown: "# A",
		CSS:      ".text { letter-spacing: 1px; }",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.Slides[0].HTML)
	if !strings.Contains(html, "letter-spacing: 1px") {
		t.Error("custom CSS not injected")
	}
	if !strings.Contains(html, "ACME") {
		t.Error("brand mark not rendered")
	}
	if !strings.Contains(string(res.Slides[0].SVG), "<title>ACME - Slide 01</title>") {
		t.Error("SVG title does not use the brand")
	}
}

// ---------------------------------------------------------------------------
// TestFontCapability - Probing
// ---------------------------------------------------------------------------

func TestFontCapability_ProbesOnce(t *testing.T) {
	t.Parallel()

	prober := &mockProber{found: map[string]bool{fonts.NotoSansKR: true}}
	conv := newTestConverter(t, &mockCapturer{}, withProber(prober))

	for range 2 {
		if _, err := conv.Convert(context.Background(), Input{Markdown: "# A"}); err != nil {
			t.Fatalf("Convert() error = %v", err)
		}
	}
	if prober.calls != 1 {
		t.Errorf("Probe calls = %d, want 1", prober.calls)
	}
	for _, f := range fonts.DefaultFamilies {
		if !strings.Contains(strings.Join(prober.probed, ","), f) {
			t.Errorf("family %q was not probed", f)
		}
	}

	capability := conv.fontCapability(context.Background(), false)
	if !capability.Available(fonts.NotoSansKR) || capability.Available(fonts.Inter) {
		t.Errorf("capability = %v", capability.Families())
	}
}

func TestFontCapability_OutlivesFirstCallerContext(t *testing.T) {
	t.Parallel()

	prober := &mockProber{found: map[string]bool{fonts.Pretendard: true}}
	conv := newTestConverter(t, &mockCapturer{}, withProber(prober))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	first := conv.fontCapability(ctx, false)
	if !first.Available(fonts.Pretendard) {
		t.Errorf("capability probed with a cancelled caller = %v", first.Families())
	}

	if _, err := conv.Convert(context.Background(), Input{Markdown: "# A"}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if later := conv.fontCapability(context.Background(), false); !later.Available(fonts.Pretendard) {
		t.Errorf("later capability = %v", later.Families())
	}
	if prober.calls != 1 {
		t.Errorf("Probe calls = %d, want 1", prober.calls)
	}
}

func TestFontCapability_ProbeErrorFallsBack(t *testing.T) {
	t.Parallel()

	prober := &mockProber{err: errors.New("no canvas")}
	conv := newTestConverter(t, &mockCapturer{}, withProber(prober))

	res, err := conv.Convert(context.Background(), Input{Markdown: "# A"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	html := string(res.Slides[0].HTML)
	inter, noto := strings.Index(html, "Inter"), strings.Index(html, "Noto Sans KR")
	if inter < 0 || noto < 0 || inter > noto {
		t.Error("probe failure should put Inter first in the font stack")
	}
}

func TestFontCapability_WithFontsSkipsProbe(t *testing.T) {
	t.Parallel()

	prober := &mockProber{}
	conv := newTestConverter(t, &mockCapturer{}, withProber(prober), WithFonts(fonts.NotoSansKR))

	if _, err := conv.Convert(context.Background(), Input{Markdown: "# A"}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if prober.calls != 0 {
		t.Errorf("Probe calls = %d, want 0", prober.calls)
	}
}

func TestConvert_MissingFonts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		found       map[string]bool
		wantFont    string
		wantMissing []string
	}{
		{
			name:     "theme family installed",
			found:    map[string]bool{fonts.Pretendard: true},
			wantFont: fonts.Pretendard,
		},
		{
			name:        "theme family missing",
			found:       map[string]bool{fonts.NotoSansKR: true},
			wantFont:    fonts.NotoSansKR,
			wantMissing: []string{fonts.Pretendard},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, &mockCapturer{}, withProber(&mockProber{found: tt.found}))
			res, err := conv.Convert(context.Background(), Input{Markdown: "# A", Theme: "clean-white"})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if res.Font != tt.wantFont {
				t.Errorf("Font = %q, want %q", res.Font, tt.wantFont)
			}
			if diff := cmp.Diff(tt.wantMissing, res.MissingFonts); diff != "" {
				t.Errorf("MissingFonts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClose - Resource Release
// ---------------------------------------------------------------------------

func TestClose(t *testing.T) {
	t.Parallel()

	capt := &mockCapturer{}
	conv, err := NewConverter(withCapturer(capt), withProber(&mockProber{}))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if capt.closed != 1 {
		t.Errorf("capturer closed %d times, want 1", capt.closed)
	}
}
