package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/server"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeConverter renders one SVG per "---" separated section.
type fakeConverter struct {
	mu        sync.Mutex
	err       error // whole-deck error
	failSlide int   // 1-based slide whose capture fails, 0 for none
	missing   []string
	inputs    []md2slides.Input
}

func (f *fakeConverter) Convert(_ context.Context, input md2slides.Input) (*md2slides.ConvertResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	sections := strings.Split(input.Markdown, "\n---\n")
	res := &md2slides.ConvertResult{
		Theme:        "clean-white",
		Font:         "Inter",
		MissingFonts: f.missing,
		Slides:       make([]md2slides.SlideResult, len(sections)),
	}
	for i := range sections {
		slide := md2slides.SlideResult{Index: i, HTML: []byte("<html></html>")}
		switch {
		case input.HTMLOnly:
		case i+1 == f.failSlide:
			res.Failures = append(res.Failures, &md2slides.SlideError{Index: i, Err: md2slides.ErrCapture})
		default:
			slide.SVG = []byte("<svg/>")
		}
		res.Slides[i] = slide
	}
	if input.Scene != "" {
		res.Scene = []byte("[]")
	}
	return res, nil
}

func (f *fakeConverter) Themes() []string {
	return []string{"clean-white", "daker-dark"}
}

func (f *fakeConverter) lastInput(t *testing.T) md2slides.Input {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		t.Fatal("converter was never called")
	}
	return f.inputs[len(f.inputs)-1]
}

// fakePool hands out one shared fakeConverter.
type fakePool struct {
	conv       *fakeConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
	opts     int
}

func (p *fakePool) Acquire() (SlideConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *fakePool) Release(SlideConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

func (p *fakePool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *fakePool
	served chan *server.Server
}

func newTestEnv(conv *fakeConverter) *testEnv {
	if conv == nil {
		conv = &fakeConverter{}
	}
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &fakePool{conv: conv},
		served: make(chan *server.Server, 1),
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, opts ...md2slides.Option) Pool {
			te.pool.size = size
			te.pool.opts = len(opts)
			return te.pool
		},
		Serve: func(_ context.Context, srv *server.Server, _ string) error {
			te.served <- srv
			return nil
		},
	}
	return te
}

const twoSlides = "# Hello\n\n---\n\n## Agenda\n\n- **one**\n"

// writeDeck writes a markdown file under dir and returns its path.
func writeDeck(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s: %v", path, err)
	}
}

func assertNoFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("unexpected file %s", path)
	}
}
