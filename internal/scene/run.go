package scene

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/theme"
)

// ErrNoSlides is returned by Run when there is nothing to build.
var ErrNoSlides = errors.New("no slides to build")

// Message types exchanged with the plugin UI.
const (
	MessageProgress = "progress"
	MessageDone     = "done"
	MessageError    = "error"
)

// Progress reports one finished slide. Current is 1-based.
type Progress struct {
	Type    string `json:"type"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Name    string `json:"name"`
}

// Done summarizes a finished run.
type Done struct {
	Type     string        `json:"type"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"durationNs"`
}

// Failure reports a slide that could not be built. Slide is 1-based. It is
// the error returned by Run and encodes as the plugin's error message.
type Failure struct {
	Type    string `json:"type"`
	Slide   int    `json:"slide"`
	Message string `json:"message"`

	cause error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("building %s: %s", layout.SlideName(f.Slide-1), f.Message)
}

func (f *Failure) Unwrap() error { return f.cause }

// Document is the full scene for one deck.
type Document struct {
	Theme  string  `json:"theme"`
	Mode   Mode    `json:"mode"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Slides []*Node `json:"slides"`
}

// Options configures Run.
type Options struct {
	Mode   Mode
	Layout layout.Options
	// OnProgress, when set, is called after each slide in order.
	OnProgress func(Progress)
}

// Run lays out and builds every slide with th. It stops at the first
// context cancellation and returns what it built so far with a *Failure
// naming the slide it did not build.
func Run(ctx context.Context, slides []pipeline.Slide, th theme.Theme, opts Options) (*Document, Done, error) {
	start := time.Now()
	mode := opts.Mode
	if mode == "" {
		mode = ModeDesign
	}

	doc := &Document{
		Theme:  th.ID,
		Mode:   mode,
		Width:  layout.CanvasWidth,
		Height: layout.CanvasHeight,
		Slides: make([]*Node, 0, len(slides)),
	}
	if len(slides) == 0 {
		return doc, Done{Type: MessageDone}, ErrNoSlides
	}

	total := len(slides)
	for i, slide := range slides {
		if err := ctx.Err(); err != nil {
			return doc, done(len(doc.Slides), start), newFailure(i, err)
		}

		root := layout.LayoutSlide(slide, i, total, th, opts.Layout)
		node := Build(root, mode)
		doc.Slides = append(doc.Slides, node)

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				Type:    MessageProgress,
				Current: i + 1,
				Total:   total,
				Name:    node.Name,
			})
		}
	}

	return doc, done(len(doc.Slides), start), nil
}

func done(count int, start time.Time) Done {
	return Done{Type: MessageDone, Count: count, Duration: time.Since(start)}
}

func newFailure(index int, err error) *Failure {
	return &Failure{Type: MessageError, Slide: index + 1, Message: err.Error(), cause: err}
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	return nil
}
