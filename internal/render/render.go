// Package render serializes a slide's box tree into a standalone HTML
// document sized to the 1920x1080 canvas, ready for a headless browser to
// rasterize.
//
// Geometry and colors come from the tree and are written as inline styles.
// The embedded base stylesheet only sets up positioning and flex behavior.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fonts"
	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/richtext"
)

// Sentinel errors for rendering.
var (
	ErrTemplateParse   = errors.New("slide template parsing failed")
	ErrTemplateExecute = errors.New("slide template execution failed")
	ErrNilRoot         = errors.New("nil slide tree")
)

// Options tunes one HTML document.
type Options struct {
	// Title is the document title. Empty means Title(brand, index).
	Title string
	// CSS is extra user CSS appended after the base stylesheet.
	CSS string
}

// Renderer turns box trees into HTML. It is safe for concurrent use.
type Renderer struct {
	tmpl    *template.Template
	baseCSS string
}

// New loads the slide template and base stylesheet from loader.
func New(loader assets.AssetLoader) (*Renderer, error) {
	src, err := loader.LoadTemplate(assets.SlideTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading slide template: %w", err)
	}
	css, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading slide style: %w", err)
	}

	tmpl, err := template.New(assets.SlideTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	return &Renderer{tmpl: tmpl, baseCSS: css}, nil
}

// Title formats the document title of the slide at 0-based index,
// e.g. "DAKER.ai - Slide 03".
func Title(brand string, index int) string {
	if brand == "" {
		brand = layout.DefaultBrand
	}
	return brand + " - " + layout.SlideName(index)
}

// HTML renders root as a complete HTML document.
func (r *Renderer) HTML(root *layout.Root, opts Options) (string, error) {
	if root == nil {
		return "", ErrNilRoot
	}

	doc := buildDocument(root)
	doc.BaseCSS = template.CSS(sanitizeCSS(r.baseCSS))
	doc.Title = opts.Title
	if doc.Title == "" {
		doc.Title = Title(doc.brand, root.Index)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}

	return InjectCSS(buf.String(), opts.CSS), nil
}

// Template data. Style fields are built here from typed values only, so
// they are marked safe for the style attribute context.
type (
	documentView struct {
		Title   string
		BaseCSS template.CSS
		Name    string
		Style   template.CSS
		Layers  []layerView
		Content contentView
		Labels  []labelView

		brand string
	}

	layerView struct {
		Class string
		Style template.CSS
	}

	contentView struct {
		Style  template.CSS
		Blocks []blockView
	}

	// blockView holds either a text run or a list.
	blockView struct {
		Text *textView
		List *listView
	}

	textView struct {
		Role     string
		Style    template.CSS
		Segments []segmentView
	}

	segmentView struct {
		Text  string
		Bold  bool
		Style template.CSS
	}

	listView struct {
		Style template.CSS
		Items []itemView
	}

	itemView struct {
		Style       template.CSS
		WrapStyle   template.CSS
		BulletStyle template.CSS
		Text        *textView
	}

	labelView struct {
		Class string
		Style template.CSS
		Text  string
	}
)

func buildDocument(root *layout.Root) *documentView {
	doc := &documentView{
		Name:  root.Name(),
		Style: css(new(declarations).set("width", px(root.Width)).set("height", px(root.Height))),
		brand: layout.DefaultBrand,
	}

	for _, child := range root.Children {
		switch n := child.(type) {
		case *layout.Background:
			doc.Layers = append(doc.Layers, layerView{
				Class: "background",
				Style: css(box(0, 0, n.Width, n.Height).set("background", backgroundCSS(n.Fill))),
			})
		case *layout.DecorativeCircle:
			doc.Layers = append(doc.Layers, layerView{
				Class: "circle",
				Style: css(box(n.X, n.Y, n.Size, n.Size).set("background", radialGlowCSS(n.Color, n.Opacity))),
			})
		case *layout.AccentBar:
			doc.Layers = append(doc.Layers, layerView{
				Class: "accent-bar",
				Style: css(box(n.X, n.Y, n.Width, n.Height).set("background", linearGradientCSS(n.Stops, n.Transform))),
			})
		case *layout.ContentContainer:
			doc.Content = buildContent(n)
		case *layout.PaginationLabel:
			doc.Labels = append(doc.Labels, labelView{
				Class: "pagination",
				Text:  n.Text,
				Style: css(position(n.X, n.Y).
					set("font-family", fontStackCSS(fonts.Face{Family: n.Family}.Stack())).
					set("font-size", px(n.Size)).
					set("font-weight", fmt.Sprint(n.Weight)).
					set("color", n.Color.CSS()).
					set("opacity", number(n.Opacity))),
			})
		case *layout.BrandMark:
			doc.brand = n.Text
			doc.Labels = append(doc.Labels, labelView{
				Class: "brand",
				Text:  n.Text,
				Style: css(position(n.X, n.Y).
					set("font-family", fontStackCSS(fonts.Face{Family: n.Family}.Stack())).
					set("font-size", px(n.Size)).
					set("font-weight", fmt.Sprint(n.Weight)).
					set("letter-spacing", px(n.LetterSpacing)).
					set("color", n.Color.CSS()).
					set("opacity", number(n.Opacity))),
			})
		}
	}

	return doc
}

func buildContent(c *layout.ContentContainer) contentView {
	view := contentView{
		Style: css(box(c.X, c.Y, c.Width, c.Height).
			set("gap", px(c.Spacing)).
			set("justify-content", flexAlign(c.PrimaryAlign)).
			set("align-items", flexAlign(c.CounterAlign))),
	}

	for _, child := range c.Children {
		switch n := child.(type) {
		case *layout.TextRun:
			view.Blocks = append(view.Blocks, blockView{Text: buildText(n, true)})
		case *layout.ListContainer:
			view.Blocks = append(view.Blocks, blockView{List: buildList(n)})
		}
	}
	return view
}

func buildList(l *layout.ListContainer) *listView {
	view := &listView{
		Style: css(new(declarations).
			set("width", px(l.Width)).
			set("max-width", "100%").
			set("gap", px(l.Spacing))),
		Items: make([]itemView, 0, len(l.Items)),
	}
	for _, item := range l.Items {
		b := item.Bullet
		view.Items = append(view.Items, itemView{
			Style: css(new(declarations).
				set("width", px(item.Width)).
				set("max-width", "100%").
				set("min-height", px(item.Height)).
				set("gap", px(item.Spacing)).
				set("padding-left", px(item.PaddingLeft))),
			WrapStyle: css(new(declarations).
				set("width", px(b.WrapWidth)).
				set("height", px(b.WrapHeight))),
			BulletStyle: css(new(declarations).
				set("width", px(b.Size)).
				set("height", px(b.Size)).
				set("background", b.Color.CSS())),
			Text: buildText(item.Text, false),
		})
	}
	return view
}

// buildText splits a run into plain and bold segments. Runs inside list
// items take the remaining row width instead of their own.
func buildText(run *layout.TextRun, sized bool) *textView {
	if run == nil {
		return &textView{}
	}

	d := new(declarations)
	if sized {
		d.set("width", px(run.Width)).set("max-width", "100%")
	}
	d.set("font-family", fontStackCSS(fonts.Face{Family: run.Family}.Stack())).
		set("font-size", px(run.Size)).
		set("font-weight", fmt.Sprint(run.Weight)).
		set("color", run.Color.CSS()).
		set("text-align", textAlign(run.Align))

	boldStyle := css(new(declarations).
		set("font-weight", fmt.Sprint(run.BoldWeight)).
		set("color", run.BoldColor.CSS()))

	segs := richtext.Segments(run.Text, run.Spans)
	view := &textView{
		Role:     string(run.Role),
		Style:    css(d),
		Segments: make([]segmentView, 0, len(segs)),
	}
	for _, s := range segs {
		sv := segmentView{Text: s.Text, Bold: s.Bold}
		if s.Bold {
			sv.Style = boldStyle
		}
		view.Segments = append(view.Segments, sv)
	}
	return view
}

func position(x, y float64) *declarations {
	return new(declarations).set("left", px(x)).set("top", px(y))
}

func box(x, y, w, h float64) *declarations {
	return position(x, y).set("width", px(w)).set("height", px(h))
}

func css(d *declarations) template.CSS {
	return template.CSS(d.String()) // #nosec G203 -- built from typed values and escaped family names
}
