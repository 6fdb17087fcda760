// Package scene converts slide box trees into the native node description a
// design-tool plugin replays to create editable slides.
//
// The output mirrors the host object model: frames with auto layout,
// rectangles, ellipses and text nodes carrying fills, opacity and
// per-range text styles. Nothing here talks to the host; the plugin reads
// the JSON and creates the objects.
package scene

import (
	"unicode/utf16"

	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/theme"
)

// Mode selects how slides are placed in the host document.
type Mode string

const (
	// ModeDesign lays frames side by side on a canvas.
	ModeDesign Mode = "design"
	// ModeSlides wraps each frame in a presentation slide node.
	ModeSlides Mode = "slides"
)

// slideGap separates frames in design mode.
const slideGap = 100

// contentFrameName names the styled frame inside a presentation slide.
const contentFrameName = "SlideContent"

// Label boxes before the host grows them to fit.
const (
	paginationWidth  = 100
	paginationHeight = 20
	brandWidth       = 120
	brandHeight      = 24
)

// DesignX returns the horizontal position of the slide at 0-based index in
// design mode.
func DesignX(index int) float64 {
	return float64(index) * (layout.CanvasWidth + slideGap)
}

// Build converts one slide tree. In design mode the returned frame is the
// slide; in slides mode it is a slide node holding that frame.
func Build(root *layout.Root, mode Mode) *Node {
	frame := &Node{
		Type:         TypeFrame,
		Name:         contentFrameName,
		Width:        root.Width,
		Height:       root.Height,
		Opacity:      1,
		ClipsContent: true,
		Fills:        noFill(),
	}

	for _, child := range root.Children {
		switch n := child.(type) {
		case *layout.Background:
			frame.Fills = backgroundFills(n.Fill)
		case *layout.DecorativeCircle:
			frame.Children = append(frame.Children, circle(n))
		case *layout.AccentBar:
			frame.Children = append(frame.Children, accentBar(n))
		case *layout.ContentContainer:
			frame.Children = append(frame.Children, content(n))
		case *layout.PaginationLabel:
			frame.Children = append(frame.Children, pagination(n))
		case *layout.BrandMark:
			frame.Children = append(frame.Children, brand(n))
		}
	}

	if mode == ModeSlides {
		return &Node{
			Type:     TypeSlide,
			Name:     root.Name(),
			Width:    root.Width,
			Height:   root.Height,
			Opacity:  1,
			Fills:    noFill(),
			Children: []*Node{frame},
		}
	}

	frame.Name = root.Name()
	frame.X = DesignX(root.Index)
	return frame
}

func backgroundFills(bg theme.Background) []Paint {
	if bg.Kind == theme.BackgroundLinearGradient && len(bg.Stops) > 0 {
		return []Paint{gradient(PaintLinearGradient, bg.Stops, bg.Transform)}
	}
	return solid(bg.Color)
}

func gradient(kind PaintType, stops []theme.GradientStop, t theme.Transform) Paint {
	p := Paint{
		Type:              kind,
		GradientStops:     make([]ColorStop, 0, len(stops)),
		GradientTransform: &t,
	}
	for _, s := range stops {
		p.GradientStops = append(p.GradientStops, ColorStop{Position: s.Position, Color: rgba(s.Color)})
	}
	return p
}

func circle(c *layout.DecorativeCircle) *Node {
	return &Node{
		Type:    TypeEllipse,
		Name:    c.Name(),
		X:       c.X,
		Y:       c.Y,
		Width:   c.Size,
		Height:  c.Size,
		Opacity: 1,
		Fills: []Paint{gradient(PaintRadialGradient, []theme.GradientStop{
			{Position: 0, Color: c.Color.WithAlpha(c.Opacity)},
			{Position: 1, Color: c.Color.WithAlpha(0)},
		}, c.Transform)},
	}
}

func accentBar(a *layout.AccentBar) *Node {
	return &Node{
		Type:    TypeRectangle,
		Name:    a.Name(),
		X:       a.X,
		Y:       a.Y,
		Width:   a.Width,
		Height:  a.Height,
		Opacity: 1,
		Fills:   []Paint{gradient(PaintLinearGradient, a.Stops, a.Transform)},
	}
}

func content(c *layout.ContentContainer) *Node {
	n := &Node{
		Type:                  TypeFrame,
		Name:                  c.Name(),
		X:                     c.X,
		Y:                     c.Y,
		Width:                 c.Width,
		Height:                c.Height,
		Opacity:               1,
		Fills:                 noFill(),
		LayoutMode:            "VERTICAL",
		PrimaryAxisSizingMode: "FIXED",
		CounterAxisSizingMode: "FIXED",
		PrimaryAxisAlignItems: c.PrimaryAlign.String(),
		CounterAxisAlignItems: c.CounterAlign.String(),
		ItemSpacing:           c.Spacing,
	}

	for _, child := range c.Children {
		switch v := child.(type) {
		case *layout.TextRun:
			n.Children = append(n.Children, text(v))
		case *layout.ListContainer:
			n.Children = append(n.Children, list(v))
		}
	}
	return n
}

func list(l *layout.ListContainer) *Node {
	n := &Node{
		Type:                  TypeFrame,
		Name:                  l.Name(),
		Width:                 l.Width,
		Height:                100,
		Opacity:               1,
		Fills:                 noFill(),
		LayoutMode:            "VERTICAL",
		PrimaryAxisSizingMode: "AUTO",
		CounterAxisSizingMode: "FIXED",
		ItemSpacing:           l.Spacing,
	}
	for _, item := range l.Items {
		n.Children = append(n.Children, listItem(item))
	}
	return n
}

func listItem(item *layout.ListItem) *Node {
	b := item.Bullet
	wrap := &Node{
		Type:                  TypeFrame,
		Name:                  "BulletWrap",
		Width:                 b.WrapWidth,
		Height:                b.WrapHeight,
		Opacity:               1,
		Fills:                 noFill(),
		LayoutMode:            "VERTICAL",
		PrimaryAxisSizingMode: "FIXED",
		CounterAxisSizingMode: "FIXED",
		PrimaryAxisAlignItems: layout.AlignCenter.String(),
		Children: []*Node{{
			Type:    TypeEllipse,
			Name:    "Bullet",
			Width:   b.Size,
			Height:  b.Size,
			Opacity: 1,
			Fills:   solid(b.Color),
		}},
	}

	n := &Node{
		Type:                  TypeFrame,
		Name:                  item.Name(),
		Width:                 item.Width,
		Height:                item.Height,
		Opacity:               1,
		Fills:                 noFill(),
		LayoutMode:            "HORIZONTAL",
		PrimaryAxisSizingMode: "FIXED",
		CounterAxisSizingMode: "AUTO",
		ItemSpacing:           item.Spacing,
		PaddingLeft:           item.PaddingLeft,
		Children:              []*Node{wrap},
	}
	if item.Text != nil {
		n.Children = append(n.Children, text(item.Text))
	}
	return n
}

// text builds a text node; bold spans become range styles.
func text(run *layout.TextRun) *Node {
	n := &Node{
		Type:                TypeText,
		Name:                run.Name(),
		Width:               run.Width,
		Height:              run.Size * 2,
		Opacity:             1,
		Fills:               solid(run.Color),
		Characters:          run.Text,
		FontSize:            run.Size,
		FontName:            &FontName{Family: run.Family, Style: run.Style},
		TextAutoResize:      "HEIGHT",
		TextAlignHorizontal: textAlign(run.Align),
	}

	offsets := utf16Offsets(run.Text)
	for _, r := range run.Spans {
		start, end := offsets.at(r.Start), offsets.at(r.End)
		if end <= start {
			continue
		}
		n.RangeStyles = append(n.RangeStyles, RangeStyle{
			Start:    start,
			End:      end,
			FontName: FontName{Family: run.Family, Style: run.BoldStyle},
			Fills:    solid(run.BoldColor),
		})
	}
	return n
}

func pagination(p *layout.PaginationLabel) *Node {
	return &Node{
		Type:           TypeText,
		Name:           p.Name(),
		X:              p.X,
		Y:              p.Y,
		Width:          paginationWidth,
		Height:         paginationHeight,
		Opacity:        p.Opacity,
		Fills:          solid(p.Color),
		Characters:     p.Text,
		FontSize:       p.Size,
		FontName:       &FontName{Family: p.Family, Style: p.Style},
		TextAutoResize: "WIDTH_AND_HEIGHT",
	}
}

func brand(b *layout.BrandMark) *Node {
	return &Node{
		Type:           TypeText,
		Name:           b.Name(),
		X:              b.X,
		Y:              b.Y,
		Width:          brandWidth,
		Height:         brandHeight,
		Opacity:        b.Opacity,
		Fills:          solid(b.Color),
		Characters:     b.Text,
		FontSize:       b.Size,
		FontName:       &FontName{Family: b.Family, Style: b.Style},
		TextAutoResize: "WIDTH_AND_HEIGHT",
		LetterSpacing:  &LetterSpacing{Value: b.LetterSpacing, Unit: "PIXELS"},
	}
}

func textAlign(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "CENTER"
	case layout.AlignMax:
		return "RIGHT"
	}
	return "LEFT"
}

// runeOffsets maps rune offsets of a string to UTF-16 offsets. Entry i is
// the UTF-16 offset of rune i; the last entry is the total length.
type runeOffsets []int

func utf16Offsets(s string) runeOffsets {
	offsets := make(runeOffsets, 0, len(s)+1)
	pos := 0
	for _, r := range s {
		offsets = append(offsets, pos)
		pos += utf16.RuneLen(r)
	}
	return append(offsets, pos)
}

// at converts a rune offset, clamping to the string.
func (o runeOffsets) at(i int) int {
	return o[max(0, min(i, len(o)-1))]
}
