// Package layout turns a lexed slide into a tree of absolutely positioned,
// styled boxes on a 1920x1080 canvas.
//
// LayoutSlide is a pure function of its arguments: the same slide, position
// and theme always produce an equal tree. Renderers in packages render and
// scene realize the tree as HTML or as native design-tool nodes.
package layout

import (
	"fmt"

	"github.com/alnah/go-md2slides/internal/fonts"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/richtext"
	"github.com/alnah/go-md2slides/internal/theme"
)

// Canvas size in logical units.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// DefaultBrand is the brand mark text when Options.Brand is empty.
const DefaultBrand = "DAKER.ai"

const (
	marginX        = 100
	marginY        = 80
	contentWidth   = CanvasWidth - 2*marginX
	contentHeight  = CanvasHeight - 200
	contentSpacing = 24
	textWidth      = CanvasWidth - 200

	titleSizeCover = 72
	titleSize      = 54
	subtitleSize   = 36
	paragraphSize  = 24

	listWidth       = CanvasWidth - 200
	listSpacing     = 12
	itemWidth       = CanvasWidth - 240
	itemHeight      = 30
	itemSpacing     = 16
	itemPaddingLeft = 8
	itemTextSize    = 26
	bulletSize      = 10

	accentBarHeight = 4

	pageSize    = 18
	pageOpacity = 0.3
	pageX       = CanvasWidth - 160
	pageY       = CanvasHeight - 60

	brandSize          = 20
	brandOpacity       = 0.25
	brandLetterSpacing = 3
	brandX             = 60
	brandY             = CanvasHeight - 60
)

// circleTransform maps a circle's radial gradient onto its bounding box.
var circleTransform = theme.Transform{{0.5, 0, 0.25}, {0, 0.5, 0.25}}

// Options carries the per-run inputs that are not part of the slide.
type Options struct {
	// Face is the resolved typeface. A zero Face resolves the theme font
	// against an empty capability, which yields Inter.
	Face fonts.Face
	// Brand replaces DefaultBrand when set.
	Brand string
}

// IsCover reports whether the slide at 0-based index opens the deck.
func IsCover(index int) bool {
	return index == 0
}

// IsEnding reports whether the slide at 0-based index closes the deck.
func IsEnding(index, total int) bool {
	return index == total-1
}

// Pagination formats the page label, e.g. "01 / 12".
func Pagination(index, total int) string {
	return fmt.Sprintf("%02d / %02d", index+1, total)
}

// SlideName formats the layer name of the slide at 0-based index.
func SlideName(index int) string {
	return fmt.Sprintf("Slide %02d", index+1)
}

// LayoutSlide builds the box tree for slide, the 0-based index-th of total
// slides, styled with th. th is read, never retained.
func LayoutSlide(slide pipeline.Slide, index, total int, th theme.Theme, opts Options) *Root {
	face := opts.Face
	if face.Family == "" {
		face = fonts.Resolve(fonts.Capability{}, th.Font)
	}
	brand := opts.Brand
	if brand == "" {
		brand = DefaultBrand
	}

	l := &layouter{
		theme:  th,
		face:   face,
		cover:  IsCover(index),
		ending: IsEnding(index, total),
	}

	root := &Root{
		Index:  index,
		Total:  total,
		Cover:  l.cover,
		Ending: l.ending,
		Width:  CanvasWidth,
		Height: CanvasHeight,
	}

	root.Children = append(root.Children, l.background())
	for _, c := range th.Decorations.Circles {
		root.Children = append(root.Children, l.circle(c))
	}
	if th.Decorations.AccentBar {
		root.Children = append(root.Children, l.accentBar())
	}
	root.Children = append(root.Children,
		l.content(slide.Blocks),
		l.pagination(index, total),
		l.brandMark(brand),
	)

	return root
}

type layouter struct {
	theme  theme.Theme
	face   fonts.Face
	cover  bool
	ending bool
}

func (l *layouter) background() *Background {
	return &Background{
		Width:  CanvasWidth,
		Height: CanvasHeight,
		Fill:   l.theme.Clone().Background,
	}
}

func (l *layouter) circle(c theme.Circle) *DecorativeCircle {
	return &DecorativeCircle{
		X:         c.X,
		Y:         c.Y,
		Size:      c.Size,
		Color:     l.theme.Color(c.ColorKey).WithAlpha(1),
		Opacity:   c.Opacity,
		Transform: circleTransform,
	}
}

func (l *layouter) accentBar() *AccentBar {
	p := l.theme.Colors
	return &AccentBar{
		Width:  CanvasWidth,
		Height: accentBarHeight,
		Stops: []theme.GradientStop{
			{Position: 0, Color: p.Accent1.WithAlpha(1)},
			{Position: 0.5, Color: p.Accent2.WithAlpha(1)},
			{Position: 1, Color: p.Accent3.WithAlpha(1)},
		},
		Transform: theme.IdentityTransform,
	}
}

func (l *layouter) content(blocks []pipeline.Block) *ContentContainer {
	c := &ContentContainer{
		X:            marginX,
		Y:            marginY,
		Width:        contentWidth,
		Height:       contentHeight,
		Spacing:      contentSpacing,
		PrimaryAlign: AlignCenter,
		CounterAlign: AlignMin,
	}
	if l.cover || l.ending {
		c.CounterAlign = AlignCenter
	}

	for _, b := range blocks {
		switch b := b.(type) {
		case pipeline.Heading:
			c.Children = append(c.Children, l.heading(b))
		case pipeline.Paragraph:
			if b.Text != "" {
				c.Children = append(c.Children, l.text(RoleParagraph, b.Text, paragraphSize, l.theme.Colors.BodyText, false))
			}
		case pipeline.List:
			c.Children = append(c.Children, l.list(b))
		}
	}
	return c
}

func (l *layouter) heading(h pipeline.Heading) *TextRun {
	size, color := float64(subtitleSize), l.theme.Colors.Subtitle
	if h.Depth <= 1 {
		size, color = titleSize, l.theme.Colors.Accent2
		if l.cover || l.ending {
			size = titleSizeCover
		}
	}
	run := l.text(RoleHeading, h.Text, size, color, true)
	run.Depth = max(h.Depth, 1)
	return run
}

func (l *layouter) list(list pipeline.List) *ListContainer {
	lc := &ListContainer{
		Width:   listWidth,
		Spacing: listSpacing,
		Ordered: list.Ordered,
		Items:   make([]*ListItem, 0, len(list.Items)),
	}
	for _, item := range list.Items {
		lc.Items = append(lc.Items, &ListItem{
			Width:       itemWidth,
			Height:      itemHeight,
			Spacing:     itemSpacing,
			PaddingLeft: itemPaddingLeft,
			Bullet: Bullet{
				WrapWidth:  bulletSize,
				WrapHeight: itemHeight,
				Size:       bulletSize,
				Color:      l.theme.Colors.Accent1,
			},
			Text: l.text(RoleListItem, item.Text, itemTextSize, l.theme.Colors.BodyText, false),
		})
	}
	return lc
}

// text resolves inline bold markup in raw and styles the result. Titles use
// the title style for the whole run; bold spans always use it.
func (l *layouter) text(role Role, raw string, size float64, color theme.Color, title bool) *TextRun {
	plain, spans := richtext.ResolveSpans(raw)
	style := l.face.BodyStyle
	if title {
		style = l.face.TitleStyle
	}
	align := AlignMin
	if l.cover || l.ending {
		align = AlignCenter
	}
	return &TextRun{
		Role:       role,
		Text:       plain,
		Spans:      spans,
		Width:      textWidth,
		Align:      align,
		Size:       size,
		Color:      color,
		Family:     l.face.Family,
		Style:      style,
		Weight:     fonts.Weight(style),
		BoldColor:  l.theme.Colors.BoldText,
		BoldStyle:  l.face.TitleStyle,
		BoldWeight: fonts.Weight(l.face.TitleStyle),
	}
}

func (l *layouter) pagination(index, total int) *PaginationLabel {
	style := l.face.Style(fonts.StyleLight)
	return &PaginationLabel{
		Text:    Pagination(index, total),
		X:       pageX,
		Y:       pageY,
		Size:    pageSize,
		Color:   l.theme.Colors.UIText,
		Opacity: pageOpacity,
		Family:  l.face.Family,
		Style:   style,
		Weight:  fonts.Weight(style),
	}
}

func (l *layouter) brandMark(text string) *BrandMark {
	style := l.face.Style(fonts.StyleBold)
	return &BrandMark{
		Text:          text,
		X:             brandX,
		Y:             brandY,
		Size:          brandSize,
		Color:         l.theme.Colors.UIText,
		Opacity:       brandOpacity,
		LetterSpacing: brandLetterSpacing,
		Family:        l.face.Family,
		Style:         style,
		Weight:        fonts.Weight(style),
	}
}
