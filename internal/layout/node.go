package layout

import (
	"github.com/alnah/go-md2slides/internal/richtext"
	"github.com/alnah/go-md2slides/internal/theme"
)

// Node is one box of a slide's tree. The concrete types are *Background,
// *DecorativeCircle, *AccentBar, *ContentContainer, *TextRun,
// *ListContainer, *ListItem, *PaginationLabel and *BrandMark.
type Node interface {
	// Name is the layer name shown in design tools.
	Name() string
	node()
}

// Align positions children along an axis of a stack.
type Align int

const (
	AlignMin Align = iota
	AlignCenter
	AlignMax
)

// String returns the auto-layout name of the alignment.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "CENTER"
	case AlignMax:
		return "MAX"
	}
	return "MIN"
}

// Root is the top of one slide's tree. Children are in paint order.
type Root struct {
	Index    int // 0-based
	Total    int
	Cover    bool
	Ending   bool
	Width    float64
	Height   float64
	Children []Node
}

// Name returns "Slide NN" with the 1-based, zero-padded slide number.
func (r *Root) Name() string {
	return SlideName(r.Index)
}

// Background fills the whole canvas with the theme background, unchanged.
type Background struct {
	Width  float64
	Height float64
	Fill   theme.Background
}

// DecorativeCircle is a soft radial glow. Color is opaque; the glow fades
// from Opacity at the center to transparent at the edge.
type DecorativeCircle struct {
	X, Y      float64
	Size      float64
	Color     theme.Color
	Opacity   float64
	Transform theme.Transform
}

// AccentBar is a thin gradient strip along the top edge.
type AccentBar struct {
	X, Y      float64
	Width     float64
	Height    float64
	Stops     []theme.GradientStop
	Transform theme.Transform
}

// ContentContainer is the vertical stack holding the slide's blocks.
type ContentContainer struct {
	X, Y         float64
	Width        float64
	Height       float64
	Spacing      float64
	PrimaryAlign Align // vertical
	CounterAlign Align // horizontal
	Children     []Node
}

// Role tells renderers which block a text run came from.
type Role string

const (
	RoleHeading   Role = "heading"
	RoleParagraph Role = "paragraph"
	RoleListItem  Role = "list-item"
)

// TextRun is a block of text in one size and color, with bold sub-ranges.
// Text is the plain text; Spans index its runes.
type TextRun struct {
	Role       Role
	Depth      int // headings only
	Text       string
	Spans      []richtext.Range
	Width      float64
	Align      Align // horizontal text alignment
	Size       float64
	Color      theme.Color
	Family     string
	Style      string
	Weight     int
	BoldColor  theme.Color
	BoldStyle  string
	BoldWeight int
}

// ListContainer stacks list items vertically.
type ListContainer struct {
	Width   float64
	Spacing float64
	Ordered bool
	Items   []*ListItem
}

// Bullet is the dot in front of a list item, centered in its wrapper.
type Bullet struct {
	WrapWidth  float64
	WrapHeight float64
	Size       float64
	Color      theme.Color
}

// ListItem places a bullet and a text run side by side.
type ListItem struct {
	Width       float64
	Height      float64 // minimum; grows with the text
	Spacing     float64
	PaddingLeft float64
	Bullet      Bullet
	Text        *TextRun
}

// PaginationLabel shows "NN / MM" near the bottom-right corner.
type PaginationLabel struct {
	Text    string
	X, Y    float64
	Size    float64
	Color   theme.Color
	Opacity float64
	Family  string
	Style   string
	Weight  int
}

// BrandMark shows the brand text near the bottom-left corner.
type BrandMark struct {
	Text          string
	X, Y          float64
	Size          float64
	Color         theme.Color
	Opacity       float64
	LetterSpacing float64
	Family        string
	Style         string
	Weight        int
}

func (*Background) Name() string       { return "Background" }
func (*DecorativeCircle) Name() string { return "Deco" }
func (*AccentBar) Name() string        { return "Accent Bar" }
func (*ContentContainer) Name() string { return "Content" }
func (*TextRun) Name() string          { return "Text" }
func (*ListContainer) Name() string    { return "List" }
func (*ListItem) Name() string         { return "List Item" }
func (*PaginationLabel) Name() string  { return "Slide Number" }
func (*BrandMark) Name() string        { return "Logo" }

func (*Root) node()             {}
func (*Background) node()       {}
func (*DecorativeCircle) node() {}
func (*AccentBar) node()        {}
func (*ContentContainer) node() {}
func (*TextRun) node()          {}
func (*ListContainer) node()    {}
func (*ListItem) node()         {}
func (*PaginationLabel) node()  {}
func (*BrandMark) node()        {}

// Walk visits n and its descendants depth-first in paint order. Returning
// false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch v := n.(type) {
	case *Root:
		for _, c := range v.Children {
			Walk(c, fn)
		}
	case *ContentContainer:
		for _, c := range v.Children {
			Walk(c, fn)
		}
	case *ListContainer:
		for _, item := range v.Items {
			Walk(item, fn)
		}
	case *ListItem:
		if v.Text != nil {
			Walk(v.Text, fn)
		}
	}
}
