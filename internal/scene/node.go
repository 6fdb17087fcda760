package scene

import "github.com/alnah/go-md2slides/internal/theme"

// NodeType is the kind of native object a node becomes.
type NodeType string

const (
	TypeSlide     NodeType = "SLIDE"
	TypeFrame     NodeType = "FRAME"
	TypeRectangle NodeType = "RECTANGLE"
	TypeEllipse   NodeType = "ELLIPSE"
	TypeText      NodeType = "TEXT"
)

// PaintType is the kind of fill.
type PaintType string

const (
	PaintSolid          PaintType = "SOLID"
	PaintLinearGradient PaintType = "GRADIENT_LINEAR"
	PaintRadialGradient PaintType = "GRADIENT_RADIAL"
)

// RGB is an opaque color with channels in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGBA is a color with alpha, used by gradient stops.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorStop is one gradient stop.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    RGBA    `json:"color"`
}

// Paint is one fill layer. Solid paints set Color; gradients set
// GradientStops and GradientTransform.
type Paint struct {
	Type              PaintType        `json:"type"`
	Color             *RGB             `json:"color,omitempty"`
	GradientStops     []ColorStop      `json:"gradientStops,omitempty"`
	GradientTransform *theme.Transform `json:"gradientTransform,omitempty"`
}

// FontName selects a font face.
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// LetterSpacing is the tracking of a text node.
type LetterSpacing struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RangeStyle restyles the characters [Start, End) of a text node. Offsets
// count UTF-16 code units, the host's string indexing.
type RangeStyle struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	FontName FontName `json:"fontName"`
	Fills    []Paint  `json:"fills"`
}

// Node describes one native object and its children.
type Node struct {
	Type    NodeType `json:"type"`
	Name    string   `json:"name"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Fills   []Paint  `json:"fills"`
	Opacity float64  `json:"opacity"`

	ClipsContent bool `json:"clipsContent,omitempty"`

	// Auto layout.
	LayoutMode            string  `json:"layoutMode,omitempty"`
	PrimaryAxisSizingMode string  `json:"primaryAxisSizingMode,omitempty"`
	CounterAxisSizingMode string  `json:"counterAxisSizingMode,omitempty"`
	PrimaryAxisAlignItems string  `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems string  `json:"counterAxisAlignItems,omitempty"`
	ItemSpacing           float64 `json:"itemSpacing,omitempty"`
	PaddingLeft           float64 `json:"paddingLeft,omitempty"`

	// Text.
	Characters          string         `json:"characters,omitempty"`
	FontSize            float64        `json:"fontSize,omitempty"`
	FontName            *FontName      `json:"fontName,omitempty"`
	TextAutoResize      string         `json:"textAutoResize,omitempty"`
	TextAlignHorizontal string         `json:"textAlignHorizontal,omitempty"`
	LetterSpacing       *LetterSpacing `json:"letterSpacing,omitempty"`
	RangeStyles         []RangeStyle   `json:"rangeStyles,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Find returns the first node named name in a depth-first walk, or nil.
func (n *Node) Find(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

func rgb(c theme.Color) *RGB {
	return &RGB{R: c.R, G: c.G, B: c.B}
}

func rgba(c theme.Color) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func solid(c theme.Color) []Paint {
	return []Paint{{Type: PaintSolid, Color: rgb(c)}}
}

// noFill is an explicit empty fill list, which hosts read as transparent.
func noFill() []Paint {
	return []Paint{}
}
