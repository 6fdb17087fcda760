// Package theme defines slide themes: palette, background, decorations and an
// optional font override. Themes are immutable values; a Registry maps theme
// identifiers to themes and resolves unknown identifiers to the default.
package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R, G, B float64
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Hex formats the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// CSS formats the color as a CSS rgba() value.
func (c Color) CSS() string {
	cc := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
	r, g, b := cc.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(c.A))
}

// ParseHex parses #rgb or #rrggbb into an opaque color.
func ParseHex(s string) (Color, error) {
	if len(s) == 4 && s[0] == '#' {
		s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

func formatAlpha(a float64) string {
	if a >= 1 {
		return "1"
	}
	if a <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.3g", a)
}

// ColorKey names one palette entry.
type ColorKey string

// Palette keys.
const (
	KeyBackground    ColorKey = "bg"
	KeyBackgroundMid ColorKey = "bgMid"
	KeyAccent1       ColorKey = "accent1"
	KeyAccent2       ColorKey = "accent2"
	KeyAccent3       ColorKey = "accent3"
	KeySubtitle      ColorKey = "subtitle"
	KeyBodyText      ColorKey = "bodyText"
	KeyBoldText      ColorKey = "boldText"
	KeyUIText        ColorKey = "uiText"
)

// ColorKeys lists every palette key in declaration order.
var ColorKeys = []ColorKey{
	KeyBackground, KeyBackgroundMid,
	KeyAccent1, KeyAccent2, KeyAccent3,
	KeySubtitle, KeyBodyText, KeyBoldText, KeyUIText,
}

// Palette is the fixed set of named colors a theme provides.
type Palette struct {
	Background    Color
	BackgroundMid Color
	Accent1       Color
	Accent2       Color
	Accent3       Color
	Subtitle      Color
	BodyText      Color
	BoldText      Color
	UIText        Color
}

// Color returns the palette entry for key.
func (p Palette) Color(key ColorKey) (Color, bool) {
	switch key {
	case KeyBackground:
		return p.Background, true
	case KeyBackgroundMid:
		return p.BackgroundMid, true
	case KeyAccent1:
		return p.Accent1, true
	case KeyAccent2:
		return p.Accent2, true
	case KeyAccent3:
		return p.Accent3, true
	case KeySubtitle:
		return p.Subtitle, true
	case KeyBodyText:
		return p.BodyText, true
	case KeyBoldText:
		return p.BoldText, true
	case KeyUIText:
		return p.UIText, true
	}
	return Color{}, false
}

// set assigns the entry for key; unknown keys report false.
func (p *Palette) set(key ColorKey, c Color) bool {
	switch key {
	case KeyBackground:
		p.Background = c
	case KeyBackgroundMid:
		p.BackgroundMid = c
	case KeyAccent1:
		p.Accent1 = c
	case KeyAccent2:
		p.Accent2 = c
	case KeyAccent3:
		p.Accent3 = c
	case KeySubtitle:
		p.Subtitle = c
	case KeyBodyText:
		p.BodyText = c
	case KeyBoldText:
		p.BoldText = c
	case KeyUIText:
		p.UIText = c
	default:
		return false
	}
	return true
}

// BackgroundKind selects how the slide background is painted.
type BackgroundKind int

const (
	BackgroundSolid BackgroundKind = iota
	BackgroundLinearGradient
)

// String returns the kind name used in theme files.
func (k BackgroundKind) String() string {
	switch k {
	case BackgroundSolid:
		return "solid"
	case BackgroundLinearGradient:
		return "gradient"
	}
	return fmt.Sprintf("BackgroundKind(%d)", int(k))
}

// GradientStop is one color stop of a linear gradient.
type GradientStop struct {
	Position float64
	Color    Color
}

// Transform is a 2x3 affine matrix mapping the slide's unit square onto
// gradient space. The gradient runs along the x axis of gradient space.
type Transform [2][3]float64

// IdentityTransform paints a left-to-right gradient.
var IdentityTransform = Transform{{1, 0, 0}, {0, 1, 0}}

// Background describes the slide background.
type Background struct {
	Kind      BackgroundKind
	Color     Color          // solid only
	Stops     []GradientStop // gradient only
	Transform Transform      // gradient only
}

// Circle is a soft radial glow placed on the slide.
type Circle struct {
	X, Y     float64
	Size     float64
	ColorKey ColorKey
	Opacity  float64
}

// Decorations lists decorative shapes drawn behind the content.
type Decorations struct {
	Circles   []Circle
	AccentBar bool
}

// FontOverride requests a specific family and title/body styles.
// It only applies when the family is available at render time.
type FontOverride struct {
	Family     string
	TitleStyle string
	BodyStyle  string
}

// Theme is a complete, immutable style descriptor.
type Theme struct {
	ID          string
	Name        string
	Colors      Palette
	Background  Background
	Decorations Decorations
	Font        *FontOverride
}

// Palette returns the theme's named colors.
func (t Theme) Palette() Palette {
	return t.Colors
}

// Clone returns a deep copy so callers never share slices or pointers with
// the registry.
func (t Theme) Clone() Theme {
	c := t
	if t.Background.Stops != nil {
		c.Background.Stops = append([]GradientStop(nil), t.Background.Stops...)
	}
	if t.Decorations.Circles != nil {
		c.Decorations.Circles = append([]Circle(nil), t.Decorations.Circles...)
	}
	if t.Font != nil {
		f := *t.Font
		c.Font = &f
	}
	return c
}
