package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/theme"
)

// genericFamilies are CSS keywords that must not be quoted.
var genericFamilies = map[string]bool{
	"serif":      true,
	"sans-serif": true,
	"monospace":  true,
	"cursive":    true,
	"fantasy":    true,
	"system-ui":  true,
}

// declarations accumulates "property: value;" pairs for a style attribute.
type declarations struct {
	b strings.Builder
}

func (d *declarations) set(property, value string) *declarations {
	if value == "" {
		return d
	}
	if d.b.Len() > 0 {
		d.b.WriteByte(' ')
	}
	d.b.WriteString(property)
	d.b.WriteString(": ")
	d.b.WriteString(value)
	d.b.WriteByte(';')
	return d
}

func (d *declarations) String() string {
	return d.b.String()
}

// px formats a length without trailing zeros, e.g. 1720 => "1720px".
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// gradientAngle converts a gradient transform into a CSS linear-gradient
// angle in degrees within [0, 360). The identity transform runs left to
// right, which CSS calls 90deg.
func gradientAngle(t theme.Transform) float64 {
	a, b := t[0][0], t[0][1]
	if a == 0 && b == 0 {
		return 90
	}
	deg := math.Atan2(a, -b) * 180 / math.Pi
	deg = math.Round(deg*100) / 100
	if deg < 0 {
		deg += 360
	}
	return deg
}

// linearGradientCSS renders stops as a CSS linear-gradient.
func linearGradientCSS(stops []theme.GradientStop, t theme.Transform) string {
	parts := make([]string, 0, len(stops)+1)
	parts = append(parts, number(gradientAngle(t))+"deg")
	for _, s := range stops {
		parts = append(parts, fmt.Sprintf("%s %s%%", s.Color.CSS(), number(math.Round(s.Position*10000)/100)))
	}
	return "linear-gradient(" + strings.Join(parts, ", ") + ")"
}

// backgroundCSS renders a theme background as a CSS background value.
func backgroundCSS(bg theme.Background) string {
	if bg.Kind == theme.BackgroundLinearGradient && len(bg.Stops) > 0 {
		return linearGradientCSS(bg.Stops, bg.Transform)
	}
	return bg.Color.CSS()
}

// radialGlowCSS fades color from opacity at the center to transparent at
// the edge of the box.
func radialGlowCSS(c theme.Color, opacity float64) string {
	return fmt.Sprintf("radial-gradient(circle closest-side, %s 0%%, %s 100%%)",
		c.WithAlpha(opacity).CSS(), c.WithAlpha(0).CSS())
}

// fontStackCSS renders a font-family value, quoting named families.
func fontStackCSS(stack []string) string {
	parts := make([]string, 0, len(stack))
	for _, fam := range stack {
		fam = strings.TrimSpace(fam)
		if fam == "" {
			continue
		}
		if genericFamilies[fam] {
			parts = append(parts, fam)
			continue
		}
		parts = append(parts, "'"+escapeCSSString(fam)+"'")
	}
	return strings.Join(parts, ", ")
}

// escapeCSSString escapes a value for a single-quoted CSS string.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "<", `\3c `)
	return s
}

// flexAlign maps an auto-layout alignment onto justify/align values.
func flexAlign(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "center"
	case layout.AlignMax:
		return "flex-end"
	}
	return "flex-start"
}

// textAlign maps an alignment onto text-align.
func textAlign(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "center"
	case layout.AlignMax:
		return "right"
	}
	return "left"
}
