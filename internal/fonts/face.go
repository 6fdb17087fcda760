package fonts

import (
	"strings"

	"github.com/alnah/go-md2slides/internal/theme"
)

// Style names.
const (
	StyleLight   = "Light"
	StyleRegular = "Regular"
	StyleBold    = "Bold"
)

// Face is the typeface selection for one slide deck.
type Face struct {
	Family     string
	TitleStyle string
	BodyStyle  string
}

// Resolve picks the face for a theme given what is available.
//
// The family is the override's family when it is available, else Noto Sans
// KR when available, else Inter. The override's title and body styles are
// used only together with its family; otherwise titles are Bold and body
// text Regular.
func Resolve(c Capability, override *theme.FontOverride) Face {
	if override != nil && override.Family != "" && c.Available(override.Family) {
		face := Face{
			Family:     override.Family,
			TitleStyle: StyleBold,
			BodyStyle:  StyleRegular,
		}
		if override.TitleStyle != "" {
			face.TitleStyle = override.TitleStyle
		}
		if override.BodyStyle != "" {
			face.BodyStyle = override.BodyStyle
		}
		return face
	}

	family := Inter
	if c.Available(NotoSansKR) {
		family = NotoSansKR
	}
	return Face{Family: family, TitleStyle: StyleBold, BodyStyle: StyleRegular}
}

// Style maps a requested style onto one the face's family ships.
// Pretendard has no Light cut in the loaded set, so Light becomes Regular.
func (f Face) Style(requested string) string {
	if f.Family == Pretendard && requested == StyleLight {
		return StyleRegular
	}
	return requested
}

// Stack returns a CSS font-family list starting with the face's family and
// ending with the generic fallbacks.
func (f Face) Stack() []string {
	stack := []string{f.Family}
	for _, fam := range []string{NotoSansKR, Inter} {
		if fam != f.Family {
			stack = append(stack, fam)
		}
	}
	return append(stack, "sans-serif")
}

var weights = map[string]int{
	"thin":       100,
	"extralight": 200,
	"light":      300,
	"regular":    400,
	"medium":     500,
	"semibold":   600,
	"bold":       700,
	"extrabold":  800,
	"black":      900,
}

// Weight converts a style name such as "ExtraBold" or "Semi Bold" to its
// numeric CSS weight. Unknown names weigh 400.
func Weight(style string) int {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "").Replace(style))
	if w, ok := weights[key]; ok {
		return w
	}
	return 400
}
