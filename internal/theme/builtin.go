package theme

// Built-in theme identifiers.
const (
	DakerDark     = "daker-dark"
	DakerLight    = "daker-light"
	CorporateBlue = "corporate-blue"
	Minimal       = "minimal"
	CleanWhite    = "clean-white"
)

// DefaultID is the theme used when none, or an unknown one, is requested.
const DefaultID = CleanWhite

// diagonal runs a gradient from the top-left to the bottom-right corner.
var diagonal = Transform{{0.7, 0.7, 0}, {-0.7, 0.7, 0.5}}

func builtinThemes() []Theme {
	return []Theme{
		{
			ID:   DakerDark,
			Name: "DAKER Dark",
			Colors: Palette{
				Background:    RGB(0.059, 0.047, 0.161),
				BackgroundMid: RGB(0.094, 0.082, 0.263),
				Accent1:       RGB(0.506, 0.549, 0.945),
				Accent2:       RGB(0.753, 0.522, 0.965),
				Accent3:       RGB(0.957, 0.447, 0.714),
				Subtitle:      RGB(0.769, 0.710, 0.992),
				BodyText:      RGB(0.820, 0.835, 0.855),
				BoldText:      RGB(0.878, 0.906, 1.0),
				UIText:        RGB(1, 1, 1),
			},
			Background: Background{
				Kind: BackgroundLinearGradient,
				Stops: []GradientStop{
					{Position: 0, Color: RGB(0.059, 0.047, 0.161)},
					{Position: 0.4, Color: RGB(0.094, 0.082, 0.263)},
					{Position: 0.7, Color: RGB(0.188, 0.169, 0.388)},
					{Position: 1.0, Color: RGB(0.141, 0.141, 0.243)},
				},
				Transform: diagonal,
			},
			Decorations: Decorations{
				Circles: []Circle{
					{X: 1420, Y: -200, Size: 600, ColorKey: KeyAccent1, Opacity: 0.12},
					{X: -100, Y: 730, Size: 500, ColorKey: KeyAccent2, Opacity: 0.08},
				},
				AccentBar: true,
			},
		},
		{
			ID:   DakerLight,
			Name: "DAKER Light",
			Colors: Palette{
				Background:    RGB(0.96, 0.96, 0.98),
				BackgroundMid: RGB(0.92, 0.92, 0.96),
				Accent1:       RGB(0.4, 0.45, 0.85),
				Accent2:       RGB(0.6, 0.4, 0.8),
				Accent3:       RGB(0.85, 0.35, 0.6),
				Subtitle:      RGB(0.4, 0.35, 0.6),
				BodyText:      RGB(0.25, 0.25, 0.3),
				BoldText:      RGB(0.15, 0.15, 0.2),
				UIText:        RGB(0.3, 0.3, 0.4),
			},
			Background: Background{
				Kind: BackgroundLinearGradient,
				Stops: []GradientStop{
					{Position: 0, Color: RGB(0.98, 0.98, 1.0)},
					{Position: 0.5, Color: RGB(0.94, 0.94, 0.98)},
					{Position: 1.0, Color: RGB(0.90, 0.90, 0.96)},
				},
				Transform: diagonal,
			},
			Decorations: Decorations{
				Circles: []Circle{
					{X: 1420, Y: -200, Size: 600, ColorKey: KeyAccent1, Opacity: 0.06},
					{X: -100, Y: 730, Size: 500, ColorKey: KeyAccent2, Opacity: 0.05},
				},
				AccentBar: true,
			},
		},
		{
			ID:   CorporateBlue,
			Name: "Corporate Blue",
			Colors: Palette{
				Background:    RGB(0.11, 0.15, 0.22),
				BackgroundMid: RGB(0.14, 0.18, 0.26),
				Accent1:       RGB(0.2, 0.5, 0.9),
				Accent2:       RGB(0.3, 0.6, 0.95),
				Accent3:       RGB(0.4, 0.7, 1.0),
				Subtitle:      RGB(0.6, 0.75, 0.9),
				BodyText:      RGB(0.8, 0.85, 0.9),
				BoldText:      RGB(0.9, 0.95, 1.0),
				UIText:        RGB(1, 1, 1),
			},
			Background: Background{
				Kind: BackgroundLinearGradient,
				Stops: []GradientStop{
					{Position: 0, Color: RGB(0.08, 0.12, 0.18)},
					{Position: 0.5, Color: RGB(0.12, 0.16, 0.24)},
					{Position: 1.0, Color: RGB(0.15, 0.2, 0.3)},
				},
				Transform: IdentityTransform,
			},
			Decorations: Decorations{
				Circles: []Circle{
					{X: 1520, Y: -150, Size: 500, ColorKey: KeyAccent1, Opacity: 0.1},
				},
				AccentBar: true,
			},
		},
		{
			ID:   Minimal,
			Name: "Minimal",
			Colors: Palette{
				Background:    RGB(1, 1, 1),
				BackgroundMid: RGB(0.98, 0.98, 0.98),
				Accent1:       RGB(0.1, 0.1, 0.1),
				Accent2:       RGB(0.2, 0.2, 0.2),
				Accent3:       RGB(0.3, 0.3, 0.3),
				Subtitle:      RGB(0.4, 0.4, 0.4),
				BodyText:      RGB(0.2, 0.2, 0.2),
				BoldText:      RGB(0, 0, 0),
				UIText:        RGB(0.3, 0.3, 0.3),
			},
			Background: Background{
				Kind:  BackgroundSolid,
				Color: RGB(1, 1, 1),
			},
			Decorations: Decorations{AccentBar: true},
		},
		{
			ID:   CleanWhite,
			Name: "Clean White",
			Colors: Palette{
				Background:    RGB(1, 1, 1),
				BackgroundMid: RGB(1, 1, 1),
				Accent1:       RGB(0.235, 0.486, 0.871), // #3C7CDE
				Accent2:       RGB(0.235, 0.486, 0.871),
				Accent3:       RGB(0.235, 0.486, 0.871),
				Subtitle:      RGB(0.235, 0.486, 0.871),
				BodyText:      RGB(0.2, 0.2, 0.2),
				BoldText:      RGB(0.1, 0.1, 0.1),
				UIText:        RGB(0.4, 0.4, 0.4),
			},
			Background: Background{
				Kind:  BackgroundSolid,
				Color: RGB(1, 1, 1),
			},
			Font: &FontOverride{
				Family:     "Pretendard",
				TitleStyle: "ExtraBold",
				BodyStyle:  "Medium",
			},
		},
	}
}
