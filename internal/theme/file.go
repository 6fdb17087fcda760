package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// ErrInvalidTheme is returned when a theme file fails validation.
var ErrInvalidTheme = errors.New("invalid theme")

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	themeIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("theme_id", func(fl validator.FieldLevel) bool {
			return themeIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("color_key", func(fl validator.FieldLevel) bool {
			_, ok := Palette{}.Color(ColorKey(fl.Field().String()))
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// File is the on-disk YAML representation of a theme.
//
// A file may extend another theme; its colors, background, decorations and
// font then replace only the parts they set.
type File struct {
	ID          string            `yaml:"id" validate:"required,theme_id"`
	Name        string            `yaml:"name" validate:"omitempty,max=64"`
	Extends     string            `yaml:"extends" validate:"omitempty,theme_id"`
	Colors      map[string]string `yaml:"colors" validate:"dive,keys,color_key,endkeys,hexcolor"`
	Background  *BackgroundFile   `yaml:"background"`
	Decorations *DecorationsFile  `yaml:"decorations"`
	Font        *FontOverrideFile `yaml:"font"`
}

// BackgroundFile is the YAML form of Background.
type BackgroundFile struct {
	Type      string      `yaml:"type" validate:"required,oneof=solid gradient"`
	Color     string      `yaml:"color" validate:"required_if=Type solid,omitempty,hexcolor"`
	Stops     []StopFile  `yaml:"stops" validate:"required_if=Type gradient,omitempty,min=2,dive"`
	Transform [][]float64 `yaml:"transform" validate:"omitempty,len=2,dive,len=3"`
}

// StopFile is the YAML form of GradientStop.
type StopFile struct {
	Position float64 `yaml:"position" validate:"gte=0,lte=1"`
	Color    string  `yaml:"color" validate:"required,hexcolor"`
}

// DecorationsFile is the YAML form of Decorations.
type DecorationsFile struct {
	Circles   []CircleFile `yaml:"circles" validate:"dive"`
	AccentBar *bool        `yaml:"accentBar"`
}

// CircleFile is the YAML form of Circle.
type CircleFile struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Size    float64 `yaml:"size" validate:"gt=0"`
	Color   string  `yaml:"color" validate:"required,color_key"`
	Opacity float64 `yaml:"opacity" validate:"gte=0,lte=1"`
}

// FontOverrideFile is the YAML form of FontOverride.
type FontOverrideFile struct {
	Family     string `yaml:"family" validate:"required"`
	TitleStyle string `yaml:"titleStyle"`
	BodyStyle  string `yaml:"bodyStyle"`
}

// Parse decodes and validates a YAML theme. Themes that extend another theme
// are resolved against base, which may be nil when extends is unused.
func Parse(data []byte, base *Registry) (Theme, error) {
	var f File
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	return f.Theme(base)
}

// Theme validates f and converts it to a Theme.
func (f *File) Theme(base *Registry) (Theme, error) {
	if err := validatorInstance().Struct(f); err != nil {
		return Theme{}, convertValidationError(f.ID, err)
	}

	var t Theme
	if f.Extends != "" {
		if base == nil {
			return Theme{}, fmt.Errorf("%w: %s: extends %q without a base registry", ErrInvalidTheme, f.ID, f.Extends)
		}
		parent, ok := base.Lookup(f.Extends)
		if !ok {
			return Theme{}, fmt.Errorf("%w: %s: extends unknown theme %q", ErrInvalidTheme, f.ID, f.Extends)
		}
		t = parent
	} else if len(f.Colors) != len(ColorKeys) {
		return Theme{}, fmt.Errorf("%w: %s: missing colors %s", ErrInvalidTheme, f.ID, strings.Join(f.missingColors(), ", "))
	}

	t.ID = f.ID
	t.Name = f.Name
	if t.Name == "" {
		t.Name = f.ID
	}

	for key, hex := range f.Colors {
		c, err := ParseHex(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("%w: %s: colors.%s: %v", ErrInvalidTheme, f.ID, key, err)
		}
		t.Colors.set(ColorKey(key), c)
	}

	if f.Background != nil {
		bg, err := f.Background.background()
		if err != nil {
			return Theme{}, fmt.Errorf("%w: %s: background: %v", ErrInvalidTheme, f.ID, err)
		}
		t.Background = bg
	} else if f.Extends == "" {
		t.Background = Background{Kind: BackgroundSolid, Color: t.Colors.Background}
	}

	if f.Decorations != nil {
		if f.Decorations.Circles != nil {
			t.Decorations.Circles = make([]Circle, 0, len(f.Decorations.Circles))
			for _, c := range f.Decorations.Circles {
				t.Decorations.Circles = append(t.Decorations.Circles, Circle{
					X: c.X, Y: c.Y, Size: c.Size,
					ColorKey: ColorKey(c.Color),
					Opacity:  c.Opacity,
				})
			}
		}
		if f.Decorations.AccentBar != nil {
			t.Decorations.AccentBar = *f.Decorations.AccentBar
		}
	}

	if f.Font != nil {
		t.Font = &FontOverride{
			Family:     f.Font.Family,
			TitleStyle: f.Font.TitleStyle,
			BodyStyle:  f.Font.BodyStyle,
		}
	}

	return t, nil
}

func (f *File) missingColors() []string {
	var missing []string
	for _, key := range ColorKeys {
		if _, ok := f.Colors[string(key)]; !ok {
			missing = append(missing, string(key))
		}
	}
	return missing
}

func (b *BackgroundFile) background() (Background, error) {
	if b.Type == "solid" {
		c, err := ParseHex(b.Color)
		if err != nil {
			return Background{}, err
		}
		return Background{Kind: BackgroundSolid, Color: c}, nil
	}

	stops := make([]GradientStop, 0, len(b.Stops))
	for _, s := range b.Stops {
		c, err := ParseHex(s.Color)
		if err != nil {
			return Background{}, err
		}
		stops = append(stops, GradientStop{Position: s.Position, Color: c})
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Position < stops[j].Position })

	tr := IdentityTransform
	if len(b.Transform) == 2 {
		for row := range tr {
			copy(tr[row][:], b.Transform[row])
		}
	}
	return Background{Kind: BackgroundLinearGradient, Stops: stops, Transform: tr}, nil
}

func convertValidationError(id string, err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTheme, id, err)
	}

	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := strings.TrimPrefix(fe.Namespace(), "File.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	if id == "" {
		id = "<unnamed>"
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidTheme, id, strings.Join(msgs, "; "))
}

// LoadDir parses every *.yaml and *.yml file in dir, in name order.
// Files may extend built-in themes or themes defined earlier in the same
// directory.
func LoadDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading theme directory: %w", err)
	}

	base := Builtin()
	var themes []Theme
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name())) // #nosec G304 -- entries come from ReadDir
		if err != nil {
			return nil, fmt.Errorf("reading theme %s: %w", e.Name(), err)
		}
		t, err := Parse(data, base)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		themes = append(themes, t)

		opts := make([]RegistryOption, 0, len(themes))
		for _, th := range themes {
			opts = append(opts, WithTheme(th))
		}
		if base, err = NewRegistry(opts...); err != nil {
			return nil, err
		}
	}
	return themes, nil
}

// LoadRegistry builds a registry of the built-in themes plus every theme
// file in dir. An empty dir yields the built-in registry.
func LoadRegistry(dir string) (*Registry, error) {
	if dir == "" {
		return Builtin(), nil
	}
	themes, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	opts := make([]RegistryOption, 0, len(themes))
	for _, t := range themes {
		opts = append(opts, WithTheme(t))
	}
	return NewRegistry(opts...)
}
