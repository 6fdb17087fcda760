package scene

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2slides/internal/fonts"
	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/richtext"
	"github.com/alnah/go-md2slides/internal/theme"
)

const deck = "# Cover\n\n---\n\n## Middle\n\nSome **bold** text\n\n- one\n- two\n\n---\n\n# End"

func layoutDeck(t *testing.T, themeID string) []*layout.Root {
	t.Helper()

	slides := pipeline.Parse(deck)
	th := theme.Resolve(themeID)
	roots := make([]*layout.Root, 0, len(slides))
	for i, s := range slides {
		roots = append(roots, layout.LayoutSlide(s, i, len(slides), th, layout.Options{}))
	}
	return roots
}

func childNames(n *Node) []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

func TestBuild_DesignMode(t *testing.T) {
	t.Parallel()

	roots := layoutDeck(t, theme.DakerDark)
	got := Build(roots[1], ModeDesign)

	if got.Type != TypeFrame || got.Name != "Slide 02" {
		t.Fatalf("root = %s %q, want FRAME \"Slide 02\"", got.Type, got.Name)
	}
	if got.X != 2020 || got.Y != 0 {
		t.Errorf("root position = (%v, %v), want (2020, 0)", got.X, got.Y)
	}
	if !got.ClipsContent {
		t.Error("root does not clip content")
	}

	want := []string{"Deco", "Deco", "Accent Bar", "Content", "Slide Number", "Logo"}
	if diff := cmp.Diff(want, childNames(got)); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}

	if len(got.Fills) != 1 || got.Fills[0].Type != PaintLinearGradient {
		t.Fatalf("background fills = %+v, want one linear gradient", got.Fills)
	}
	if n := len(got.Fills[0].GradientStops); n != 4 {
		t.Errorf("background stops = %d, want 4", n)
	}
}

func TestBuild_SlidesMode(t *testing.T) {
	t.Parallel()

	roots := layoutDeck(t, theme.CleanWhite)
	got := Build(roots[0], ModeSlides)

	if got.Type != TypeSlide || got.Name != "Slide 01" {
		t.Fatalf("root = %s %q, want SLIDE \"Slide 01\"", got.Type, got.Name)
	}
	if len(got.Children) != 1 || got.Children[0].Name != contentFrameName {
		t.Fatalf("slide children = %v, want [%s]", childNames(got), contentFrameName)
	}

	frame := got.Children[0]
	if frame.X != 0 {
		t.Errorf("content frame x = %v, want 0", frame.X)
	}
	want := []string{"Content", "Slide Number", "Logo"}
	if diff := cmp.Diff(want, childNames(frame)); diff != "" {
		t.Errorf("clean-white children mismatch (-want +got):\n%s", diff)
	}
	if frame.Fills[0].Type != PaintSolid {
		t.Errorf("clean-white background = %s, want SOLID", frame.Fills[0].Type)
	}
}

func TestBuild_ContentAutoLayout(t *testing.T) {
	t.Parallel()

	roots := layoutDeck(t, theme.Minimal)

	cover := Build(roots[0], ModeDesign).Find("Content")
	if cover.PrimaryAxisAlignItems != "CENTER" || cover.CounterAxisAlignItems != "CENTER" {
		t.Errorf("cover alignment = %s/%s, want CENTER/CENTER", cover.PrimaryAxisAlignItems, cover.CounterAxisAlignItems)
	}

	middle := Build(roots[1], ModeDesign).Find("Content")
	if middle.PrimaryAxisAlignItems != "CENTER" || middle.CounterAxisAlignItems != "MIN" {
		t.Errorf("middle alignment = %s/%s, want CENTER/MIN", middle.PrimaryAxisAlignItems, middle.CounterAxisAlignItems)
	}
	if middle.X != 100 || middle.Y != 80 || middle.Width != 1720 || middle.Height != 880 || middle.ItemSpacing != 24 {
		t.Errorf("content box = %+v", middle)
	}

	list := middle.Find("List")
	if list == nil || len(list.Children) != 2 {
		t.Fatalf("list = %+v, want two items", list)
	}
	item := list.Children[0]
	if item.LayoutMode != "HORIZONTAL" || item.ItemSpacing != 16 || item.PaddingLeft != 8 {
		t.Errorf("list item = %+v", item)
	}
	wrap := item.Find("BulletWrap")
	if wrap == nil || wrap.Width != 10 || wrap.Height != 30 || wrap.Children[0].Type != TypeEllipse {
		t.Errorf("bullet wrap = %+v", wrap)
	}
}

func TestText_RangeStyles(t *testing.T) {
	t.Parallel()

	bold := theme.RGB(0.1, 0.1, 0.1)
	tests := []struct {
		name  string
		raw   string
		chars string
		want  [][2]int
	}{
		{"ascii", "a **b** c **dd** e", "a b c dd e", [][2]int{{2, 3}, {6, 8}}},
		{"hangul is one unit per rune", "가 **나다** 라", "가 나다 라", [][2]int{{2, 4}}},
		{"astral rune takes two units", "😀 **x**", "😀 x", [][2]int{{3, 4}}},
		{"no spans", "plain", "plain", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plain, spans := richtext.ResolveSpans(tt.raw)
			n := text(&layout.TextRun{
				Role:      layout.RoleParagraph,
				Text:      plain,
				Spans:     spans,
				Width:     1720,
				Size:      24,
				Family:    fonts.Inter,
				Style:     fonts.StyleRegular,
				BoldStyle: fonts.StyleBold,
				BoldColor: bold,
			})

			if n.Characters != tt.chars {
				t.Errorf("Characters = %q, want %q", n.Characters, tt.chars)
			}
			var got [][2]int
			for _, r := range n.RangeStyles {
				got = append(got, [2]int{r.Start, r.End})
				if r.FontName.Style != fonts.StyleBold {
					t.Errorf("range style = %q, want Bold", r.FontName.Style)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestText_Node(t *testing.T) {
	t.Parallel()

	c := theme.RGB(0.2, 0.2, 0.2)
	got := text(&layout.TextRun{
		Role:   layout.RoleHeading,
		Text:   "Title",
		Width:  1720,
		Align:  layout.AlignCenter,
		Size:   72,
		Color:  c,
		Family: fonts.Pretendard,
		Style:  "ExtraBold",
	})

	want := &Node{
		Type:                TypeText,
		Name:                "Text",
		Width:               1720,
		Height:              144,
		Opacity:             1,
		Fills:               []Paint{{Type: PaintSolid, Color: &RGB{R: 0.2, G: 0.2, B: 0.2}}},
		Characters:          "Title",
		FontSize:            72,
		FontName:            &FontName{Family: fonts.Pretendard, Style: "ExtraBold"},
		TextAutoResize:      "HEIGHT",
		TextAlignHorizontal: "CENTER",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("text() mismatch (-want +got):\n%s", diff)
	}
}

func TestCircleAndLabels(t *testing.T) {
	t.Parallel()

	frame := Build(layoutDeck(t, theme.DakerDark)[0], ModeDesign)

	deco := frame.Find("Deco")
	if deco.Type != TypeEllipse || deco.Width != 600 || deco.X != 1420 || deco.Y != -200 {
		t.Errorf("deco = %+v", deco)
	}
	fill := deco.Fills[0]
	if fill.Type != PaintRadialGradient {
		t.Fatalf("deco fill = %s, want GRADIENT_RADIAL", fill.Type)
	}
	if fill.GradientStops[0].Color.A != 0.12 || fill.GradientStops[1].Color.A != 0 {
		t.Errorf("deco stops = %+v, want alpha 0.12 then 0", fill.GradientStops)
	}
	if diff := cmp.Diff(&theme.Transform{{0.5, 0, 0.25}, {0, 0.5, 0.25}}, fill.GradientTransform); diff != "" {
		t.Errorf("deco transform mismatch (-want +got):\n%s", diff)
	}

	page := frame.Find("Slide Number")
	if page.Characters != "01 / 03" || page.Opacity != 0.3 || page.X != 1760 || page.Y != 1020 {
		t.Errorf("slide number = %+v", page)
	}

	logo := frame.Find("Logo")
	if logo.Characters != "DAKER.ai" || logo.Opacity != 0.25 || logo.LetterSpacing == nil || logo.LetterSpacing.Value != 3 {
		t.Errorf("logo = %+v", logo)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	var progress []Progress
	doc, done, err := Run(context.Background(), pipeline.Parse(deck), theme.Resolve(theme.DakerLight), Options{
		OnProgress: func(p Progress) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if doc.Theme != theme.DakerLight || doc.Mode != ModeDesign || len(doc.Slides) != 3 {
		t.Fatalf("doc = theme %q mode %q slides %d", doc.Theme, doc.Mode, len(doc.Slides))
	}
	for i, s := range doc.Slides {
		if s.X != DesignX(i) {
			t.Errorf("slide %d x = %v, want %v", i, s.X, DesignX(i))
		}
	}

	wantProgress := []Progress{
		{Type: MessageProgress, Current: 1, Total: 3, Name: "Slide 01"},
		{Type: MessageProgress, Current: 2, Total: 3, Name: "Slide 02"},
		{Type: MessageProgress, Current: 3, Total: 3, Name: "Slide 03"},
	}
	if diff := cmp.Diff(wantProgress, progress); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}
	if done.Type != MessageDone || done.Count != 3 {
		t.Errorf("done = %+v, want count 3", done)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no slides", func(t *testing.T) {
		t.Parallel()

		_, _, err := Run(context.Background(), nil, theme.Resolve(""), Options{})
		if !errors.Is(err, ErrNoSlides) {
			t.Errorf("Run() error = %v, want ErrNoSlides", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		doc, done, err := Run(ctx, pipeline.Parse(deck), theme.Resolve(""), Options{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
		if len(doc.Slides) != 0 || done.Count != 0 {
			t.Errorf("cancelled run built %d slides", len(doc.Slides))
		}
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	doc, _, err := Run(context.Background(), pipeline.Parse("# Only"), theme.Resolve(""), Options{Mode: ModeSlides})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded struct {
		Mode   string `json:"mode"`
		Slides []struct {
			Type     string            `json:"type"`
			Name     string            `json:"name"`
			Fills    []json.RawMessage `json:"fills"`
			Children []struct {
				Name string `json:"name"`
			} `json:"children"`
		} `json:"slides"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Mode != "slides" || len(decoded.Slides) != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	s := decoded.Slides[0]
	if s.Type != "SLIDE" || s.Name != "Slide 01" || s.Fills == nil || s.Children[0].Name != contentFrameName {
		t.Errorf("decoded slide = %+v", s)
	}
}

func TestRun_CancelledReportsFailure(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Run(ctx, pipeline.Parse(deck), theme.Resolve(""), Options{})
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("Run() error = %v, want *Failure", err)
	}
	if f.Type != MessageError || f.Slide != 1 || f.Message != context.Canceled.Error() {
		t.Errorf("failure = %+v", f)
	}
	if got, want := f.Error(), "building Slide 01: context canceled"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(raw), `{"type":"error","slide":1,"message":"context canceled"}`; got != want {
		t.Errorf("encoded = %s, want %s", got, want)
	}
}
