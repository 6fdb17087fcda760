package md2slides

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"
)

// probeFontsJS reports, for each family, whether text set in it measures
// differently from every generic baseline. A family that is not installed
// falls back to the baseline and measures the same.
const probeFontsJS = `(families) => {
	const ctx = document.createElement('canvas').getContext('2d');
	const sample = 'mmmmmmmmmmlli WWW 0123 한글';
	const bases = ['monospace', 'serif', 'sans-serif'];
	const width = (font) => { ctx.font = '72px ' + font; return ctx.measureText(sample).width; };
	const baseline = bases.map((b) => width(b));
	const out = {};
	for (const family of families) {
		const quoted = '"' + family.replace(/["\\]/g, '') + '"';
		out[family] = bases.some((b, i) => width(quoted + ', ' + b) !== baseline[i]);
	}
	return out;
}`

// Probe measures which families the browser can render. It implements
// fonts.Prober.
func (r *rodRenderer) Probe(ctx context.Context, families []string) (map[string]bool, error) {
	if len(families) == 0 {
		return map[string]bool{}, nil
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	res, err := page.Context(ctx).Eval(probeFontsJS, families)
	if err != nil {
		return nil, pageError(ctx, ErrPageLoad, fmt.Errorf("probing fonts: %w", err))
	}

	found := make(map[string]bool, len(families))
	for family, ok := range res.Value.Map() {
		found[family] = ok.Bool()
	}
	return found, nil
}
