// Package fonts decides which typefaces slides are rendered with.
//
// Font availability is probed once per run by a Prober and recorded in a
// Capability. Layout consumes the Capability through Resolve, which applies
// the fallback rules: the theme's family when available, otherwise Noto Sans
// KR, otherwise Inter.
package fonts

import (
	"context"
	"sort"
)

// Well-known families.
const (
	Pretendard = "Pretendard"
	NotoSansKR = "Noto Sans KR"
	Inter      = "Inter"
)

// DefaultFamilies lists the families probed when no theme requests more.
var DefaultFamilies = []string{Pretendard, NotoSansKR, Inter}

// Status is the outcome of probing one family.
type Status int

const (
	// Fallback means the family could not be loaded and a fallback is used.
	Fallback Status = iota
	// Available means the family renders as itself.
	Available
)

// String returns "available" or "fallback".
func (s Status) String() string {
	if s == Available {
		return "available"
	}
	return "fallback"
}

// Capability records which families are available for rendering.
// The zero value reports every family as Fallback.
type Capability struct {
	families map[string]Status
}

// NewCapability returns a capability where exactly the listed families are
// available.
func NewCapability(available ...string) Capability {
	c := Capability{families: make(map[string]Status, len(available))}
	for _, f := range available {
		c.families[f] = Available
	}
	return c
}

// Status reports the probe outcome for family.
func (c Capability) Status(family string) Status {
	return c.families[family]
}

// Available reports whether family renders as itself.
func (c Capability) Available(family string) bool {
	return c.Status(family) == Available
}

// Families returns the available families in sorted order.
func (c Capability) Families() []string {
	out := make([]string, 0, len(c.families))
	for f, s := range c.families {
		if s == Available {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// Prober reports which of the requested families can be rendered.
type Prober interface {
	Probe(ctx context.Context, families []string) (map[string]bool, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, families []string) (map[string]bool, error)

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, families []string) (map[string]bool, error) {
	return f(ctx, families)
}

// Detect probes families with p. Probing is best effort: on error the
// returned capability marks everything Fallback and the error is returned
// for the caller to log.
func Detect(ctx context.Context, p Prober, families []string) (Capability, error) {
	found, err := p.Probe(ctx, dedupe(families))
	if err != nil {
		return Capability{}, err
	}

	var available []string
	for f, ok := range found {
		if ok {
			available = append(available, f)
		}
	}
	return NewCapability(available...), nil
}

// Assume returns a capability that treats the given families as available.
// It is used when no renderer is present to probe, so that the output relies
// on the viewer's own font fallback.
func Assume(families ...string) Capability {
	return NewCapability(families...)
}

func dedupe(families []string) []string {
	seen := make(map[string]bool, len(families))
	out := make([]string, 0, len(families))
	for _, f := range families {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
