// Package richtext resolves inline **bold** markup into plain text plus the
// rune ranges that must be re-styled.
//
// Only the double-asterisk delimiter is recognized. A delimiter pair encloses
// at least one character and never spans a newline; the closing delimiter is
// the first one that satisfies both rules (non-greedy). Openers without a
// valid closer are kept as literal text.
package richtext

import (
	"strings"
	"unicode/utf8"
)

// delimiter marks the start and end of a bold span.
const delimiter = "**"

// Range is a half-open [Start, End) interval over the runes of the plain text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// ResolveSpans strips bold delimiters from raw and reports where the bold
// content ended up in the returned plain text.
// Ranges are ordered, non-overlapping and lie within the plain text.
func ResolveSpans(raw string) (string, []Range) {
	if !strings.Contains(raw, delimiter) {
		return raw, nil
	}

	var (
		plain  strings.Builder
		ranges []Range
		runes  int // runes written to plain so far
	)
	plain.Grow(len(raw))

	i := 0
	for i < len(raw) {
		if strings.HasPrefix(raw[i:], delimiter) {
			if end := closingDelimiter(raw, i+len(delimiter)); end >= 0 {
				inner := raw[i+len(delimiter) : end]
				n := utf8.RuneCountInString(inner)
				ranges = append(ranges, Range{Start: runes, End: runes + n})
				plain.WriteString(inner)
				runes += n
				i = end + len(delimiter)
				continue
			}
		}

		_, size := utf8.DecodeRuneInString(raw[i:])
		plain.WriteString(raw[i : i+size])
		runes++
		i += size
	}

	return plain.String(), ranges
}

// closingDelimiter returns the byte offset of the delimiter closing a span
// whose content starts at from, or -1 when the opener is unmatched.
// The content must hold at least one rune and no newline.
func closingDelimiter(raw string, from int) int {
	if from >= len(raw) {
		return -1
	}
	_, size := utf8.DecodeRuneInString(raw[from:])
	if raw[from] == '\n' {
		return -1
	}

	for j := from + size; j < len(raw); {
		if strings.HasPrefix(raw[j:], delimiter) {
			return j
		}
		if raw[j] == '\n' {
			return -1
		}
		_, s := utf8.DecodeRuneInString(raw[j:])
		j += s
	}
	return -1
}

// Segment is a contiguous run of plain text sharing one weight.
type Segment struct {
	Text string
	Bold bool
}

// Segments cuts plain into alternating regular and bold runs according to
// ranges. Ranges outside the text are clamped; empty segments are omitted.
func Segments(plain string, ranges []Range) []Segment {
	runes := []rune(plain)
	var out []Segment
	pos := 0

	emit := func(start, end int, bold bool) {
		if end > start {
			out = append(out, Segment{Text: string(runes[start:end]), Bold: bold})
		}
	}

	for _, r := range ranges {
		start := clamp(r.Start, pos, len(runes))
		end := clamp(r.End, start, len(runes))
		emit(pos, start, false)
		emit(start, end, true)
		pos = end
	}
	emit(pos, len(runes), false)

	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
