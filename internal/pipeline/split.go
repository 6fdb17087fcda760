package pipeline

import "strings"

// Separator is the line that delimits consecutive slides.
const Separator = "---"

// SplitIntoSlides cuts doc into slides on every line that is exactly the
// separator (trailing whitespace allowed). Sections are trimmed and empty
// ones dropped; the remaining sections become slides numbered from 1 in
// document order. A document without separators yields a single slide.
//
// Returned slides carry no tokens; see Parse.
func SplitIntoSlides(doc string) []Slide {
	doc = Normalize(doc)

	var (
		slides  []Slide
		section strings.Builder
	)
	flush := func() {
		text := strings.TrimSpace(section.String())
		section.Reset()
		if text == "" {
			return
		}
		slides = append(slides, Slide{Index: len(slides) + 1, Markdown: text})
	}

	for _, line := range strings.Split(doc, "\n") {
		if isSeparator(line) {
			flush()
			continue
		}
		section.WriteString(line)
		section.WriteByte('\n')
	}
	flush()

	return slides
}

func isSeparator(line string) bool {
	return strings.TrimRight(line, " \t") == Separator
}

// Parse splits doc into slides and lexes each one.
func Parse(doc string) []Slide {
	slides := SplitIntoSlides(doc)
	for i := range slides {
		slides[i].Blocks = Lex(slides[i].Markdown)
	}
	return slides
}
