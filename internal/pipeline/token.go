package pipeline

import "encoding/json"

// Block is one block-level token of a slide. The concrete types are
// Heading, Paragraph and List; consumers switch on them exhaustively.
type Block interface {
	// Kind returns the token type name used in JSON output.
	Kind() string
	block()
}

// Heading is an ATX or setext heading. Depth starts at 1.
type Heading struct {
	Depth int
	Text  string
}

// Paragraph is a run of text. Code, quote and HTML blocks also lex to
// paragraphs.
type Paragraph struct {
	Text string
}

// List is an ordered or unordered list. Nested lists are flattened into
// Items in document order. Items is never nil.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is one entry of a List.
type ListItem struct {
	Text string `json:"text"`
}

func (Heading) Kind() string   { return "heading" }
func (Paragraph) Kind() string { return "paragraph" }
func (List) Kind() string      { return "list" }

func (Heading) block()   {}
func (Paragraph) block() {}
func (List) block()      {}

// MarshalJSON encodes the heading with its type tag.
func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Depth int    `json:"depth"`
		Text  string `json:"text"`
	}{h.Kind(), h.Depth, h.Text})
}

// MarshalJSON encodes the paragraph with its type tag.
func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{p.Kind(), p.Text})
}

// MarshalJSON encodes the list with its type tag.
func (l List) MarshalJSON() ([]byte, error) {
	items := l.Items
	if items == nil {
		items = []ListItem{}
	}
	return json.Marshal(struct {
		Type    string     `json:"type"`
		Ordered bool       `json:"ordered"`
		Items   []ListItem `json:"items"`
	}{l.Kind(), l.Ordered, items})
}

// Slide is one unit of output: a section of the source document and its
// tokens. Index is 1-based.
type Slide struct {
	Index    int     `json:"index"`
	Markdown string  `json:"markdown"`
	Blocks   []Block `json:"tokens"`
}
