package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is a CommonMark parser without extensions. Parsers built by
// goldmark.New are safe for concurrent use.
var markdown = goldmark.New()

// Lex maps the block-level constructs of section to tokens, in order.
// It never fails: unsupported constructs degrade to paragraphs or are
// dropped, as described in the package documentation.
func Lex(section string) []Block {
	src := []byte(section)
	doc := markdown.Parser().Parse(text.NewReader(src))

	blocks := []Block{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = appendBlock(blocks, n, src)
	}
	return blocks
}

func appendBlock(blocks []Block, n ast.Node, src []byte) []Block {
	switch node := n.(type) {
	case *ast.Heading:
		return append(blocks, Heading{Depth: node.Level, Text: lineText(node, src)})

	case *ast.List:
		return append(blocks, List{
			Ordered: node.IsOrdered(),
			Items:   collectItems(node, src, []ListItem{}),
		})

	case *ast.Blockquote:
		// Quoted content is lexed as if it were unquoted.
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = appendBlock(blocks, c, src)
		}
		return blocks

	case *ast.ThematicBreak:
		return blocks

	default:
		if t := blockText(n, src); t != "" {
			return append(blocks, Paragraph{Text: t})
		}
		return blocks
	}
}

// collectItems flattens list, including nested lists, into items.
// An item's text is the text of its non-list children joined by newlines;
// items of a nested list follow their parent item.
func collectItems(list *ast.List, src []byte, items []ListItem) []ListItem {
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var (
			parts  []string
			nested []*ast.List
		)
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			if t := blockText(c, src); t != "" {
				parts = append(parts, t)
			}
		}
		items = append(items, ListItem{Text: strings.Join(parts, "\n")})
		for _, sub := range nested {
			items = collectItems(sub, src, items)
		}
	}
	return items
}

// blockText returns the raw source text of a block, inline markup intact.
func blockText(n ast.Node, src []byte) string {
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return rawText(n, src)
	}

	if n.Lines().Len() > 0 {
		return lineText(n, src)
	}

	// Container blocks without lines of their own.
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() != ast.TypeBlock {
			continue
		}
		if t := blockText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// lineText joins the source lines of a paragraph-like block with "\n".
func lineText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRight(string(seg.Value(src)), " \t\n"))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// rawText concatenates the source lines of a literal block verbatim.
func rawText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
