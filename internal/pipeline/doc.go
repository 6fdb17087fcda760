// Package pipeline turns a Markdown document into slides.
//
// The pipeline has three stages:
//   - Preprocessing (line ending normalization, BOM removal)
//   - Splitting the document into slides on "---" separator lines
//   - Lexing each slide into a flat sequence of block tokens via goldmark
//
// Only headings, paragraphs and lists are modeled. Code blocks, blockquotes
// and raw HTML blocks are passed through as plain paragraphs holding their
// raw text; thematic breaks are dropped. Inline markup is left untouched in
// token text and resolved later by package richtext.
//
// Everything here is pure and safe for concurrent use. Layout and rendering
// live in packages layout and render.
package pipeline
