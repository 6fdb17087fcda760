// Package md2slides converts Markdown documents into 1920x1080 presentation
// slides rendered by headless Chrome.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2slides.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2slides.Input{
//	    Markdown: "# Hello\n\n---\n\n## World\n\n- one\n- **two**",
//	    Theme:    "daker-dark",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range result.Slides {
//	    os.WriteFile(s.Name+".svg", s.SVG, 0644)
//	}
//
// Each SlideResult carries the standalone HTML document of the slide and
// the SVG wrapping its screenshot. Use Input.HTMLOnly to skip the browser.
// Slides whose capture failed are listed in ConvertResult.Failures; the
// rest of the deck is still produced.
//
// # Conversion Pipeline
//
//  1. Splitting on "---" lines and lexing each slide into headings,
//     paragraphs and lists (goldmark)
//  2. Layout of each slide into positioned boxes from the theme
//  3. HTML rendering of the boxes (html/template)
//  4. Screenshot via headless Chrome (go-rod), wrapped in SVG
//
// Input.Scene additionally emits the deck as the node description consumed
// by the design-tool plugin.
//
// # Configuration
//
//	conv, err := md2slides.NewConverter(
//	    md2slides.WithTimeout(time.Minute),
//	    md2slides.WithConcurrency(2),
//	    md2slides.WithBrand("ACME"),
//	    md2slides.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Parallel Processing
//
// Captures inside one Convert already run in parallel. For several decks
// at once, use ConverterPool to manage multiple browser instances:
//
//	pool := md2slides.NewConverterPool(md2slides.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Assets
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── slide.css
//	├── templates/
//	│   ├── slide.html
//	│   └── importer.html
//	└── themes/
//	    └── ocean.yaml
//
// Missing files fall back to the embedded assets. Theme files may extend a
// built-in theme:
//
//	id: ocean
//	extends: daker-dark
//	colors:
//	  accent1: "#00b4d8"
//
// # Browser Requirements
//
// Capture requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set CI=true to disable the Chrome
// sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2slides
