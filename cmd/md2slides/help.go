package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown decks to 1920x1080 SVG slides (default)")
	fmt.Fprintln(w, "  serve       Serve a deck to the design plugin")
	fmt.Fprintln(w, "  themes      List available themes")
	fmt.Fprintln(w, "  doctor      Check Chrome and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2slides help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split markdown on '---' lines and render each slide to slide_NN.svg.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: <deck>/ next to input)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Decks converted in parallel (0 = auto)")
	fmt.Fprintln(w, "      --concurrency <n>     Pages captured at once per deck")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-slide capture timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Look:")
	fmt.Fprintln(w, "      --theme <id>          Theme id (default clean-white)")
	fmt.Fprintln(w, "      --strict-theme        Fail on unknown theme")
	fmt.Fprintln(w, "      --brand <s>           Brand mark text (default DAKER.ai)")
	fmt.Fprintln(w, "      --css <file|rules>    Extra CSS appended to every slide")
	fmt.Fprintln(w, "      --assets <dir>        Custom styles/, templates/ and themes/")
	fmt.Fprintln(w, "      --font <family>       Installed font family, skips probing (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extra output:")
	fmt.Fprintln(w, "      --html                Also write slide_NN.html")
	fmt.Fprintln(w, "      --html-only           Write slide_NN.html only, no browser needed")
	fmt.Fprintln(w, "      --scene <mode>        Write slides.json: design, slides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
	fmt.Fprintln(w, "      --log-json            Write logs as JSON lines")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides serve <deck.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve generated slides, lexed slide data and scene JSON over HTTP.")
	fmt.Fprintln(w, "The markdown file is re-read on every request.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Directory holding slide_NN.svg (default: <deck>/)")
	fmt.Fprintln(w, "  -p, --port <n>            Listen port (default 9876)")
	fmt.Fprintln(w, "      --theme <id>          Theme used for /api/scene")
	fmt.Fprintln(w, "      --brand <s>           Brand mark text")
	fmt.Fprintln(w, "      --assets <dir>        Custom asset directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET /api/slides           Generated SVG names")
	fmt.Fprintln(w, "  GET /api/data[/{n}]       Lexed slides")
	fmt.Fprintln(w, "  GET /api/scene?mode=      Scene JSON (design, slides)")
	fmt.Fprintln(w, "  GET /                     Importer page and static files")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides themes [--assets <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List built-in themes and those found in <assets>/themes/.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2slides doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox settings and the temp directory.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2slides version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2slides help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
