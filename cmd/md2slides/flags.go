package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// themeFlags selects how slides look.
type themeFlags struct {
	name   string
	strict bool
	brand  string
	assets string   // custom asset directory
	fonts  []string // families assumed installed
}

// outputFlags holds extra output modes.
type outputFlags struct {
	html     bool   // slide_NN.html alongside each SVG
	htmlOnly bool   // HTML only, no browser
	scene    string // "", design or slides
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	concurrency int
	timeout     string
	css         string
	theme       themeFlags
	outputMode  outputFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	output string
	port   int
	theme  themeFlags
}

// themesFlags holds flags for the themes command.
type themesFlags struct {
	common commonFlags
	assets string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timings")
	fs.BoolVar(&f.logJSON, "log-json", false, "write logs as JSON lines")
}

// addThemeFlags adds theme and branding flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.name, "theme", "", "theme id (see 'md2slides themes')")
	fs.BoolVar(&f.strict, "strict-theme", false, "fail on unknown theme instead of using the default")
	fs.StringVar(&f.brand, "brand", "", "brand mark text")
	fs.StringVar(&f.assets, "assets", "", "custom asset directory")
	fs.StringSliceVar(&f.fonts, "font", nil, "font family known to be installed (repeatable, skips probing)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write slide HTML alongside SVG")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write slide HTML only, no browser")
	fs.StringVar(&f.scene, "scene", "", "write slides.json for the design plugin: design, slides")
}

// newConvertFlagSet registers convert flags into f.
// Shared by parsing and completion so both see the same flags.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "decks converted in parallel (0 = auto)")
	fs.IntVar(&f.concurrency, "concurrency", 0, "pages captured at once per deck (0 = default)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-slide capture timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.css, "css", "", "extra CSS file or inline rules")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addOutputFlags(fs, &f.outputMode)
	return fs
}

// newServeFlagSet registers serve flags into f.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "directory holding the generated slides")
	fs.IntVarP(&f.port, "port", "p", 0, "listen port (0 = 9876)")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	return fs
}

// newThemesFlagSet registers themes flags into f.
func newThemesFlagSet(f *themesFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	fs.StringVar(&f.assets, "assets", "", "custom asset directory")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	if err := parseFlagSet(fs, args, env, printConvertUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, env *Environment) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f)
	if err := parseFlagSet(fs, args, env, printServeUsage); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string, env *Environment) (*themesFlags, error) {
	f := &themesFlags{}
	fs := newThemesFlagSet(f)
	if err := parseFlagSet(fs, args, env, printThemesUsage); err != nil {
		return nil, err
	}
	return f, nil
}

// parseFlagSet parses args. Help goes to stdout and returns flag.ErrHelp;
// other parse errors print usage to stderr and wrap errUsage.
func parseFlagSet(fs *flag.FlagSet, args []string, env *Environment, printUsage func(io.Writer)) error {
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	err := fs.Parse(args)
	if err == nil {
		return nil
	}
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return err
	}
	printUsage(env.Stderr)
	return fmt.Errorf("%w: %v", errUsage, err)
}
