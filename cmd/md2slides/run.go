package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/hints"
)

// run dispatches args (without the program name) and returns the exit code.
// A first argument that is not a command is treated as convert input.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "themes":
		err = runThemes(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2slides %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		err = runConvert(ctx, args, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		reportError(env, err)
	}
	return exitCodeFor(err)
}

// reportError prints err with an actionable hint. Batch failures were
// already reported deck by deck.
func reportError(env *Environment, err error) {
	var batch *batchError
	if errors.As(err, &batch) {
		fmt.Fprintf(env.Stderr, "md2slides: %v\n", err)
		return
	}
	fmt.Fprintf(env.Stderr, "md2slides: %v%s\n", err, hintFor(err, nil))
}

// hintFor returns the hint matching err, or "".
func hintFor(err error, themes []string) string {
	switch {
	case errors.Is(err, md2slides.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2slides.ErrThemeNotFound):
		var te *themeError
		if themes == nil && errors.As(err, &te) {
			themes = te.available
		}
		return hints.ForThemeNotFound(themes)
	case errors.Is(err, md2slides.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	case errors.Is(err, md2slides.ErrNoSlides):
		return hints.ForNoSlides()
	case errors.Is(err, config.ErrConfigNotFound):
		var ce *configError
		if errors.As(err, &ce) && !fileutil.IsFilePath(ce.name) {
			return hints.ForConfigNotFound(config.SearchPaths(ce.name))
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
