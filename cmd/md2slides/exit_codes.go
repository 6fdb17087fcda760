package main

import (
	"errors"
	"os"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/theme"
)

// Exit codes for the md2slides CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every deck converted
	ExitGeneral = 1 // General/unexpected error, including failed slides
	ExitUsage   = 2 // Invalid flags, config, theme or input
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2slides.ErrBrowserConnect) ||
		errors.Is(err, md2slides.ErrPageCreate) ||
		errors.Is(err, md2slides.ErrPageLoad) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2slides.ErrEmptyMarkdown) ||
		errors.Is(err, md2slides.ErrNoSlides) ||
		errors.Is(err, md2slides.ErrThemeNotFound) ||
		errors.Is(err, md2slides.ErrInvalidAssetPath) ||
		errors.Is(err, md2slides.ErrInvalidSceneMode) ||
		errors.Is(err, md2slides.ErrInvalidConcurrency) ||
		errors.Is(err, theme.ErrInvalidTheme) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, errUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
