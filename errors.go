package md2slides

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrNoSlides       = errors.New("markdown contains no slides")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrCapture        = errors.New("slide capture failed")
	ErrHTMLRender     = errors.New("slide HTML rendering failed")

	// Configuration errors.
	ErrInvalidConcurrency = errors.New("invalid concurrency")
	ErrInvalidSceneMode   = errors.New("invalid scene mode")
	ErrThemeNotFound      = errors.New("theme not found")
	ErrInvalidAssetPath   = errors.New("invalid asset path")
)

// SlideError reports a failure confined to one slide. The rest of the deck
// may still have been produced.
type SlideError struct {
	Index int // 0-based
	Err   error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("slide %02d: %v", e.Index+1, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}
