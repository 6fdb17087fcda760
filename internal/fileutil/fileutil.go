// Package fileutil holds the small file helpers shared by the converter and
// the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// tempPrefix marks every temp file md2slides creates.
const tempPrefix = "md2slides-"

// ErrBadExtension is returned for an empty extension or one that could
// escape the temp directory.
var ErrBadExtension = errors.New("invalid temp file extension")

// WriteTemp writes data to a new file in the system temp directory whose
// name ends in "."+ext. The returned cleanup removes it.
func WriteTemp(ext string, data []byte) (path string, cleanup func(), err error) {
	if ext == "" || strings.ContainsAny(ext, "/\\.\x00") {
		return "", nil, fmt.Errorf("%w: %q", ErrBadExtension, ext)
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsFilePath reports whether s contains a path separator, which makes a
// config name like "work" distinct from a path like "./work.yaml".
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsCSS reports whether s is inline rules rather than a stylesheet path.
func IsCSS(s string) bool {
	return strings.Contains(s, "{")
}
