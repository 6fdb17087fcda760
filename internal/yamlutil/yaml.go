// Package yamlutil decodes the YAML files md2slides reads: the CLI config
// and custom themes. Both are decoded strictly so a misspelled key fails
// loudly instead of being ignored.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds a YAML document. Config and theme files are a few
// hundred bytes, so anything near 1MB is a mistake.
var MaxInputSize = 1 << 20

var (
	ErrEmpty        = errors.New("yamlutil: empty document")
	ErrNilTarget    = errors.New("yamlutil: nil destination")
	ErrTooLarge     = errors.New("yamlutil: document too large")
	ErrDecodeFailed = errors.New("yamlutil: decode failed")
)

// UnmarshalStrict decodes data into v and rejects unknown keys.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrEmpty
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return nil
}

// ReadFileStrict reads path and decodes it with UnmarshalStrict. Read
// errors come back as the *fs.PathError from os.ReadFile.
func ReadFileStrict(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}
