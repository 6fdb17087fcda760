package assets

import (
	"fmt"
	"regexp"
)

// maxAssetNameLength bounds asset names to keep file names sane.
const maxAssetNameLength = 64

// assetNamePattern accepts names like "slide", "dark-deck" or "talk_2024".
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty, too long, or contains
// anything but letters, digits, '-' and '_'. Path separators and dots are
// therefore rejected, which rules out traversal and extension tricks.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxAssetNameLength)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
