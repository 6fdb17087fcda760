package assets

import "errors"

// Lookup errors. Only the two not-found errors let AssetResolver fall back
// to the embedded copy.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// Errors for unusable names and directories.
var (
	ErrInvalidAssetName = errors.New("invalid asset name")      // not [A-Za-z0-9_-]
	ErrInvalidBasePath  = errors.New("invalid base path")       // not a readable directory
	ErrPathTraversal    = errors.New("path traversal detected") // resolves outside the base path
	ErrAssetRead        = errors.New("failed to read asset")
)
