// Package assets provides the stylesheet and HTML templates slides are
// rendered with, plus the page served to the design-tool importer.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter and the server. It tries
// the custom FilesystemLoader first and falls back to EmbeddedLoader when the
// asset is not found, so a custom directory may override a single file.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # stylesheets (slide.css is the base style)
//	├── templates/
//	│   └── {name}.html      # slide.html, importer.html
//	└── themes/
//	    └── {id}.yaml        # custom themes, see package theme
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
