package assets

// Names of the built-in assets.
const (
	// DefaultStyleName is the base stylesheet every slide document includes.
	DefaultStyleName = "slide"

	// SlideTemplateName is the html/template rendering one slide.
	SlideTemplateName = "slide"

	// ImporterTemplateName is the static page served at the server root.
	ImporterTemplateName = "importer"

	// themesDirName is the subdirectory of a custom base path holding themes.
	themesDirName = "themes"
)
