// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// SandboxDisabled mirrors the launcher: Chrome runs without sandbox when
// CI=true or a custom browser binary is set.
func SandboxDisabled() bool {
	return os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != ""
}

// ForBrowserConnect returns hints for browser connection errors.
// Containers and CI runners usually need the sandbox off.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && !SandboxDisabled() {
		hints = append(hints, "set CI=true to run Chrome without sandbox in Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow slides.
func ForTimeout() string {
	return format("for slides with many images or web fonts, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-md2slides") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the registered themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available themes: " + strings.Join(available, ", ") + " (run 'md2slides themes')")
}

// ForAssetPath returns hints for an unusable --assets directory.
func ForAssetPath() string {
	return format("--assets must be a readable directory holding styles/, templates/ or themes/")
}

// ForNoSlides explains what makes a slide.
func ForNoSlides() string {
	return format("slides are separated by '---' lines; a document with only blank sections has none")
}

// ForMissingFonts names families the renderer fell back from.
func ForMissingFonts(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return format("install " + strings.Join(missing, ", ") + " or pass --font for the families you have")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
