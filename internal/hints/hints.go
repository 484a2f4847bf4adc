// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2typst/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI environment variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForCompilerNotFound returns hints for a missing typst binary.
func ForCompilerNotFound() string {
	var hints []string

	if inCI() || IsInContainer() {
		hints = append(hints, "install typst in the image (e.g. cargo install typst-cli, or copy the release binary)")
	} else {
		hints = append(hints, "install typst from https://github.com/typst/typst/releases")
	}

	if os.Getenv("TYPST_BIN") == "" {
		hints = append(hints, "set TYPST_BIN to use a binary outside PATH")
	} else {
		hints = append(hints, "TYPST_BIN is set; check that it points to an executable")
	}

	return formatHints(hints)
}

// ForCompileError returns a hint for typst diagnostics.
func ForCompileError() string {
	return format("rerun with --typst to keep the generated .typ source next to the PDF")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), "go-md2typst/") {
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

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidTemplate returns a hint for templates missing the article function.
func ForInvalidTemplate() string {
	return format("a template must define #let article(title: none, authors: (), lang: \"en\", toc: false, body)")
}

// ForMissingCJKFont returns a hint for documents with CJK text and no CJK font.
func ForMissingCJKFont() string {
	return format("run 'md2typst fonts install' or pass --font-path to a directory with a CJK font")
}

// ForMultipleInputs returns a hint for several inputs with a file output.
func ForMultipleInputs() string {
	return format("with several inputs, -o must name a directory (no extension)")
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
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
