// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/pdftools-mcp/internal/fileutil"
)

// IsInContainer reports whether /.dockerenv exists. Replaceable in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are set by the CI providers we recognize.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether getenv shows one of the recognized CI providers.
func InCI(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a Chrome that failed to launch or
// answer. The sandbox hint only shows inside containers and CI, where the
// sandbox is the usual culprit.
func ForBrowserConnect() string {
	var hints []string

	if (InCI(os.Getenv) || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "serve with --no-sandbox or ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "point --browser-bin or ROD_BROWSER_BIN at an installed Chrome")
	}
	hints = append(hints, "run 'pdftools-mcp doctor' to check the setup")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the per-user directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	sep := string(os.PathSeparator)
	for _, p := range searchedPaths {
		if strings.Contains(p, sep+"pdftools-mcp"+sep) {
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

// ForPathNotAllowed returns hints listing where output may be written.
func ForPathNotAllowed(roots []string) string {
	if len(roots) == 0 {
		return ""
	}
	return format("write under one of: " + strings.Join(roots, ", "))
}

// ForUnsupportedFont returns hints for text-branch font errors.
func ForUnsupportedFont() string {
	return format("use a standard PDF font such as Helvetica, Times-Roman or Courier, or a path to a .ttf file")
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
