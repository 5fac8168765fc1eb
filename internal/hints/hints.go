// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2png/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for browser launch or connection errors.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'md2png doctor' to check the setup")

	return formatHints(hints)
}

// ForPageLoad returns a hint about slow or stalled page loads.
func ForPageLoad() string {
	return format("raise the navigation limit with --timeout (0 disables it)")
}

// ForConverterNotFound returns hints when the pandoc binary is missing.
func ForConverterNotFound(binary string) string {
	if binary == "" {
		binary = "pandoc"
	}
	return format("install " + binary + " (https://pandoc.org/installing.html) or use --engine goldmark")
}

// ForSourceNotFound returns hints when the Markdown input is missing.
func ForSourceNotFound(path string) string {
	return format("create " + path + " in the current directory or pass --input")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "go-md2png/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputPath returns hints for artifact write errors.
func ForOutputPath() string {
	return format("check the output directory exists and is writable")
}

func filepathSlash(p string) string {
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
