package main

// Notes:
// - exitCodeFor: we test the sentinel errors from the md2png and config
//   packages, plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2png "github.com/alnah/go-md2png"
	"github.com/alnah/go-md2png/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", md2png.ErrBrowserConnect, ExitBrowser},
		{"page create", md2png.ErrPageCreate, ExitBrowser},
		{"page load", md2png.ErrPageLoad, ExitBrowser},
		{"screenshot", md2png.ErrScreenshot, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("capturing PNG: %w", md2png.ErrBrowserConnect), ExitBrowser},

		// Converter errors (exit 5)
		{"conversion failed", md2png.ErrConversionFailed, ExitConverter},
		{"converter not found", md2png.ErrConverterNotFound, ExitConverter},
		{"wrapped conversion failed", fmt.Errorf("rendering HTML: %w", md2png.ErrConversionFailed), ExitConverter},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"source not found", md2png.ErrSourceNotFound, ExitIO},
		{"write html", md2png.ErrWriteHTML, ExitIO},
		{"write png", md2png.ErrWritePNG, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty path", md2png.ErrEmptyPath, ExitUsage},
		{"unknown engine", md2png.ErrUnknownEngine, ExitUsage},
		{"invalid viewport", md2png.ErrInvalidViewport, ExitUsage},
		{"invalid settle delay", md2png.ErrInvalidSettleDelay, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something went wrong"), ExitGeneral},
		{"internal error", fmt.Errorf("internal error: %v", "panic"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_SourceNotFoundWrapsNotExist(t *testing.T) {
	t.Parallel()

	// Missing source errors wrap os.ErrNotExist as well; both map to I/O.
	err := fmt.Errorf("%w: ARCHITECTURE.md: %w", md2png.ErrSourceNotFound, os.ErrNotExist)
	if got := exitCodeFor(err); got != ExitIO {
		t.Errorf("exitCodeFor() = %d, want %d", got, ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := map[string]int{"ExitIO": ExitIO, "ExitBrowser": ExitBrowser, "ExitConverter": ExitConverter}
	seen := map[int]string{}
	for name, code := range codes {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("%s = %d, want 3..125", name, code)
		}
		if other, ok := seen[code]; ok {
			t.Errorf("%s and %s share code %d", name, other, code)
		}
		seen[code] = name
	}
}
