package main

import (
	"errors"
	"os"

	md2png "github.com/alnah/go-md2png"
	"github.com/alnah/go-md2png/internal/config"
)

// Exit codes for md2png CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful conversion
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // Missing source, write failure, permission denied
	ExitBrowser   = 4 // Browser/Chrome errors
	ExitConverter = 5 // Markdown converter failed or is missing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2png.ErrBrowserConnect) ||
		errors.Is(err, md2png.ErrPageCreate) ||
		errors.Is(err, md2png.ErrPageLoad) ||
		errors.Is(err, md2png.ErrScreenshot) {
		return ExitBrowser
	}

	// Converter errors (exit 5)
	if errors.Is(err, md2png.ErrConversionFailed) ||
		errors.Is(err, md2png.ErrConverterNotFound) {
		return ExitConverter
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2png.ErrEmptyPath) ||
		errors.Is(err, md2png.ErrUnknownEngine) ||
		errors.Is(err, md2png.ErrInvalidViewport) ||
		errors.Is(err, md2png.ErrInvalidSettleDelay) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, md2png.ErrSourceNotFound) ||
		errors.Is(err, md2png.ErrWriteHTML) ||
		errors.Is(err, md2png.ErrWritePNG) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
