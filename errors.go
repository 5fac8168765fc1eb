package md2png

import (
	"errors"

	"github.com/alnah/go-md2png/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyPath      = errors.New("path cannot be empty")
	ErrSourceNotFound = errors.New("source document not found")
	ErrStyleLoad      = errors.New("failed to load style sheet")
	ErrWriteHTML      = errors.New("failed to write HTML file")

	// Converter errors, shared with the pipeline package so errors.Is works
	// on both.
	ErrConversionFailed  = pipeline.ErrConversionFailed
	ErrConverterNotFound = pipeline.ErrConverterNotFound
	ErrUnknownEngine     = pipeline.ErrUnknownEngine

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("screenshot capture failed")
	ErrWritePNG       = errors.New("failed to write PNG file")

	// Option validation errors.
	ErrInvalidViewport    = errors.New("invalid viewport")
	ErrInvalidSettleDelay = errors.New("invalid settle delay")
)
