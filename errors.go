package pdftools

import (
	"errors"
	"fmt"

	"github.com/alnah/pdftools-mcp/internal/pathguard"
)

// Sentinel errors for dispatch operations.
var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrMissingArgument = errors.New("missing required argument")
	ErrInvalidArgument = errors.New("invalid argument")

	// Output confinement. Alias of the guard's error so callers can match
	// without importing an internal package.
	ErrPathNotAllowed = pathguard.ErrPathNotAllowed

	// HTML renderer errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Document writer errors.
	ErrDocumentWrite = errors.New("failed to write PDF document")

	// Filesystem errors.
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrWriteOutput     = errors.New("failed to write output file")
)

// Argument validation errors. Each wraps ErrInvalidArgument.
var (
	ErrInvalidPageFormat = fmt.Errorf("%w: page format", ErrInvalidArgument)
	ErrInvalidMargin     = fmt.Errorf("%w: margin", ErrInvalidArgument)
	ErrUnsupportedFont   = fmt.Errorf("%w: font", ErrInvalidArgument)
)
