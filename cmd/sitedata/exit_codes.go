package main

import (
	"errors"
	"os"

	sitedata "github.com/alnah/go-sitedata"
	"github.com/alnah/go-sitedata/internal/config"
	"github.com/alnah/go-sitedata/internal/dateutil"
	"github.com/alnah/go-sitedata/internal/pipeline"
)

// Exit codes for the sitedata CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All requested files generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input content
	ExitIO      = 3 // Missing directory, permission denied, unwritable output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, sitedata.ErrInvalidNotice) ||
		errors.Is(err, pipeline.ErrFrontMatter) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, sitedata.ErrDataDir) ||
		errors.Is(err, sitedata.ErrWriteOutput) ||
		errors.Is(err, sitedata.ErrSlidesDirNotFound) {
		return ExitIO
	}

	return ExitGeneral
}
