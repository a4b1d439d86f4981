package sitedata

import "errors"

// Sentinel errors for library operations.
var (
	ErrDataDir            = errors.New("cannot read data directory")
	ErrWriteOutput        = errors.New("cannot write output")
	ErrInfoSourceNotFound = errors.New("notice source not found")
	ErrInvalidNotice      = errors.New("invalid notice")
	ErrSlidesDirNotFound  = errors.New("slides directory not found")
	ErrUnsupportedImage   = errors.New("unsupported image format")
)
