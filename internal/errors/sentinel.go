// Package errors provides sentinel errors and user-facing error details for sitecfg.
package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a site configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a site or tool configuration file was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates a file extension sitecfg cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
