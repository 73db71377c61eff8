package cmd

import (
	"errors"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
	"github.com/sawhil/sitecfg/internal/site"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// siteError turns a load failure into an ExitError. Validation failures
// become a DetailError pointing at the offending file and field.
func siteError(err error, path string) error {
	var cfgErr *site.ConfigError
	if !errors.As(err, &cfgErr) {
		return NewExitError(err, ExitCodeFromError(err))
	}

	detail := &oerrors.DetailError{
		Type:     "validation failed",
		Message:  cfgErr.Detail,
		Location: path,
		Field:    cfgErr.Field,
		Context:  map[string]string{"Kind": string(cfgErr.Kind)},
		Hint:     cfgErr.Hint(),
		Cause:    cfgErr,
	}
	return NewExitError(detail, ExitValidationError)
}
