package config

import (
	"fmt"
	"strings"

	"github.com/sawhil/sitecfg/internal/loader"
	"github.com/sawhil/sitecfg/internal/output"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks every set field of cfg and returns all problems found.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Site != "" {
		if strings.TrimSpace(cfg.Site) == "" {
			errs = append(errs, ValidationError{
				Field:   "site",
				Message: "must not be empty or whitespace only",
			})
		} else if _, err := loader.DetectFormat(cfg.Site); err != nil {
			errs = append(errs, ValidationError{
				Field:   "site",
				Message: "must end in .yaml, .yml, .json or .cue",
			})
		}
	}

	if cfg.Output != "" {
		if _, ok := output.ParseOutputFormat(cfg.Output); !ok {
			errs = append(errs, ValidationError{
				Field:   "output",
				Message: "must be one of " + strings.Join(output.ValidFormats(), ", "),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile loads the config file at path and validates it.
func ValidateFile(path string) error {
	cfg, err := NewLoader().Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return Validate(cfg)
}
