package site

import (
	"fmt"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
)

// ErrorKind classifies a configuration validation failure.
type ErrorKind string

const (
	// KindMissingField reports a required field that is absent or empty.
	KindMissingField ErrorKind = "MissingField"

	// KindInvalidCanonicalURL reports a canonical URL that is not absolute.
	KindInvalidCanonicalURL ErrorKind = "InvalidCanonicalURL"

	// KindInvalidBasePath reports a base path that is not "" or "/seg[/seg...]".
	KindInvalidBasePath ErrorKind = "InvalidBasePath"

	// KindUnknownIntegration reports an integration outside the allow-list.
	KindUnknownIntegration ErrorKind = "UnknownIntegration"

	// KindEmptyGroup reports a sidebar group with no (active) entries.
	KindEmptyGroup ErrorKind = "EmptyGroup"

	// KindInvalidSlugFormat reports a slug not shaped "section/page".
	KindInvalidSlugFormat ErrorKind = "InvalidSlugFormat"

	// KindDuplicateSlug reports a slug referenced by two active entries.
	KindDuplicateSlug ErrorKind = "DuplicateSlug"

	// KindSchemaViolation reports a document that does not fit the structural
	// schema (wrong types, unknown fields). Raised by the file loader.
	KindSchemaViolation ErrorKind = "SchemaViolation"
)

// ConfigError is the single structured error returned when a site
// configuration fails validation.
type ConfigError struct {
	// Kind is the failure category.
	Kind ErrorKind

	// Field is the path of the offending field, e.g. "sidebar[1].entries[0].slug".
	Field string

	// Detail is a human-readable description.
	Detail string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Field, e.Detail)
}

// Is reports whether target is a *ConfigError of the same kind. A target
// with an empty Kind matches any ConfigError.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError) //nolint:errorlint // Is is called per chain link
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// Unwrap lets callers match every ConfigError against errors.ErrValidation.
func (e *ConfigError) Unwrap() error {
	return oerrors.ErrValidation
}

// Hint returns actionable guidance for the error kind.
func (e *ConfigError) Hint() string {
	switch e.Kind {
	case KindMissingField:
		return "Set a non-empty value for this field"
	case KindInvalidCanonicalURL:
		return "Use an absolute URL such as https://example.github.io"
	case KindInvalidBasePath:
		return `Use "" or a path like "/docs" with a leading and no trailing slash`
	case KindUnknownIntegration:
		return "Supported integrations: " + joinKinds(SupportedIntegrations())
	case KindEmptyGroup:
		return "Add at least one enabled entry or disable the group"
	case KindInvalidSlugFormat:
		return `Slugs look like "section/page" (lowercase letters, digits, hyphens)`
	case KindDuplicateSlug:
		return "Each page may appear only once in the sidebar; disable one of the entries"
	case KindSchemaViolation:
		return "Check field names and value types against the site schema"
	default:
		return ""
	}
}

// Sentinel values for errors.Is matching by kind.
var (
	ErrMissingField        = &ConfigError{Kind: KindMissingField}
	ErrInvalidCanonicalURL = &ConfigError{Kind: KindInvalidCanonicalURL}
	ErrInvalidBasePath     = &ConfigError{Kind: KindInvalidBasePath}
	ErrUnknownIntegration  = &ConfigError{Kind: KindUnknownIntegration}
	ErrEmptyGroup          = &ConfigError{Kind: KindEmptyGroup}
	ErrInvalidSlugFormat   = &ConfigError{Kind: KindInvalidSlugFormat}
	ErrDuplicateSlug       = &ConfigError{Kind: KindDuplicateSlug}
	ErrSchemaViolation     = &ConfigError{Kind: KindSchemaViolation}
)

func newError(kind ErrorKind, field fmt.Stringer, format string, args ...any) *ConfigError {
	return &ConfigError{
		Kind:   kind,
		Field:  field.String(),
		Detail: fmt.Sprintf(format, args...),
	}
}
