package output

import "strings"

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// FormatTree renders the sidebar as a tree.
	FormatTree OutputFormat = "tree"

	// FormatTable renders integrations and sidebar entries as tables.
	FormatTable OutputFormat = "table"

	// FormatYAML outputs the validated config as YAML.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs the validated config as JSON.
	FormatJSON OutputFormat = "json"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatTree, FormatTable, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// The second return value is false for unknown formats.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tree":
		return FormatTree, true
	case "table":
		return FormatTable, true
	case "yaml", "yml":
		return FormatYAML, true
	case "json":
		return FormatJSON, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"tree", "table", "yaml", "json"}
}
