package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. These are the single source of truth; never use inline
// lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: slugs, file paths, site titles.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for additions and the valid status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modifications and disabled entries.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removals.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the invalid status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (slugs, file paths, titles).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators, tree lines).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles bundles the styles used by multi-part renderers so tests can swap
// in plain styles.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Noun    lipgloss.Style
}

// GetStyles returns the default colored styles.
func GetStyles() *Styles {
	return &Styles{
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
		Noun:    StyleNoun,
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Success: plain,
		Warning: plain,
		Error:   plain,
		Bold:    plain,
		Muted:   plain,
		Noun:    plain,
	}
}

// Validation status constants.
const (
	StatusValid    = "valid"
	StatusInvalid  = "invalid"
	StatusDisabled = "disabled"
)

// StatusStyle returns the lipgloss style for a validation status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusValid:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusDisabled:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusInvalid:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
