package output

import (
	"strconv"
	"strings"
)

// DiffSection is one named block of a diff rendering (e.g. "Sidebar
// entries"), listing added and removed identifiers.
type DiffSection struct {
	Title   string
	Added   []string
	Removed []string
}

// RenderDiff renders set changes followed by a field-level report.
func RenderDiff(sections []DiffSection, report string, styles *Styles) string {
	added, removed := 0, 0
	for _, s := range sections {
		added += len(s.Added)
		removed += len(s.Removed)
	}

	if added == 0 && removed == 0 && report == "" {
		return "No differences detected.\n"
	}

	var sb strings.Builder

	for _, s := range sections {
		if len(s.Added) == 0 && len(s.Removed) == 0 {
			continue
		}
		sb.WriteString(styles.Bold.Render(s.Title + ":"))
		sb.WriteString("\n")
		for _, name := range s.Added {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(name))
			sb.WriteString("\n")
		}
		for _, name := range s.Removed {
			sb.WriteString("  - ")
			sb.WriteString(styles.Error.Render(name))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if report != "" {
		sb.WriteString(styles.Warning.Render("Changes:"))
		sb.WriteString("\n")
		sb.WriteString(IndentDiff(report, "  "))
		sb.WriteString("\n")
	}

	sb.WriteString("Summary: ")
	sb.WriteString(diffSummary(added, removed, report != ""))
	sb.WriteString("\n")

	return sb.String()
}

// IndentDiff indents every non-empty line of diff.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// diffSummary returns a summary string of changes.
func diffSummary(added, removed int, modified bool) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, strconv.Itoa(added)+" added")
	}
	if removed > 0 {
		parts = append(parts, strconv.Itoa(removed)+" removed")
	}
	if modified {
		parts = append(parts, "fields modified")
	}
	if len(parts) == 0 {
		return "No changes"
	}

	return strings.Join(parts, ", ")
}
