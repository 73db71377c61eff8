// Package diff compares two validated site configurations.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"

	"github.com/sawhil/sitecfg/internal/site"
)

// Result is the difference between two site configurations.
type Result struct {
	// SlugsAdded are slugs present only in the second config, sorted.
	SlugsAdded []string

	// SlugsRemoved are slugs present only in the first config, sorted.
	SlugsRemoved []string

	// IntegrationsAdded are integration kinds present only in the second config.
	IntegrationsAdded []string

	// IntegrationsRemoved are integration kinds present only in the first config.
	IntegrationsRemoved []string

	// Report is the rendered field-level report. Empty when the documents are
	// equal.
	Report string
}

// IsEmpty returns true if there are no changes.
func (r *Result) IsEmpty() bool {
	return len(r.SlugsAdded) == 0 && len(r.SlugsRemoved) == 0 &&
		len(r.IntegrationsAdded) == 0 && len(r.IntegrationsRemoved) == 0 &&
		r.Report == ""
}

// Summary returns a summary string of changes.
func (r *Result) Summary() string {
	if r.IsEmpty() {
		return "No changes"
	}

	parts := make([]string, 0, 3)
	if n := len(r.SlugsAdded) + len(r.IntegrationsAdded); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(r.SlugsRemoved) + len(r.IntegrationsRemoved); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if r.Report != "" {
		parts = append(parts, "fields modified")
	}

	return strings.Join(parts, ", ")
}

// Options configures the comparison.
type Options struct {
	// FromName and ToName label the two documents in the report.
	FromName string
	ToName   string

	// UseColor enables colorized report output.
	UseColor bool
}

// Compare computes the difference between from and to. Neither side is
// treated as authoritative; "added" only means present in to and not in from.
func Compare(from, to *site.Config, opts Options) (*Result, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("comparing site configs: both sides are required")
	}

	fromSlugs := sets.New(from.Slugs()...)
	toSlugs := sets.New(to.Slugs()...)
	fromKinds := integrationKinds(from)
	toKinds := integrationKinds(to)

	result := &Result{
		SlugsAdded:          sets.List(toSlugs.Difference(fromSlugs)),
		SlugsRemoved:        sets.List(fromSlugs.Difference(toSlugs)),
		IntegrationsAdded:   sets.List(toKinds.Difference(fromKinds)),
		IntegrationsRemoved: sets.List(fromKinds.Difference(toKinds)),
	}

	fromYAML, err := yaml.Marshal(from)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", nameOr(opts.FromName, "from"), err)
	}
	toYAML, err := yaml.Marshal(to)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", nameOr(opts.ToName, "to"), err)
	}

	report, err := diffYAML(fromYAML, toYAML, opts)
	if err != nil {
		return nil, err
	}
	result.Report = report

	return result, nil
}

func integrationKinds(cfg *site.Config) sets.Set[string] {
	kinds := sets.New[string]()
	for _, i := range cfg.Integrations {
		kinds.Insert(i.Kind.String())
	}
	return kinds
}

// diffYAML computes a YAML-aware diff using dyff. Returns "" when the
// documents are equal.
func diffYAML(from, to []byte, opts Options) (string, error) {
	fromInput, err := parseYAMLInput(nameOr(opts.FromName, "from"), from)
	if err != nil {
		return "", fmt.Errorf("parsing from YAML: %w", err)
	}

	toInput, err := parseYAMLInput(nameOr(opts.ToName, "to"), to)
	if err != nil {
		return "", fmt.Errorf("parsing to YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderReport(report, opts.UseColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderReport renders a dyff report to a string with trailing whitespace
// stripped from every line.
func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
