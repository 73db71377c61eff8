package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
	"github.com/sawhil/sitecfg/internal/output"
	"github.com/sawhil/sitecfg/internal/site"
)

// NewShowCmd creates the show command.
func NewShowCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Render a validated site configuration",
		Long: `Render a validated site configuration.

Output formats (-o):
  tree    Sidebar navigation as a tree (default)
  table   Integrations and sidebar entries as tables
  yaml    Validated config as YAML
  json    Validated config as JSON

Examples:
  sitecfg show
  sitecfg show site.cue -o table
  sitecfg show -o json | jq '.sidebar[].label'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, g, args)
		},
	}
}

func runShow(cmd *cobra.Command, g *GlobalConfig, args []string) error {
	format, ok := output.ParseOutputFormat(g.OutputFormat())
	if !ok {
		return NewExitError(oerrors.Wrap(oerrors.ErrUnsupportedFormat,
			fmt.Sprintf("output format %q (valid: %s)", format, strings.Join(output.ValidFormats(), ", "))),
			ExitGeneralError)
	}

	cfg, err := loadSite(g.SitePath(args))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case output.FormatYAML:
		return output.WriteYAML(out, cfg)
	case output.FormatJSON:
		return output.WriteJSON(out, cfg)
	case output.FormatTable:
		return writeTables(out, cfg)
	default:
		_, err := io.WriteString(out, output.RenderTree(sidebarTree(cfg), output.StylesFor(out)))
		return err
	}
}

// sidebarTree builds a tree with the site at the root, groups below it and
// entries (label and slug) as leaves.
func sidebarTree(cfg *site.Config) *output.TreeNode {
	root := &output.TreeNode{
		Name:        cfg.Site.Title,
		Description: cfg.Site.CanonicalURL + cfg.Site.BasePath,
	}
	for _, group := range cfg.Sidebar {
		node := root.Add(group.Label, "")
		for _, entry := range group.Entries {
			node.Add(entry.Label, entry.Slug)
		}
	}
	return root
}

func writeTables(w io.Writer, cfg *site.Config) error {
	integrations := output.NewTable("INTEGRATION", "OPTIONS")
	for _, i := range cfg.Integrations {
		integrations.Row(i.Kind.String(), optionKeys(i.Options))
	}

	entries := output.NewTable("GROUP", "LABEL", "SLUG")
	for _, group := range cfg.Sidebar {
		for _, entry := range group.Entries {
			entries.Row(group.Label, entry.Label, entry.Slug)
		}
	}

	var sb strings.Builder
	sb.WriteString(output.StyleSummary.Render(cfg.Site.Title))
	sb.WriteString(" ")
	sb.WriteString(cfg.Site.CanonicalURL + cfg.Site.BasePath)
	sb.WriteString("\n\n")
	if integrations.Len() > 0 {
		sb.WriteString(integrations.String())
		sb.WriteString("\n\n")
	}
	sb.WriteString(entries.String())
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// optionKeys lists the top-level option names, sorted, or "-" when empty.
func optionKeys(opts map[string]any) string {
	if len(opts) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
