package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawhil/sitecfg/internal/loader"
	"github.com/sawhil/sitecfg/internal/output"
	"github.com/sawhil/sitecfg/internal/site"
)

// NewVetCmd creates the vet command.
func NewVetCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [file]",
		Short: "Validate a site configuration",
		Long: `Validate a site configuration file.

Checks performed:
  1. The file is YAML, JSON or CUE and matches the site schema
  2. Title and canonical URL are set; the URL is absolute http(s)
  3. The base path is empty or "/segment" without a trailing slash
  4. Every integration is one of: starlight, react, tailwind
  5. Every group has entries and every slug is "section/page"
  6. No slug appears twice among enabled entries

The file defaults to --site, SITECFG_SITE, the config file, then site.yaml.

Examples:
  # Validate ./site.yaml
  sitecfg vet

  # Validate a variant
  sitecfg vet variants/react.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVet(cmd, g, args)
		},
	}
}

func runVet(cmd *cobra.Command, g *GlobalConfig, args []string) error {
	path := g.SitePath(args)

	cfg, err := loadSite(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Site config is valid: "+output.StyleNoun.Render(path)))
	fmt.Fprintf(out, "  %d groups, %d entries, %d integrations\n",
		len(cfg.Sidebar), cfg.EntryCount(), len(cfg.Integrations))
	if cfg.Disabled > 0 {
		fmt.Fprintln(out, "  "+output.StatusStyle(output.StatusDisabled).Render(
			fmt.Sprintf("%d entries disabled", cfg.Disabled)))
	}

	return nil
}

// loadSite loads and validates the site file at path, converting failures
// into exit errors.
func loadSite(path string) (*site.Config, error) {
	l, err := loader.New()
	if err != nil {
		return nil, NewExitError(err, ExitGeneralError)
	}

	cfg, err := l.LoadFile(path)
	if err != nil {
		return nil, siteError(err, path)
	}

	return cfg, nil
}
