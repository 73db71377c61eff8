package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/sawhil/sitecfg/internal/diff"
	"github.com/sawhil/sitecfg/internal/loader"
	"github.com/sawhil/sitecfg/internal/output"
	"github.com/sawhil/sitecfg/internal/site"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(g *GlobalConfig) *cobra.Command {
	var overlay bool

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Compare two site configurations",
		Long: `Compare two site configurations.

Reports slugs and integrations present in only one of the files, followed
by a field-level report of everything else that differs. Neither file is
treated as authoritative.

With --overlay, <to> is applied on top of <from> first: fields it sets
replace those of <from>, and its lists replace <from>'s lists wholesale.

Examples:
  # Compare two variants
  sitecfg diff site.yaml variants/react.yaml

  # Preview what an overlay changes
  sitecfg diff --overlay site.yaml overlays/preview.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1], overlay)
		},
	}

	cmd.Flags().BoolVar(&overlay, "overlay", false, "Treat <to> as an overlay merged onto <from>")

	return cmd
}

func runDiff(cmd *cobra.Command, fromPath, toPath string, overlay bool) error {
	from, err := loadSite(fromPath)
	if err != nil {
		return err
	}

	var to *site.Config
	if overlay {
		to, err = loadVariant(fromPath, toPath)
	} else {
		to, err = loadSite(toPath)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := diff.Compare(from, to, diff.Options{
		FromName: fromPath,
		ToName:   toPath,
		UseColor: output.IsTTY(out),
	})
	if err != nil {
		return NewExitError(err, ExitGeneralError)
	}

	output.Debug("site configs compared", "from", fromPath, "to", toPath, "summary", result.Summary())

	sections := []output.DiffSection{
		{Title: "Sidebar entries", Added: result.SlugsAdded, Removed: result.SlugsRemoved},
		{Title: "Integrations", Added: result.IntegrationsAdded, Removed: result.IntegrationsRemoved},
	}
	_, err = io.WriteString(out, output.RenderDiff(sections, result.Report, output.StylesFor(out)))
	return err
}

func loadVariant(basePath, overlayPath string) (*site.Config, error) {
	l, err := loader.New()
	if err != nil {
		return nil, NewExitError(err, ExitGeneralError)
	}

	cfg, err := l.LoadVariant(basePath, overlayPath)
	if err != nil {
		var srcErr *loader.SourceError
		if errors.As(err, &srcErr) {
			return nil, siteError(srcErr.Err, srcErr.Path)
		}
		return nil, siteError(err, overlayPath)
	}

	return cfg, nil
}
