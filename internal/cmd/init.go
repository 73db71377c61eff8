package cmd

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"github.com/spf13/cobra"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
	"github.com/sawhil/sitecfg/internal/loader"
	"github.com/sawhil/sitecfg/internal/output"
)

//go:embed starter.yaml
var starterYAML []byte

// NewInitCmd creates the init command.
func NewInitCmd(g *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter site configuration",
		Long: `Create a starter site configuration.

The file format follows the extension: .yaml/.yml, .json or .cue.
The starter describes a documentation site with four sidebar groups and
the starlight theme.

Examples:
  sitecfg init
  sitecfg init site.cue
  sitecfg init site.yaml --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, g.SitePath(args), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runInit(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return NewExitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "site configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite it.",
			Cause:    oerrors.ErrValidation,
		}, ExitValidationError)
	}

	data, err := renderStarter(path)
	if err != nil {
		return NewExitError(err, ExitCodeFromError(err))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewExitError(fmt.Errorf("writing %s: %w", path, err), ExitGeneralError)
	}

	// The starter must pass its own checks.
	cfg, err := loadSite(path)
	if err != nil {
		return err
	}

	output.Debug("starter written", "path", path, "groups", len(cfg.Sidebar), "entries", cfg.EntryCount())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Created "+output.StyleNoun.Render(path)))
	fmt.Fprintln(out, "Validate with: sitecfg vet "+path)

	return nil
}

// renderStarter encodes the starter site in the format implied by path.
func renderStarter(path string) ([]byte, error) {
	f, err := loader.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if f == loader.FormatYAML {
		return starterYAML, nil
	}

	l, err := loader.New()
	if err != nil {
		return nil, err
	}
	raw, err := l.Decode(starterYAML, loader.FormatYAML, "starter.yaml")
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding starter: %w", err)
	}
	if f == loader.FormatJSON {
		return append(data, '\n'), nil
	}

	// JSON is valid CUE; reformat it as an idiomatic CUE file.
	v := cuecontext.New().CompileBytes(data)
	if v.Err() != nil {
		return nil, fmt.Errorf("compiling starter: %w", v.Err())
	}
	node := v.Syntax()
	if s, ok := node.(*ast.StructLit); ok {
		node = &ast.File{Decls: s.Elts}
	}
	return format.Node(node)
}
