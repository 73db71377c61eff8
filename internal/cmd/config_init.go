package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sawhil/sitecfg/internal/config"
	oerrors "github.com/sawhil/sitecfg/internal/errors"
	"github.com/sawhil/sitecfg/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(g *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the sitecfg tool configuration.

Writes the default settings to the resolved config path
(--config > SITECFG_CONFIG > ~/.sitecfg/config.yaml):
  site             Site file used when a command gets no path
  output           Default format for show
  log.timestamps   Timestamps in log output

Examples:
  sitecfg config init
  sitecfg config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, g.ConfigPath(), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		return NewExitError(oerrors.Wrap(oerrors.ErrNotFound, "could not determine config path"), ExitNotFound)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return NewExitError(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}, ExitValidationError)
	}

	var buf bytes.Buffer
	buf.WriteString("# sitecfg tool configuration. Environment variables (SITECFG_*) and\n")
	buf.WriteString("# command-line flags take precedence over these values.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return NewExitError(fmt.Errorf("encoding config: %w", err), ExitGeneralError)
	}
	if err := enc.Close(); err != nil {
		return NewExitError(fmt.Errorf("encoding config: %w", err), ExitGeneralError)
	}

	if err := config.EnsureDir(path); err != nil {
		return NewExitError(fmt.Errorf("creating config directory: %w", err), ExitGeneralError)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return NewExitError(fmt.Errorf("writing %s: %w", path, err), ExitGeneralError)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Configuration initialized at "+output.StyleNoun.Render(path)))
	fmt.Fprintln(out, "Validate with: sitecfg config vet")

	return nil
}
