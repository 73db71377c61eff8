package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sawhil/sitecfg/internal/config"
	oerrors "github.com/sawhil/sitecfg/internal/errors"
	"github.com/sawhil/sitecfg/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(g *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the sitecfg tool configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. site names a .yaml, .yml, .json or .cue file
  4. output is one of tree, table, yaml, json

The config path is resolved using precedence:
  --config flag > SITECFG_CONFIG env > ~/.sitecfg/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigVet(cmd, g.ConfigPath())
		},
	}
}

func runConfigVet(cmd *cobra.Command, path string) error {
	output.Debug("validating config", "path", path)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return NewExitError(fmt.Errorf("checking config file: %w", err), ExitGeneralError)
	}
	if !exists {
		return NewExitError(oerrors.NewNotFoundError(
			"configuration file not found",
			path,
			"Run 'sitecfg config init' to create default configuration",
		), ExitNotFound)
	}

	if err := config.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if !errors.As(err, &verrs) {
			return NewExitError(err, ExitGeneralError)
		}

		fields := make([]string, 0, len(verrs))
		messages := make([]string, 0, len(verrs))
		for _, v := range verrs {
			fields = append(fields, v.Field)
			messages = append(messages, v.Error())
		}
		return NewExitError(oerrors.NewValidationError(
			strings.Join(messages, "\n  "),
			path,
			strings.Join(fields, ", "),
			"Fix the listed fields or regenerate with 'sitecfg config init --force'",
		), ExitValidationError)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration is valid: "+output.StyleNoun.Render(path)))
	return nil
}
