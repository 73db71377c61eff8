package cmd

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(g *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Tool configuration management",
		Long:  `Manage the sitecfg tool configuration (~/.sitecfg/config.yaml).`,
	}

	cmd.AddCommand(NewConfigInitCmd(g))
	cmd.AddCommand(NewConfigVetCmd(g))

	return cmd
}
