package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawhil/sitecfg/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show sitecfg version information.

Displays:
  - sitecfg version, commit, and build date
  - CUE SDK version (embedded in the binary)`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "sitecfg version %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:    %s\n", info.GitCommit)
	fmt.Fprintf(out, "  Built:     %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go:        %s\n", info.GoVersion)
	fmt.Fprintf(out, "  CUE SDK:   %s\n", info.CUESDKVersion)

	return nil
}
