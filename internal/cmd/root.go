package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sawhil/sitecfg/internal/config"
	"github.com/sawhil/sitecfg/internal/output"
)

// NewRootCmd creates the root command for the sitecfg CLI.
func NewRootCmd() *cobra.Command {
	g := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "sitecfg",
		Short: "Validate and inspect documentation site configuration",
		Long: `sitecfg loads the configuration of a static documentation site (identity,
integrations and sidebar navigation), enforces its invariants and renders
it for review.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, g)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.ConfigFlag, "config", "", "Path to tool config file (env: SITECFG_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&g.SiteFlag, "site", "", "Default site config file (env: SITECFG_SITE)")
	rootCmd.PersistentFlags().StringVarP(&g.OutputFlag, "output", "o", "", "Output format: tree, table, yaml, json (env: SITECFG_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&g.Timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewVetCmd(g))
	rootCmd.AddCommand(NewShowCmd(g))
	rootCmd.AddCommand(NewDiffCmd(g))
	rootCmd.AddCommand(NewInitCmd(g))
	rootCmd.AddCommand(NewConfigCmd(g))
	rootCmd.AddCommand(NewVersionCmd(g))

	return rootCmd
}

// initializeGlobals loads the tool config, resolves settings and sets up
// logging.
func initializeGlobals(cmd *cobra.Command, g *GlobalConfig) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: g.ConfigFlag,
	})
	if err != nil {
		return err
	}

	// A broken tool config must not block commands that don't need it.
	cfg, loadErr := config.NewLoader().Load(pathResult.Value)
	g.Config = cfg

	resolved, err := config.ResolveAll(config.ResolveAllOptions{
		ConfigFlag: g.ConfigFlag,
		SiteFlag:   g.SiteFlag,
		OutputFlag: g.OutputFlag,
		Config:     cfg,
	})
	if err != nil {
		return err
	}
	g.Resolved = resolved

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{
		Verbose: g.Verbose,
		Writer:  cmd.ErrOrStderr(),
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(g.Timestamps)
	} else if cfg != nil && cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Warn("ignoring tool config", "path", pathResult.Value, "error", loadErr)
	}

	if g.Verbose {
		config.LogResolvedValues(resolved.Values())
	}

	return nil
}
