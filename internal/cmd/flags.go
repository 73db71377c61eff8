package cmd

import (
	"github.com/sawhil/sitecfg/internal/config"
)

// GlobalConfig holds CLI-wide settings. Flag fields are bound in NewRootCmd;
// the rest is populated once in PersistentPreRunE and read by sub-commands.
type GlobalConfig struct {
	ConfigFlag string
	SiteFlag   string
	OutputFlag string
	Verbose    bool
	Timestamps bool

	// Config is the loaded tool config. Nil when it failed to load.
	Config *config.Config

	// Resolved holds every setting after flag > env > config > default.
	Resolved *config.ResolvedConfig
}

// SitePath returns the site file named in args, or the resolved default.
func (g *GlobalConfig) SitePath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if g.Resolved != nil && g.Resolved.Site.Value != "" {
		return g.Resolved.Site.Value
	}
	if g.SiteFlag != "" {
		return g.SiteFlag
	}
	return config.DefaultSiteFile
}

// OutputFormat returns the resolved --output value.
func (g *GlobalConfig) OutputFormat() string {
	if g.Resolved != nil && g.Resolved.Output.Value != "" {
		return g.Resolved.Output.Value
	}
	if g.OutputFlag != "" {
		return g.OutputFlag
	}
	return config.DefaultOutput
}

// ConfigPath returns the resolved tool config path.
func (g *GlobalConfig) ConfigPath() string {
	if g.Resolved != nil {
		return g.Resolved.ConfigPath.Value
	}
	return g.ConfigFlag
}
