// Package config provides loading and resolution of the sitecfg tool settings.
package config

// Built-in defaults for tool settings.
const (
	// DefaultSiteFile is the site configuration read when no path is given.
	DefaultSiteFile = "site.yaml"

	// DefaultOutput is the default format for show.
	DefaultOutput = "tree"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the sitecfg tool configuration.
// Loaded from ~/.sitecfg/config.yaml.
type Config struct {
	// Site is the site configuration file used when a command gets no path.
	// Env: SITECFG_SITE, Default: site.yaml
	Site string `json:"site,omitempty" yaml:"site,omitempty" mapstructure:"site"`

	// Output is the default output format for show.
	// Env: SITECFG_OUTPUT, Default: tree
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `sitecfg config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Site:   DefaultSiteFile,
		Output: DefaultOutput,
		Log:    LogConfig{Timestamps: &timestamps},
	}
}

// ResolvedValue is a single setting after precedence resolution.
type ResolvedValue struct {
	// Key is the setting name.
	Key string

	// Value is the winning value.
	Value string

	// Source indicates where Value came from.
	Source ConfigSource

	// Shadowed contains lower precedence values that were overridden.
	Shadowed map[ConfigSource]string
}
