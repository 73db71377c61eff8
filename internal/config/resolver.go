package config

import (
	"os"

	"github.com/sawhil/sitecfg/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveOptions describes the candidate values of a single setting.
type ResolveOptions struct {
	// Key is the setting name used in logs.
	Key string
	// FlagValue is the command-line flag value (empty if not set).
	FlagValue string
	// EnvVar is the environment variable consulted after the flag.
	EnvVar string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// Default is used when nothing else is set.
	Default string
}

// Resolve picks a value using precedence flag > env > config > default.
// Every non-empty candidate that loses is recorded in Shadowed.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.Default},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) SITECFG_CONFIG env, (3) ~/.sitecfg/config.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}

	return Resolve(ResolveOptions{
		Key:       "config",
		FlagValue: opts.FlagValue,
		EnvVar:    configEnvVar,
		Default:   paths.ConfigFile,
	}), nil
}

// ResolvedConfig holds every tool setting after precedence resolution.
type ResolvedConfig struct {
	ConfigPath ResolvedValue
	Site       ResolvedValue
	Output     ResolvedValue
}

// Values returns the resolved settings in a stable order.
func (r *ResolvedConfig) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.Site, r.Output}
}

// ResolveAllOptions contains the flag values and loaded config to resolve.
type ResolveAllOptions struct {
	ConfigFlag string
	SiteFlag   string
	OutputFlag string

	// Config is the loaded config file. May be nil.
	Config *Config
}

// ResolveAll resolves every tool setting.
func ResolveAll(opts ResolveAllOptions) (*ResolvedConfig, error) {
	configPath, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: opts.ConfigFlag})
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	return &ResolvedConfig{
		ConfigPath: configPath,
		Site: Resolve(ResolveOptions{
			Key:         "site",
			FlagValue:   opts.SiteFlag,
			EnvVar:      "SITECFG_SITE",
			ConfigValue: cfg.Site,
			Default:     DefaultSiteFile,
		}),
		Output: Resolve(ResolveOptions{
			Key:         "output",
			FlagValue:   opts.OutputFlag,
			EnvVar:      "SITECFG_OUTPUT",
			ConfigValue: cfg.Output,
			Default:     DefaultOutput,
		}),
	}, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
