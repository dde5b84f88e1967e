// Package config loads the optional TOML configuration file: the default
// report name, named report definitions, and urgency coefficient
// overrides, via spf13/viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/task"
	"github.com/spf13/viper"
)

// CoefficientField is one [[core.coefficients]] entry: either a blanket
// override for Field (when the optional value key is empty) or a per-tag
// override (when value names a tag, which only makes sense for
// Field == "tag").
type CoefficientField struct {
	Field       string `mapstructure:"field"`
	Tag         string `mapstructure:"value"`
	Coefficient int    `mapstructure:"coefficient"`
}

// ReportConfig is one named report: its filter strings, which columns to
// print and under what headers, and whether it's the one `bee list` falls
// back to absent an explicit report name. Filters is loaded from the file
// but is not combined with the command-line filter when a report runs.
type ReportConfig struct {
	Filters     []string `mapstructure:"filters"`
	Columns     []string `mapstructure:"columns"`
	ColumnNames []string `mapstructure:"column_names"`
	Default     bool     `mapstructure:"default"`
}

// Config is the fully resolved [core] table.
type Config struct {
	DefaultReport string                  `mapstructure:"default_report"`
	Reports       map[string]ReportConfig `mapstructure:"report"`
	Coefficients  []CoefficientField      `mapstructure:"coefficients"`
}

const defaultReportName = "__default"

// Default returns the built-in configuration used when no config file is
// found on any search path.
func Default() Config {
	return Config{
		DefaultReport: defaultReportName,
		Reports: map[string]ReportConfig{
			defaultReportName: {
				Filters:     []string{"status:pending or status:active"},
				Columns:     []string{"id", "date_created", "summary", "tags", "urgency"},
				ColumnNames: []string{"ID", "Created", "Summary", "Tags", "Urgency"},
				Default:     true,
			},
		},
	}
}

// searchPaths returns the configuration file candidates to probe, in
// order, given an explicit --config override (empty if none was given).
func searchPaths(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	paths = append(paths, "bee.toml")

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "bee", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "bee", "config.toml"))
		paths = append(paths, filepath.Join(home, ".bee.toml"))
	}
	return paths
}

// Load resolves and parses the configuration file, probing explicit first,
// then the fixed search order of §6. It returns Default() if no candidate
// path exists, and a ConfigError if a candidate exists but fails to parse
// or names an unknown coefficient field.
func Load(explicit string) (Config, error) {
	var found string
	for _, p := range searchPaths(explicit) {
		if _, err := os.Stat(p); err == nil {
			found = p
			break
		}
	}
	if found == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(found)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, bedrrors.NewConfigError(fmt.Errorf("reading %s: %w", found, err))
	}

	var cfg Config
	if err := v.UnmarshalKey("core", &cfg); err != nil {
		return Config{}, bedrrors.NewConfigError(fmt.Errorf("parsing %s: %w", found, err))
	}

	if err := validate(&cfg); err != nil {
		return Config{}, bedrrors.NewConfigError(err)
	}

	if cfg.DefaultReport == "" {
		cfg.DefaultReport = defaultReportName
	}
	if cfg.Reports == nil {
		cfg.Reports = map[string]ReportConfig{}
	}
	if _, ok := cfg.Reports[defaultReportName]; !ok {
		cfg.Reports[defaultReportName] = Default().Reports[defaultReportName]
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	for _, c := range cfg.Coefficients {
		if c.Field == "" {
			return fmt.Errorf("coefficient entry missing a field name")
		}
		if err := task.ValidateField(c.Field); err != nil {
			return err
		}
		if c.Tag != "" && task.CoefficientField(c.Field) != task.CoefficientTag {
			return fmt.Errorf("coefficient entry for tag %q must use field \"tag\", got %q", c.Tag, c.Field)
		}
	}
	return nil
}

// Coefficients builds task.Coefficients from the parsed [[core.coefficients]]
// entries, layered on top of task.DefaultCoefficients.
func (c Config) Coefficients() task.Coefficients {
	coeffs := task.DefaultCoefficients()
	coeffs.TagValues = map[string]int{}

	for _, entry := range c.Coefficients {
		switch task.CoefficientField(entry.Field) {
		case task.CoefficientTag:
			if entry.Tag != "" {
				coeffs.TagValues[entry.Tag] = entry.Coefficient
			} else {
				coeffs.TagDefault = entry.Coefficient
			}
		case task.CoefficientDepends:
			coeffs.Depends = entry.Coefficient
		case task.CoefficientBlocking:
			coeffs.Blocking = entry.Coefficient
		case task.CoefficientActiveStatus:
			coeffs.ActiveStatus = entry.Coefficient
		}
	}
	return coeffs
}

// ReportNames returns the set of configured report names, for
// internal/cmdline's report-token recognition.
func (c Config) ReportNames() map[string]bool {
	names := make(map[string]bool, len(c.Reports))
	for name := range c.Reports {
		names[name] = true
	}
	return names
}
