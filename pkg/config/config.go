// Package config loads and validates the YAML configuration document that
// drives ingest and allocation: the county whitelist, the observer column
// mapping, the four shift parameter blocks, and the output rendering rules.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnMapping is one observer logical field's sheet position and
// fill-on-missing literal, from columns_map.
type ColumnMapping struct {
	ColNum      int    `yaml:"col_num"`
	FillMissing string `yaml:"fill_missing"`
}

// ShiftParams is the per-shift parameter block (§3 of the assignment
// spec): whether the shift is restricted to in-county observers. The
// destination column(s), legal-flag column, and location column for a
// shift are fixed by the shift tag itself (pkg/model), not independently
// configurable — see the fixed-order phase machine design note.
type ShiftParams struct {
	FromCounty bool `yaml:"from_county"`
}

// OutputShiftParams is the static metadata stamped onto every row of one
// of the four lbj_output shift tables.
type OutputShiftParams struct {
	County      string `yaml:"county"`
	Date        string `yaml:"date"`
	StartTime   string `yaml:"start_time"`
	EndTime     string `yaml:"end_time"`
	Area        string `yaml:"area"`
	ObserverCol string `yaml:"observer_col"`
}

// LoggingConfig controls the structured logger (C12).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportingConfig controls run-report persistence (C13).
type ReportingConfig struct {
	OutputDir string `yaml:"output_dir"`
	KeepLastN int    `yaml:"keep_last_n"`
}

// MetricsConfig controls the Prometheus snapshot writer (C14).
type MetricsConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
}

// Config is the full configuration document (§6 of the assignment spec).
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Reporting ReportingConfig `yaml:"reporting"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	ValidPostCodes []int `yaml:"valid_post_codes"`

	ColumnsMap map[string]ColumnMapping `yaml:"columns_map"`

	// Shifts is keyed by "inside", "outside_am", "outside_pm", "outside_both".
	Shifts map[string]ShiftParams `yaml:"shifts"`

	RenameColumns map[string]string `yaml:"rename_columns"`

	// OutputShifts is keyed by "outside_am_output", "outside_pm_output",
	// "inside_am_output", "inside_pm_output".
	OutputShifts map[string]OutputShiftParams `yaml:"output_shifts"`
}

// RequiredShifts is the fixed set of shift names every configuration must
// define a parameter block for.
var RequiredShifts = []string{"inside", "outside_am", "outside_pm", "outside_both"}

// RequiredOutputShifts is the fixed set of output shift names lbj_output
// concatenates, in rendering order.
var RequiredOutputShifts = []string{"outside_am_output", "outside_pm_output", "inside_am_output", "inside_pm_output"}

// RequiredObserverColumns is the set of logical observer fields columns_map
// must cover (§6).
var RequiredObserverColumns = []string{
	"date_entered", "name", "phone_number", "email", "post_code",
	"election_day", "legal_background", "ev_2020_experience", "is_rover",
}

// DefaultConfig returns a configuration with ambient defaults filled in and
// no domain blocks populated — the domain blocks (shifts, columns_map,
// valid_post_codes, output_shifts) have no safe default and must come from
// the file; Validate rejects a config still missing them.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
		},
		Metrics: MetricsConfig{
			SnapshotPath: "./reports/metrics.snap",
		},
		ColumnsMap:    map[string]ColumnMapping{},
		Shifts:        map[string]ShiftParams{},
		RenameColumns: map[string]string{},
		OutputShifts:  map[string]OutputShiftParams{},
	}
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteVariables expands ${VAR} and $VAR references against the
// supplied overrides first, then the process environment, leaving any
// unresolved reference untouched.
func substituteVariables(content string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := strings.Trim(match, "${}$")
		if val, ok := vars[name]; ok {
			return val
		}
		if val := os.Getenv(name); val != "" {
			return val
		}
		return match
	})
}

// Load reads the YAML configuration document at path, applying variable
// substitution (vars, then the environment) before parsing. A missing path
// falls back to DefaultConfig, matching the ambient stack's convention
// elsewhere — but unlike that convention, the caller must still run
// Validate before using the result, since this domain has no safe default
// for "which column holds the inside observer".
func Load(path string, vars map[string]string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := substituteVariables(string(data), vars)

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration back out as YAML, for operators who want
// to capture a resolved (post-substitution) configuration.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
