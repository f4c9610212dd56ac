package config

import (
	"fmt"

	"github.com/sidravi1/vote2020/pkg/errs"
)

// Validator accumulates configuration problems before any mutation of the
// observer pool or precinct roster begins. Fatal problems (Errors) abort
// the run; Warnings surface only in the run report.
type Validator struct {
	Warnings []string
	Errors   []string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Warnings: []string{}, Errors: []string{}}
}

// Validate checks cfg against every concern named in §6: shift blocks
// present, valid_post_codes non-empty, columns_map covers every required
// observer field, and the output rename map has no collisions. Returns a
// *errs.ConfigError naming the first fatal problem found, or nil.
func (v *Validator) Validate(cfg *Config) error {
	v.Warnings = v.Warnings[:0]
	v.Errors = v.Errors[:0]

	v.validateShifts(cfg)
	v.validateOutputShifts(cfg)
	v.validateColumnsMap(cfg)
	v.validatePostCodes(cfg)
	v.validateRenameColumns(cfg)

	if len(v.Errors) > 0 {
		return errs.NewConfig("config", v.Errors[0])
	}
	return nil
}

func (v *Validator) validateShifts(cfg *Config) {
	for _, name := range RequiredShifts {
		if _, ok := cfg.Shifts[name]; !ok {
			v.Errors = append(v.Errors, fmt.Sprintf("shifts.%s is required", name))
		}
	}
	for name := range cfg.Shifts {
		if !contains(RequiredShifts, name) {
			v.Warnings = append(v.Warnings, fmt.Sprintf("shifts.%s is not a recognised shift tag", name))
		}
	}
}

func (v *Validator) validateOutputShifts(cfg *Config) {
	for _, name := range RequiredOutputShifts {
		params, ok := cfg.OutputShifts[name]
		if !ok {
			v.Errors = append(v.Errors, fmt.Sprintf("output_shifts.%s is required", name))
			continue
		}
		if params.ObserverCol == "" {
			v.Errors = append(v.Errors, fmt.Sprintf("output_shifts.%s.observer_col is required", name))
		}
	}
}

func (v *Validator) validateColumnsMap(cfg *Config) {
	for _, field := range RequiredObserverColumns {
		if _, ok := cfg.ColumnsMap[field]; !ok {
			v.Errors = append(v.Errors, fmt.Sprintf("columns_map.%s is required", field))
		}
	}
}

func (v *Validator) validatePostCodes(cfg *Config) {
	if len(cfg.ValidPostCodes) == 0 {
		v.Warnings = append(v.Warnings, "valid_post_codes is empty; no observer will be treated as in-county")
	}
}

func (v *Validator) validateRenameColumns(cfg *Config) {
	seen := make(map[string]string, len(cfg.RenameColumns))
	for from, to := range cfg.RenameColumns {
		if existing, ok := seen[to]; ok {
			v.Errors = append(v.Errors, fmt.Sprintf("rename_columns: %q and %q both rename to %q", existing, from, to))
			continue
		}
		seen[to] = from
	}
}

// HasWarnings reports whether the last Validate call produced warnings.
func (v *Validator) HasWarnings() bool { return len(v.Warnings) > 0 }

// HasErrors reports whether the last Validate call produced fatal errors.
func (v *Validator) HasErrors() bool { return len(v.Errors) > 0 }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
