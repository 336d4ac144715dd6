// Package config provides configuration management for medboard.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"

	"github.com/medboard/medboard/internal/hospital"
)

// Config holds the complete application configuration.
type Config struct {
	Hospital HospitalConfig `toml:"hospital"`
	Wards    []WardConfig   `toml:"wards"`
	Policy   PolicyConfig   `toml:"policy"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Journal  JournalConfig  `toml:"journal"`
	Roster   RosterConfig   `toml:"roster"`
}

// HospitalConfig contains facility identity.
type HospitalConfig struct {
	Name   string `toml:"name"`
	Region string `toml:"region"`
}

// WardConfig describes one ward of the topology.
type WardConfig struct {
	Name       string `toml:"name"`
	Kind       string `toml:"kind"` // waiting | clinical | warehouse
	Beds       int    `toml:"beds"`
	ShelfSlots int    `toml:"shelf_slots"`
}

// PolicyConfig carries the simulation constants.
type PolicyConfig struct {
	DailyAdmissions    int      `toml:"daily_admissions"`
	ActionBase         int      `toml:"action_base"`
	QuotaBase          int      `toml:"quota_base"`
	QuotaPerReputation int      `toml:"quota_per_reputation"`
	ReplenishAmount    int      `toml:"replenish_amount"`
	ReplenishCap       int      `toml:"replenish_cap"`
	PageSize           int      `toml:"page_size"`
	TreatmentSource    string   `toml:"treatment_source"` // ward | warehouse
	AutoArrivals       bool     `toml:"auto_arrivals"`
	EscalationWards    []string `toml:"escalation_wards"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// JournalConfig controls the session event journal. An empty path keeps
// the journal in memory for the lifetime of the process.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// RosterConfig points at the startup CSV rosters.
type RosterConfig struct {
	Patients string `toml:"patients"`
	Supplies string `toml:"supplies"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Hospital.Name == "" {
		errs = append(errs, errors.New("hospital: name is required"))
	}

	if err := c.validateWards(); err != nil {
		errs = append(errs, fmt.Errorf("wards: %w", err))
	}

	if err := c.Policy.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("policy: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (c *Config) validateWards() error {
	var errs []error

	seen := make(map[string]bool, len(c.Wards))
	waiting, warehouse := 0, 0
	for _, w := range c.Wards {
		if w.Name == "" {
			errs = append(errs, errors.New("ward name is required"))
			continue
		}
		if seen[w.Name] {
			errs = append(errs, fmt.Errorf("duplicate ward name: %s", w.Name))
		}
		seen[w.Name] = true

		switch w.Kind {
		case "waiting":
			waiting++
		case "warehouse":
			warehouse++
		case "clinical":
		default:
			errs = append(errs, fmt.Errorf("ward %s: invalid kind: %s", w.Name, w.Kind))
		}

		if w.Beds < 0 || w.ShelfSlots < 0 {
			errs = append(errs, fmt.Errorf("ward %s: capacities must be non-negative", w.Name))
		}
	}
	if waiting != 1 {
		errs = append(errs, fmt.Errorf("exactly one waiting ward required, got %d", waiting))
	}
	if warehouse != 1 {
		errs = append(errs, fmt.Errorf("exactly one warehouse ward required, got %d", warehouse))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the policy configuration is valid.
func (p *PolicyConfig) Validate() error {
	var errs []error

	if p.DailyAdmissions < 0 {
		errs = append(errs, errors.New("daily_admissions must be non-negative"))
	}

	if p.ActionBase < 1 {
		errs = append(errs, errors.New("action_base must be positive"))
	}

	if p.QuotaBase < 0 {
		errs = append(errs, errors.New("quota_base must be non-negative"))
	}

	if p.QuotaPerReputation < 0 {
		errs = append(errs, errors.New("quota_per_reputation must be non-negative"))
	}

	if p.ReplenishAmount < 0 {
		errs = append(errs, errors.New("replenish_amount must be non-negative"))
	}

	if p.ReplenishCap < 0 {
		errs = append(errs, errors.New("replenish_cap must be non-negative"))
	}

	if p.PageSize < 1 {
		errs = append(errs, errors.New("page_size must be positive"))
	}

	if p.TreatmentSource != "ward" && p.TreatmentSource != "warehouse" {
		errs = append(errs, fmt.Errorf("invalid treatment_source: %s", p.TreatmentSource))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreenPhosphor: true,
		ColorSchemeAmber:         true,
		ColorSchemeWhite:         true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Default returns a configuration with the stock eight-ward topology.
func Default() *Config {
	return &Config{
		Hospital: HospitalConfig{
			Name:   "Hospital General",
			Region: "Central District",
		},
		Wards: []WardConfig{
			{Name: "Waiting Room", Kind: "waiting", Beds: 999, ShelfSlots: 0},
			{Name: "ICU", Kind: "clinical", Beds: 10, ShelfSlots: 100},
			{Name: "Emergency", Kind: "clinical", Beds: 20, ShelfSlots: 150},
			{Name: "Gynecology", Kind: "clinical", Beds: 8, ShelfSlots: 80},
			{Name: "Traumatology", Kind: "clinical", Beds: 12, ShelfSlots: 120},
			{Name: "Internal Medicine", Kind: "clinical", Beds: 15, ShelfSlots: 100},
			{Name: "Pediatrics", Kind: "clinical", Beds: 10, ShelfSlots: 90},
			{Name: "Central Warehouse", Kind: "warehouse", Beds: 0, ShelfSlots: 200},
		},
		Policy: PolicyConfig{
			DailyAdmissions:    5,
			ActionBase:         5,
			QuotaBase:          50,
			QuotaPerReputation: 5,
			ReplenishAmount:    10,
			ReplenishCap:       200,
			PageSize:           10,
			TreatmentSource:    "ward",
			AutoArrivals:       true,
			EscalationWards:    []string{"Emergency", "ICU"},
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreenPhosphor,
			DateFormat:  "2006-01-02",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/medboard.log",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "",
		},
		Roster: RosterConfig{
			Patients: "data/patients.csv",
			Supplies: "data/supplies.csv",
		},
	}
}

// Topology converts the ward section into engine ward specs.
func (c *Config) Topology() []hospital.WardSpec {
	specs := make([]hospital.WardSpec, 0, len(c.Wards))
	for _, w := range c.Wards {
		specs = append(specs, hospital.WardSpec{
			Name:            w.Name,
			Kind:            wardKind(w.Kind),
			PatientCapacity: w.Beds,
			SupplyCapacity:  w.ShelfSlots,
		})
	}
	return specs
}

func wardKind(kind string) hospital.WardKind {
	switch kind {
	case "waiting":
		return hospital.KindWaiting
	case "warehouse":
		return hospital.KindWarehouse
	default:
		return hospital.KindClinical
	}
}

// EnginePolicy converts the policy section into engine constants.
func (c *Config) EnginePolicy() hospital.Policy {
	return hospital.Policy{
		DailyAdmissions:    c.Policy.DailyAdmissions,
		ActionBase:         c.Policy.ActionBase,
		QuotaBase:          c.Policy.QuotaBase,
		QuotaPerReputation: c.Policy.QuotaPerReputation,
		ReplenishAmount:    c.Policy.ReplenishAmount,
		ReplenishCap:       c.Policy.ReplenishCap,
		PageSize:           c.Policy.PageSize,
		TreatmentSource:    hospital.TreatmentSource(c.Policy.TreatmentSource),
		AutoArrivals:       c.Policy.AutoArrivals,
		EscalationWards:    append([]string(nil), c.Policy.EscalationWards...),
	}
}
