// Package config loads the run settings.
//
// Settings are YAML. Unknown keys are rejected so that a misspelt option
// fails loudly instead of silently keeping its default. Relative paths are
// resolved against the directory of the settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Stage names accepted by the exclusion lists and the rule-based
// exclusions.
const (
	StageAll       = "all"
	StageRename    = "rename"
	StageStats     = "stats"
	StageBreakdown = "breakdown"
	StageVariants  = "variants"
)

// Stages lists every stage name.
var Stages = []string{StageAll, StageRename, StageStats, StageBreakdown, StageVariants}

// Settings is the complete run configuration.
type Settings struct {
	Language     string     `yaml:"language"`
	Patch        string     `yaml:"patch"`
	Database     string     `yaml:"database"`
	Rules        []RuleFile `yaml:"rules"`
	Localization string     `yaml:"localization"`

	Features Features `yaml:"features"`

	RefundPercent         float64 `yaml:"refund_percent"`
	SkipExistingBreakdown bool    `yaml:"skip_existing_breakdown"`
	ReplaceTemperingItems bool    `yaml:"replace_tempering_items"`

	// AmmoBatch is the output count of generated ammunition variants.
	AmmoBatch int `yaml:"ammo_batch"`

	Report     Report     `yaml:"report"`
	Exclusions Exclusions `yaml:"exclusions"`

	// DisabledAddOns are optional containers whose constants resolve to
	// the null ref even when the record store has them.
	DisabledAddOns []string `yaml:"disabled_addons"`
}

// RuleFile is one rule-set file. Later files take precedence.
type RuleFile struct {
	Path     string `yaml:"path"`
	Required bool   `yaml:"required"`
}

// Features toggles patchers and pipeline stages.
type Features struct {
	Armor      bool `yaml:"armor"`
	Weapons    bool `yaml:"weapons"`
	Ammunition bool `yaml:"ammunition"`

	Rename    bool `yaml:"rename"`
	Stats     bool `yaml:"stats"`
	Crafting  bool `yaml:"crafting"`
	Tempering bool `yaml:"tempering"`
	Breakdown bool `yaml:"breakdown"`
	Variants  bool `yaml:"variants"`
}

// Report holds the report filters.
type Report struct {
	Names           []string `yaml:"names"`
	ShowNonPlayable bool     `yaml:"show_non_playable"`
	Verbose         bool     `yaml:"verbose"`
}

// Exclusions are per-stage lists of names or editor ids. Names match by
// substring, editor ids exactly.
type Exclusions struct {
	All       []string `yaml:"all"`
	Rename    []string `yaml:"rename"`
	Stats     []string `yaml:"stats"`
	Breakdown []string `yaml:"breakdown"`
	Variants  []string `yaml:"variants"`

	// Unique items never get breakdown recipes.
	Unique []string `yaml:"unique"`
}

// Stage returns the list for a stage name.
func (e Exclusions) Stage(stage string) []string {
	switch stage {
	case StageAll:
		return e.All
	case StageRename:
		return e.Rename
	case StageStats:
		return e.Stats
	case StageBreakdown:
		return e.Breakdown
	case StageVariants:
		return e.Variants
	}
	return nil
}

// Default returns the settings used when a key is absent.
func Default() Settings {
	return Settings{
		Language: "en",
		Patch:    "forgepatch.esp",
		Database: "forgepatch.db",
		Features: Features{
			Armor:      true,
			Weapons:    true,
			Ammunition: true,
			Rename:     true,
			Stats:      true,
			Crafting:   true,
			Tempering:  true,
			Breakdown:  true,
			Variants:   true,
		},
		RefundPercent:         66,
		SkipExistingBreakdown: true,
		AmmoBatch:             10,
	}
}

// Load reads a settings file and resolves its relative paths.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.resolvePaths(filepath.Dir(path))
	return s, nil
}

// Parse decodes settings on top of the defaults and validates them.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks value ranges and required keys.
func (s *Settings) Validate() error {
	var errs []error
	if s.Language == "" {
		errs = append(errs, errors.New("language is required"))
	}
	if s.Patch == "" {
		errs = append(errs, errors.New("patch is required"))
	}
	if s.RefundPercent < 0 || s.RefundPercent > 100 {
		errs = append(errs, fmt.Errorf("refund_percent %v outside [0, 100]", s.RefundPercent))
	}
	if s.AmmoBatch < 1 {
		errs = append(errs, fmt.Errorf("ammo_batch must be at least 1, got %d", s.AmmoBatch))
	}
	for i, r := range s.Rules {
		if r.Path == "" {
			errs = append(errs, fmt.Errorf("rules[%d]: path is required", i))
		}
	}
	return errors.Join(errs...)
}

// AddOnDisabled reports whether container was disabled.
func (s *Settings) AddOnDisabled(container string) bool {
	return slices.Contains(s.DisabledAddOns, container)
}

func (s *Settings) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	for i := range s.Rules {
		s.Rules[i].Path = resolve(s.Rules[i].Path)
	}
	s.Localization = resolve(s.Localization)
	s.Database = resolve(s.Database)
}
