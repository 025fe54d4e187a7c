// Package rules loads the scoring rule tables and the pricing catalog from
// their config files. Both are loaded once at startup and immutable
// afterwards; a missing or malformed file is fatal.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigError indicates a rule table or pricing catalog that could not be
// loaded or parsed. It aborts startup; the process must not serve requests
// without loaded rule tables.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rules config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// AxisRules holds the weight table for a single scoring axis. Values absent
// from Weights score the axis Default.
type AxisRules struct {
	Default int            `yaml:"default"`
	Weights map[string]int `yaml:"weights"`
}

// Points returns the weight for a value and whether it was found in the
// table (false means the default was applied).
func (a AxisRules) Points(value string) (int, bool) {
	if pts, ok := a.Weights[value]; ok {
		return pts, true
	}
	return a.Default, false
}

// LocationRules holds the postcode-prefix scoring table.
type LocationRules struct {
	PremiumPrefixes []string `yaml:"premium_prefixes"`
	PremiumPoints   int      `yaml:"premium_points"`
	NorthPoints     int      `yaml:"north_points"`
	WestPoints      int      `yaml:"west_points"`
	Default         int      `yaml:"default"`
}

// QualificationRules holds the score thresholds for lead qualification.
// A lead is hot at or above Hot, warm at or above Warm, cold otherwise.
type QualificationRules struct {
	Hot  int `yaml:"hot"`
	Warm int `yaml:"warm"`
}

// ScoringRules is the full lead-scoring rule table.
type ScoringRules struct {
	Budget        AxisRules          `yaml:"budget"`
	Timeline      AxisRules          `yaml:"timeline"`
	ProjectType   AxisRules          `yaml:"project_type"`
	Location      LocationRules      `yaml:"location"`
	Qualification QualificationRules `yaml:"qualification"`
}

// LoadScoringRules reads and validates the scoring rule table.
func LoadScoringRules(path string) (*ScoringRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var rules ScoringRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := rules.validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return &rules, nil
}

func (r *ScoringRules) validate() error {
	for name, axis := range map[string]AxisRules{
		"budget":       r.Budget,
		"timeline":     r.Timeline,
		"project_type": r.ProjectType,
	} {
		if len(axis.Weights) == 0 {
			return fmt.Errorf("axis %s has no weights", name)
		}
		if axis.Default <= 0 {
			return fmt.Errorf("axis %s has no positive default", name)
		}
	}

	if len(r.Location.PremiumPrefixes) == 0 {
		return fmt.Errorf("location axis has no premium prefixes")
	}
	if r.Location.PremiumPoints <= 0 || r.Location.Default <= 0 {
		return fmt.Errorf("location axis points must be positive")
	}

	if r.Qualification.Hot <= r.Qualification.Warm || r.Qualification.Warm <= 0 {
		return fmt.Errorf("qualification thresholds must satisfy hot > warm > 0")
	}

	return nil
}
