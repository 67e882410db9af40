// Package config holds the reporter configuration, loaded from an optional
// smartreport.yaml file and overridable by command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given explicitly.
const DefaultFile = "smartreport.yaml"

// Config represents the full smartreport configuration.
type Config struct {
	// Path of the HTML report artifact
	OutputFile string `yaml:"output_file"`
	// Optional path for a machine-readable JSON report; empty disables it
	JSONReportFile string `yaml:"json_report_file"`
	// Path of the durable history file
	HistoryFile string `yaml:"history_file"`
	// Maximum historical outcomes kept per test
	MaxHistoryRuns int `yaml:"max_history_runs"`
	// Fraction of the historical average a duration must deviate by to be
	// flagged slower or faster
	PerformanceThreshold float64 `yaml:"performance_threshold"`
	// Per-request timeout for enrichment calls
	EnrichTimeout time.Duration `yaml:"enrich_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputFile:           "smart-report.html",
		HistoryFile:          "test-history.json",
		MaxHistoryRuns:       10,
		PerformanceThreshold: 0.2,
		EnrichTimeout:        30 * time.Second,
	}
}

// Load reads the config file at path, applying defaults for any field left
// unset. When path is DefaultFile and the file does not exist, the defaults
// are returned; an explicitly named file must exist.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFile {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the reporter cannot run with.
func (c *Config) Validate() error {
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.HistoryFile == "" {
		return fmt.Errorf("history_file must not be empty")
	}
	if c.MaxHistoryRuns <= 0 {
		return fmt.Errorf("max_history_runs must be positive, got %d", c.MaxHistoryRuns)
	}
	if c.PerformanceThreshold < 0 {
		return fmt.Errorf("performance_threshold must not be negative, got %g", c.PerformanceThreshold)
	}
	if c.EnrichTimeout <= 0 {
		return fmt.Errorf("enrich_timeout must be positive, got %s", c.EnrichTimeout)
	}
	return nil
}
