// Package config loads and saves the moneta.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working directory.
const FileName = "moneta.yaml"

// Config represents the top-level moneta.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Detect   DetectConfig   `yaml:"detect"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Suggest  SuggestConfig  `yaml:"suggest"`
}

// DatabaseConfig locates the ledger database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ImportConfig controls the scan-directory import workflow.
type ImportConfig struct {
	Dir string `yaml:"dir"`
}

// DetectConfig tunes bank profile detection.
type DetectConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// IngestConfig tunes CSV row handling.
type IngestConfig struct {
	DropZeroAmounts bool `yaml:"drop_zero_amounts"`
}

// SuggestConfig tunes the allocation suggestion heuristics.
type SuggestConfig struct {
	LookbackMonths int     `yaml:"lookback_months"`
	FloorAmount    float64 `yaml:"floor_amount"`
	RoundTo        float64 `yaml:"round_to"`
}

// Load reads a moneta.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration written by `moneta init`.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "moneta.db"},
		Import:   ImportConfig{Dir: "import"},
		Detect:   DetectConfig{MinConfidence: 0.5},
		Ingest:   IngestConfig{DropZeroAmounts: true},
		Suggest: SuggestConfig{
			LookbackMonths: 3,
			FloorAmount:    10,
			RoundTo:        5,
		},
	}
}
