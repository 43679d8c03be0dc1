package config

import (
	"fmt"

	"github.com/muurk/cantrace/internal/logging"
	"github.com/muurk/cantrace/internal/report"
)

// CurrentVersion is the only settings file version this build understands.
const CurrentVersion = 1

// Settings represents the user configuration file.
// Every field can be overridden by the matching command-line flag.
type Settings struct {
	Version     int    `yaml:"version" toml:"version"`
	LogLevel    string `yaml:"log_level,omitempty" toml:"log_level"` // debug, info, warn, error; empty = silent
	Format      string `yaml:"format" toml:"format"`                 // default output format for the frames command
	Workers     int    `yaml:"workers" toml:"workers"`               // classification goroutines; 0 = one per CPU
	Limit       int    `yaml:"limit" toml:"limit"`                   // max frames listed; 0 = all
	ShowRejects bool   `yaml:"show_rejects" toml:"show_rejects"`     // list invalid lines after the stats summary
}

// NewSettings returns the built-in defaults.
func NewSettings() *Settings {
	return &Settings{
		Version:     CurrentVersion,
		Format:      string(report.FormatLog),
		Workers:     0,
		Limit:       0,
		ShowRejects: false,
	}
}

// Validate checks field values after loading.
func (s *Settings) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, CurrentVersion)
	}
	if s.LogLevel != "" {
		if _, err := logging.ParseLevel(s.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}
	if _, err := report.ParseFormat(s.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", s.Workers)
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", s.Limit)
	}
	return nil
}

// applyDefaults fills zero values a partial file left unset.
func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	if s.Format == "" {
		s.Format = string(report.FormatLog)
	}
}
