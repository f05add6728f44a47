package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds run settings loaded from an origins.yaml file. Flags
// given on the command line win over file values.
type Config struct {
	// Database is the SQLite path results are persisted to. Empty
	// means no persistence.
	Database string `yaml:"database,omitempty"`

	// Dump enables collection of the per-point liveness dump.
	Dump bool `yaml:"dump,omitempty"`

	// Format is the report format, "text" or "json".
	Format string `yaml:"format,omitempty"`
}

// LoadConfig reads and strictly decodes a YAML config file: unknown
// keys are rejected so typos fail loudly instead of being ignored.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Format != "" && !isValidFormat(cfg.Format) {
		return nil, fmt.Errorf("config %s: invalid format %q: must be one of %v", path, cfg.Format, ValidFormats)
	}
	return cfg, nil
}
