/*
PURPOSE:
  Defines the configuration structure and loading logic for stacklog.
  Decides which sinks the CLI installs behind the facade.

REQUIREMENTS:
  User-specified:
  - Allow configuration of sink destinations and minimum levels.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Needs an environment override for the level (STACKLOG_LEVEL).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default file is not an error; defaults are used.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (console on stderr at INFO).

USAGE:
  cfg, err := config.Load("stacklog.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new sinks.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/stacklog/internal/model"
)

// EnvLevel overrides Config.Level when set.
const EnvLevel = "STACKLOG_LEVEL"

// Config represents the full configuration for stacklog.
type Config struct {
	// Level is the minimum level every configured sink keeps.
	Level model.Level `yaml:"level"`
	// Console prints records to stderr.
	Console ConsoleConfig `yaml:"console"`
	// Slog routes records through a slog handler ("text" or "json").
	Slog SlogConfig `yaml:"slog"`
	// JSONLPath appends records as JSON Lines when set.
	JSONLPath string `yaml:"jsonl_path"`
	// CSVPath appends records as CSV rows when set.
	CSVPath string `yaml:"csv_path"`
	// TraceDepth is the frame count `trace` prints by default.
	TraceDepth int `yaml:"trace_depth"`
}

type ConsoleConfig struct {
	Enabled bool  `yaml:"enabled"`
	Color   *bool `yaml:"color"` // nil: detect terminal
}

type SlogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:      model.LevelInfo,
		Console:    ConsoleConfig{Enabled: true},
		Slog:       SlogConfig{Format: "text"},
		TraceDepth: 6,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"stacklog.yaml", "stacklog.yml", ".stacklog.yaml"}
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	v, ok := os.LookupEnv(EnvLevel)
	if !ok || v == "" {
		return nil
	}
	lvl, err := model.ParseLevel(v)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvLevel, err)
	}
	c.Level = lvl
	return nil
}

// Validate rejects values no sink can honour.
func (c *Config) Validate() error {
	switch c.Slog.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("slog.format: unsupported value %q", c.Slog.Format)
	}
	if c.TraceDepth < 0 {
		return fmt.Errorf("trace_depth must not be negative, got %d", c.TraceDepth)
	}
	return nil
}
