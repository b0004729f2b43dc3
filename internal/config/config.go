// Package config loads runtime settings from an optional YAML file and
// SKIRMISH_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	LogLevel     string `yaml:"log_level"` // debug, info, warn or error
	LogFile      string `yaml:"log_file"`  // Empty disables the JSON log file
	DatabasePath string `yaml:"database"`  // sqlite file holding reports and run progress
	Telemetry    bool   `yaml:"telemetry"`

	Profile   string   `yaml:"profile"`   // Run progress record to update
	Party     []string `yaml:"party"`     // Unit template IDs, in turn order
	Encounter string   `yaml:"encounter"` // Empty picks a weighted random encounter
	Auto      bool     `yaml:"auto"`      // Play without a terminal
}

// Environment variable names.
const (
	EnvSeed      = "SKIRMISH_SEED"
	EnvLogLevel  = "SKIRMISH_LOG_LEVEL"
	EnvLogFile   = "SKIRMISH_LOG_FILE"
	EnvDatabase  = "SKIRMISH_DB"
	EnvTelemetry = "SKIRMISH_TELEMETRY"
	EnvProfile   = "SKIRMISH_PROFILE"
	EnvAuto      = "SKIRMISH_AUTO"
)

// MaxPartySize is the largest party the renderer can lay out.
const MaxPartySize = 4

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "info",
		LogFile:      "skirmish.log",
		DatabasePath: "skirmish.db",
		Telemetry:    true,
		Profile:      "default",
		Party:        []string{"warrior", "mage", "cleric", "archer"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		c.DatabasePath = v
	}
	if v, ok := lookup(EnvProfile); ok && v != "" {
		c.Profile = v
	}
	if v, ok := lookup(EnvTelemetry); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		c.Telemetry = enabled
	}
	if v, ok := lookup(EnvAuto); ok && v != "" {
		auto, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAuto, err)
		}
		c.Auto = auto
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return errors.New("database path is empty")
	}
	if c.Profile == "" {
		return errors.New("profile is empty")
	}
	if len(c.Party) == 0 || len(c.Party) > MaxPartySize {
		return fmt.Errorf("party must have 1 to %d members, got %d", MaxPartySize, len(c.Party))
	}
	return nil
}

// SlogLevel returns the configured log level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ResolveSeed returns Seed, or a time-derived seed when Seed is 0.
func (c Config) ResolveSeed(now func() time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now().UnixNano()
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
