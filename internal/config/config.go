// Package config holds campuslink configuration: where the seed data lives,
// the simulated-latency timers, theme selection and logging. Config is a
// YAML file; a handful of environment variables override it after load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all campuslink configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Where logs (and future state) are written.
	StateDir string `yaml:"state_dir"`

	// Seed data
	Seed SeedConfig `yaml:"seed"`

	// Theme: light, dark, auto
	Theme string `yaml:"theme"`

	// Simulated latency timers
	Timers TimersConfig `yaml:"timers"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SeedConfig configures the mock data source.
type SeedConfig struct {
	// Path to a YAML seed file; empty means embedded defaults.
	Path string `yaml:"path"`

	// Watch reloads the seed file on change (dev mode).
	Watch bool `yaml:"watch"`
}

// TimersConfig holds the fixed delays that fake asynchrony. Durations are
// strings ("1s", "1500ms") so the YAML stays readable.
type TimersConfig struct {
	LoginDelay string `yaml:"login_delay"`
	ReplyDelay string `yaml:"reply_delay"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Enabled    bool            `yaml:"enabled"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:     "campuslink",
		Version:  "0.3.0",
		StateDir: defaultStateDir(),
		Theme:    "auto",
		Timers: TimersConfig{
			LoginDelay: "1s",
			ReplyDelay: "1500ms",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".campuslink"
	}
	return filepath.Join(home, ".campuslink")
}

// Load reads a config file and applies env overrides. A missing file yields
// the defaults (with overrides still applied); a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the file. godotenv has
// already populated the environment from .env by the time this runs.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CAMPUSLINK_SEED"); v != "" {
		c.Seed.Path = v
	}
	if v := os.Getenv("CAMPUSLINK_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("CAMPUSLINK_STATE_DIR"); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv("CAMPUSLINK_DEBUG"); v == "1" || v == "true" {
		c.Logging.Enabled = true
		c.Logging.Level = "debug"
	}
}

// LoginDelay returns the parsed simulated login latency.
func (c *Config) LoginDelay() time.Duration {
	return parseDuration(c.Timers.LoginDelay, time.Second)
}

// ReplyDelay returns the parsed simulated chat auto-reply latency.
func (c *Config) ReplyDelay() time.Duration {
	return parseDuration(c.Timers.ReplyDelay, 1500*time.Millisecond)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
