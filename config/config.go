// Package config loads mapisse configuration from YAML and applies
// defaults for anything unset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all mapisse configuration.
type Config struct {
	// Snapshot is the parquet file path.
	Snapshot string `yaml:"snapshot"`
	// Journal is the SQLite fetch journal path.
	Journal string       `yaml:"journal"`
	Fetch   FetchConfig  `yaml:"fetch"`
	Server  ServerConfig `yaml:"server"`
}

// FetchConfig controls the Wikidata client and refresh pacing.
type FetchConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	Cooldown     time.Duration `yaml:"cooldown"`
	RequestDelay time.Duration `yaml:"request_delay"`
	TopPainters  int           `yaml:"top_painters"`
}

// ServerConfig controls the display-shell HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func (c *Config) defaults() {
	if c.Snapshot == "" {
		c.Snapshot = "data/artworks.parquet"
	}
	if c.Journal == "" {
		c.Journal = "data/journal.db"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 90 * time.Second
	}
	if c.Fetch.MaxAttempts <= 0 {
		c.Fetch.MaxAttempts = 5
	}
	if c.Fetch.Cooldown <= 0 {
		c.Fetch.Cooldown = 30 * time.Second
	}
	if c.Fetch.RequestDelay <= 0 {
		c.Fetch.RequestDelay = 2 * time.Second
	}
	if c.Fetch.TopPainters <= 0 {
		c.Fetch.TopPainters = 250
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	// Endpoint and UserAgent defaults live in the wikidata client; empty
	// values pass through so there is a single source of truth.
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// LoadFile reads a YAML config file and applies defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.defaults()
	return cfg, nil
}
