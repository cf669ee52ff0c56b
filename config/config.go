// Package config loads run settings for the self-play driver from a YAML
// file, falling back to built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

var cfgFile = "santorini/config.yaml"

// InvalidConfig reports a configuration that parsed but fails validation.
type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type Config struct {
	Games      int    `yaml:"games"`       // Self-play games to run
	Goroutines int    `yaml:"goroutines"`  // Search goroutines per agent
	SearchTime string `yaml:"search_time"` // Per-move search budget, e.g. "250ms"
	Episodes   int    `yaml:"episodes"`    // Per-move episode budget; overrides search_time when set
	Cutoff     int    `yaml:"cutoff"`      // Rollout depth cutoff, 0 = full playouts
	LogLevel   string `yaml:"log_level"`

	searchDuration time.Duration
}

var DefaultConfig = Config{
	Games:      10,
	Goroutines: 8,
	SearchTime: "250ms",
	LogLevel:   "info",
}

// InitConfig returns the configuration from the given path, from the XDG
// config directory when path is empty, or the defaults when no file
// exists.
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig
	if path == "" {
		absPath, err := xdg.SearchConfigFile(cfgFile)
		if err == nil {
			path = absPath
		}
	}
	if path != "" {
		if err := readCfgFile(path, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func readCfgFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist: %w", path, err)
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

func (c *Config) Validate() error {
	if c.Games <= 0 {
		return &InvalidConfig{err: "games must be positive"}
	}
	if c.Goroutines <= 0 {
		return &InvalidConfig{err: "goroutines must be positive"}
	}
	if c.Cutoff < 0 {
		return &InvalidConfig{err: "cutoff cannot be negative"}
	}
	if c.Episodes < 0 {
		return &InvalidConfig{err: "episodes cannot be negative"}
	}
	if c.Episodes == 0 {
		duration, err := time.ParseDuration(c.SearchTime)
		if err != nil {
			return &InvalidConfig{err: fmt.Sprintf("bad search_time %q: %v", c.SearchTime, err)}
		}
		if duration <= 0 {
			return &InvalidConfig{err: "search_time must be positive"}
		}
		c.searchDuration = duration
	}
	return nil
}

// SearchDuration returns the parsed per-move time budget. Only valid after
// Validate.
func (c *Config) SearchDuration() time.Duration {
	return c.searchDuration
}
