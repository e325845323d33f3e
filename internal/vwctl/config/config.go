// Package config provides configuration management for the Vidwall CLI
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration
type Config struct {
	// Server is the streaming backend URL
	Server string `mapstructure:"server"`
	// CachePath is where per-group video selections are kept
	CachePath string `mapstructure:"cache-path"`
}

// defaultConfigPath returns the default config file path
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vwctl/config.yaml"
	}
	return filepath.Join(home, ".vwctl/config.yaml")
}

// DefaultCachePath returns where selections are stored when the config
// does not say otherwise.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vwctl/assignments.db"
	}
	return filepath.Join(home, ".vwctl/assignments.db")
}

// Load reads the CLI configuration. An empty path means the VWCTL_CONFIG
// environment variable, falling back to ~/.vwctl/config.yaml. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VWCTL_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath()
	}

	v := viper.New()
	v.SetDefault("server", "")
	v.SetDefault("cache-path", DefaultCachePath())

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}
