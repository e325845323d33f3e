// Package config provides configuration management for the console daemon
package config

import (
	"time"

	"github.com/vidwall/vidwall-console/internal/console/client"
	"github.com/vidwall/vidwall-console/internal/console/refresh"
	"github.com/vidwall/vidwall-console/internal/console/streaming"
)

// Config holds all configuration for the console daemon
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Refresh RefreshConfig `yaml:"refresh"`
	Status  StatusConfig  `yaml:"status"`
	Cache   CacheConfig   `yaml:"cache"`
}

// ServerConfig holds HTTP server settings for the daemon's own API
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// BackendConfig holds the upstream video-wall backend settings
type BackendConfig struct {
	// BaseURL is the backend API root
	BaseURL string `yaml:"baseUrl"`
	// RequestTimeout bounds each backend round trip
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// RefreshConfig holds bulk refresh timing settings
type RefreshConfig struct {
	MinInterval    time.Duration `yaml:"minInterval"`
	FetchTimeout   time.Duration `yaml:"fetchTimeout"`
	DebounceWindow time.Duration `yaml:"debounceWindow"`
}

// StatusConfig holds streaming status poll settings
type StatusConfig struct {
	PollInterval time.Duration `yaml:"pollInterval"`
	PollTimeout  time.Duration `yaml:"pollTimeout"`
}

// CacheConfig holds assignment cache storage settings
type CacheConfig struct {
	// Driver selects the backing store: "sqlite" or "redis"
	Driver string `yaml:"driver"`
	// Path is the SQLite database file (sqlite driver)
	Path string `yaml:"path"`
	// RedisAddr is the Redis address (redis driver)
	RedisAddr string `yaml:"redisAddr"`
	// RedisPassword is the Redis password (redis driver)
	RedisPassword string `yaml:"redisPassword"`
	// RedisDB is the Redis database number (redis driver)
	RedisDB int `yaml:"redisDb"`
}

// Load builds a configuration from defaults overlaid with environment
// variables
func Load() (*Config, error) {
	cfg := defaults()
	cfg.overlayEnv()
	return cfg, cfg.validate()
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL:        client.DefaultBaseURL,
			RequestTimeout: 30 * time.Second,
		},
		Refresh: RefreshConfig{
			MinInterval:    refresh.DefaultMinInterval,
			FetchTimeout:   refresh.DefaultFetchTimeout,
			DebounceWindow: refresh.DefaultDebounceWindow,
		},
		Status: StatusConfig{
			PollInterval: streaming.DefaultPollInterval,
			PollTimeout:  streaming.DefaultPollTimeout,
		},
		Cache: CacheConfig{
			Driver: "sqlite",
			Path:   "vidwall-assignments.db",
		},
	}
}

// overlayEnv overlays environment variables on top of the current config
func (c *Config) overlayEnv() {
	// Server config
	if host := getEnv("VWALL_SERVER_HOST", ""); host != "" {
		c.Server.Host = host
	}
	if port := getEnvAsInt("VWALL_SERVER_PORT", 0); port != 0 {
		c.Server.Port = port
	}
	if readTimeout := getEnvAsDuration("VWALL_SERVER_READ_TIMEOUT", 0); readTimeout != 0 {
		c.Server.ReadTimeout = readTimeout
	}
	if writeTimeout := getEnvAsDuration("VWALL_SERVER_WRITE_TIMEOUT", 0); writeTimeout != 0 {
		c.Server.WriteTimeout = writeTimeout
	}

	// Backend config
	if baseURL := getEnv("VWALL_API_URL", ""); baseURL != "" {
		c.Backend.BaseURL = baseURL
	}
	if timeout := getEnvAsDuration("VWALL_API_TIMEOUT", 0); timeout != 0 {
		c.Backend.RequestTimeout = timeout
	}

	// Refresh config
	if interval := getEnvAsDuration("VWALL_REFRESH_MIN_INTERVAL", 0); interval != 0 {
		c.Refresh.MinInterval = interval
	}
	if timeout := getEnvAsDuration("VWALL_REFRESH_TIMEOUT", 0); timeout != 0 {
		c.Refresh.FetchTimeout = timeout
	}
	if window := getEnvAsDuration("VWALL_REFRESH_DEBOUNCE", 0); window != 0 {
		c.Refresh.DebounceWindow = window
	}

	// Status poll config
	if interval := getEnvAsDuration("VWALL_STATUS_POLL_INTERVAL", 0); interval != 0 {
		c.Status.PollInterval = interval
	}
	if timeout := getEnvAsDuration("VWALL_STATUS_POLL_TIMEOUT", 0); timeout != 0 {
		c.Status.PollTimeout = timeout
	}

	// Cache config
	if driver := getEnv("VWALL_CACHE_DRIVER", ""); driver != "" {
		c.Cache.Driver = driver
	}
	if path := getEnv("VWALL_CACHE_PATH", ""); path != "" {
		c.Cache.Path = path
	}
	if addr := getEnvMulti([]string{"VWALL_REDIS_ADDR", "REDIS_ADDR"}, ""); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if password := getEnvMulti([]string{"VWALL_REDIS_PASSWORD", "REDIS_PASSWORD"}, ""); password != "" {
		c.Cache.RedisPassword = password
	}
	if db := getEnvAsInt("VWALL_REDIS_DB", 0); db != 0 {
		c.Cache.RedisDB = db
	}
}
