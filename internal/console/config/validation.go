package config

import (
	"fmt"
	"net/url"
)

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend base URL: %q", c.Backend.BaseURL)
	}
	if c.Refresh.MinInterval < 0 {
		return fmt.Errorf("refresh minimum interval cannot be negative")
	}
	if c.Refresh.FetchTimeout <= 0 {
		return fmt.Errorf("refresh fetch timeout must be positive")
	}
	if c.Status.PollInterval <= 0 {
		return fmt.Errorf("status poll interval must be positive")
	}
	switch c.Cache.Driver {
	case "sqlite":
		if c.Cache.Path == "" {
			return fmt.Errorf("sqlite cache driver requires a path")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("redis cache driver requires an address")
		}
	default:
		return fmt.Errorf("unknown cache driver: %q", c.Cache.Driver)
	}
	return nil
}
