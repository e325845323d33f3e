package util

import (
	"fmt"
	"os"

	"github.com/vidwall/vidwall-console/internal/console/client"
	"github.com/vidwall/vidwall-console/internal/vwctl/config"
)

// GetClient creates a backend API client configured from the environment
// and config file. VWALL_API_URL wins over the config file; with neither
// set, the well-known local backend address applies.
func GetClient() (*client.Client, error) {
	apiURL := os.Getenv("VWALL_API_URL")
	if apiURL == "" {
		cfg, err := config.Load("")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		apiURL = cfg.Server
	}

	c, err := client.New(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return c, nil
}
