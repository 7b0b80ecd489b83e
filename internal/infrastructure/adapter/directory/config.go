package directory

import (
	"fmt"
	"time"
)

// Config holds settings for the corporate directory API client
type Config struct {
	BaseURL string        // Base URL of the directory service
	APIKey  string        // Bearer token for the users endpoint
	Timeout time.Duration // HTTP request timeout
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("directory base URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("directory timeout must be positive")
	}
	return nil
}
