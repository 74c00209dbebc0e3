package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the starly CLI.
type Config struct {
	DatabasePath     string
	OMDbBaseURL      string
	OMDbAPIKey       string
	RequestTimeout   time.Duration
	CommentSaveDelay time.Duration
	DetailsCacheTTL  time.Duration
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "films.db"
	c.OMDbBaseURL = "https://www.omdbapi.com/"
	c.OMDbAPIKey = ""
	c.RequestTimeout = 10 * time.Second
	c.CommentSaveDelay = time.Second
	c.DetailsCacheTTL = 10 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c/-config is given) and command-line flags. Later sources take
// precedence over earlier ones. args are the process arguments without the
// program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.OMDbBaseURL == "" {
		return fmt.Errorf("omdb base url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.CommentSaveDelay < 0 {
		return fmt.Errorf("comment save delay must not be negative, got %s", c.CommentSaveDelay)
	}
	return nil
}
