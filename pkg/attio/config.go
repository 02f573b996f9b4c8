package attio

import (
	"os"
	"strings"
)

const (
	DefaultBaseURL     = "https://api.attio.com"
	DefaultTimeoutSecs = 30
	DefaultMaxRetries  = 3
	MaxPageSize        = 100
)

// Config controls the Attio API client.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
	MaxRetries  int    `yaml:"max_retries"`
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	return c
}

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg Config) Config {
	cfg.APIKey = envOr(cfg.APIKey, os.Getenv("ATTIO_API_KEY"))
	cfg.BaseURL = envOr(cfg.BaseURL, os.Getenv("ATTIO_BASE_URL"))
	return cfg.WithDefaults()
}

func envOr(existing, value string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}
	return strings.TrimSpace(value)
}
