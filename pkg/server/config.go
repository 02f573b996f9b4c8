package server

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.mau.fi/util/ptr"
	"go.mau.fi/zeroconfig"
	"gopkg.in/yaml.v3"

	"github.com/beeper/attio-mcp/pkg/attio"
)

// Config is the full server configuration.
type Config struct {
	Listen  string             `yaml:"listen"`
	Attio   attio.Config       `yaml:"attio"`
	Logging *zeroconfig.Config `yaml:"logging"`
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = ":8000"
	}
	c.Attio = c.Attio.WithDefaults()
	if c.Logging == nil {
		c.Logging = &zeroconfig.Config{
			MinLevel: ptr.Ptr(zerolog.InfoLevel),
			Writers: []zeroconfig.WriterConfig{{
				Type:   zeroconfig.WriterTypeStdout,
				Format: zeroconfig.LogFormatPrettyColored,
			}},
		}
	}
	return c
}

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg Config) Config {
	if strings.TrimSpace(cfg.Listen) == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.Listen = ":" + port
		} else if addr := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); addr != "" {
			cfg.Listen = addr
		}
	}
	cfg.Attio = attio.ApplyEnvDefaults(cfg.Attio)
	return cfg.WithDefaults()
}

// LoadConfig reads a YAML config file. A missing path yields an env-only
// config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	return ApplyEnvDefaults(cfg), nil
}
