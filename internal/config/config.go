// Package config holds the settings for the server, the terminal UI and
// the list command. Values come from built-in defaults, then an optional
// YAML file, then command-line flags.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Listen      string  `yaml:"listen"`
	SessionTTL  string  `yaml:"session_ttl"`
	MaxSessions int     `yaml:"max_sessions"`
	RateLimit   float64 `yaml:"rate_limit"`
}

type Table struct {
	PageSize     int    `yaml:"page_size"`
	NameMatch    string `yaml:"name_match"`
	Mode         string `yaml:"mode"`
	ShowIDColumn bool   `yaml:"show_id_column"`
	DataFile     string `yaml:"data_file"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	Table   Table   `yaml:"table"`
	Logging Logging `yaml:"logging"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Listen:      ":8080",
			SessionTTL:  "30m",
			MaxSessions: 1000,
			RateLimit:   20,
		},
		Table: Table{
			PageSize:     8,
			NameMatch:    "full",
			Mode:         "derived",
			ShowIDColumn: true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Table.PageSize <= 0 {
		return errors.Errorf("table.page_size must be positive, got %d", c.Table.PageSize)
	}
	switch c.Table.NameMatch {
	case "full", "first":
	default:
		return errors.Errorf("table.name_match must be full or first, got %q", c.Table.NameMatch)
	}
	switch c.Table.Mode {
	case "derived", "legacy":
	default:
		return errors.Errorf("table.mode must be derived or legacy, got %q", c.Table.Mode)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return errors.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	if _, err := c.SessionTTL(); err != nil {
		return err
	}
	if c.Server.MaxSessions < 0 {
		return errors.Errorf("server.max_sessions must not be negative, got %d", c.Server.MaxSessions)
	}
	if c.Server.RateLimit < 0 {
		return errors.Errorf("server.rate_limit must not be negative, got %v", c.Server.RateLimit)
	}
	return nil
}

// SessionTTL is how long an idle view session lives.
func (c *Config) SessionTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.SessionTTL)
	if err != nil {
		return 0, errors.Wrap(err, "server.session_ttl")
	}
	if d <= 0 {
		return 0, errors.Errorf("server.session_ttl must be positive, got %s", d)
	}
	return d, nil
}
