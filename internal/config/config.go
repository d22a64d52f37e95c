package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings of the usdasr tool. Values come from an
// optional YAML file; environment variables always override it.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates and tunes the SQLite store.
type DatabaseConfig struct {
	Path          string `yaml:"path" env:"USDASR_DB_PATH" env-default:"usdasr.db"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms" env:"USDASR_DB_BUSY_TIMEOUT_MS" env-default:"5000"`
	// SlowQueryMS is the threshold above which statements are logged at warn.
	SlowQueryMS int `yaml:"slow_query_ms" env:"USDASR_DB_SLOW_QUERY_MS" env-default:"200"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"USDASR_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"USDASR_LOG_FORMAT" env-default:"console"`
}

func (c DatabaseConfig) BusyTimeout() time.Duration {
	return time.Duration(c.BusyTimeoutMS) * time.Millisecond
}

func (c DatabaseConfig) SlowThreshold() time.Duration {
	return time.Duration(c.SlowQueryMS) * time.Millisecond
}

// Load reads path when it is non-empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Database.BusyTimeoutMS <= 0 {
		return fmt.Errorf("database.busy_timeout_ms must be positive, got %d", c.Database.BusyTimeoutMS)
	}
	if c.Database.SlowQueryMS <= 0 {
		return fmt.Errorf("database.slow_query_ms must be positive, got %d", c.Database.SlowQueryMS)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q is not one of console, json", c.Log.Format)
	}
	return nil
}

// Usage describes the recognised environment variables.
func Usage() string {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return desc
}
