// Package config loads server configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bizsync/bizsync/internal/conflict"
)

// Defaults applied when the file or a field is absent.
const (
	DefaultAddr           = ":8080"
	DefaultDatabasePath   = "bizsync-server.db"
	DefaultAccessTokenTTL = 15 * time.Minute
	DefaultRateLimit      = 100
	DefaultRateWindow     = time.Minute
	DefaultLoginRateLimit = 10
)

// Config is the full server configuration.
type Config struct {
	Addr     string         `yaml:"addr"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Sync     SyncConfig     `yaml:"sync"`
	Log      LogConfig      `yaml:"log"`
	Limits   LimitsConfig   `yaml:"limits"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig carries JWT settings. Secret has no default: the server refuses
// to start without one.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
}

// SyncConfig selects the conflict resolution strategy applied at push time.
type SyncConfig struct {
	ConflictStrategy string `yaml:"conflict_strategy"`
}

// LogConfig controls log output. When File is set, logs rotate there;
// otherwise they go to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// LimitsConfig sets the per-IP rate limits. Login gets its own stricter
// bucket.
type LimitsConfig struct {
	Rate      int           `yaml:"rate"`
	Window    time.Duration `yaml:"window"`
	LoginRate int           `yaml:"login_rate"`
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BIZSYNC_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("BIZSYNC_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("BIZSYNC_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("BIZSYNC_CONFLICT_STRATEGY"); v != "" {
		c.Sync.ConflictStrategy = v
	}
	if v := os.Getenv("BIZSYNC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("BIZSYNC_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("BIZSYNC_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Limits.Rate = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Auth.AccessTokenTTL == 0 {
		c.Auth.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if c.Sync.ConflictStrategy == "" {
		c.Sync.ConflictStrategy = string(conflict.DefaultStrategy)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
	if c.Limits.Rate == 0 {
		c.Limits.Rate = DefaultRateLimit
	}
	if c.Limits.Window == 0 {
		c.Limits.Window = DefaultRateWindow
	}
	if c.Limits.LoginRate == 0 {
		c.Limits.LoginRate = DefaultLoginRateLimit
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (auth.jwt_secret or BIZSYNC_JWT_SECRET)")
	}
	if _, err := conflict.ParseStrategy(c.Sync.ConflictStrategy); err != nil {
		return fmt.Errorf("invalid conflict strategy %q: %w", c.Sync.ConflictStrategy, err)
	}
	return nil
}

// Strategy returns the validated conflict strategy.
func (c *Config) Strategy() conflict.Strategy {
	return conflict.Strategy(c.Sync.ConflictStrategy)
}
