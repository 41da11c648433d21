package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Hermes  HermesConfig    `yaml:"hermes"`
	Session SessionConfig   `yaml:"session"`
	Matrix  scoring.Catalog `yaml:"matrix"`
	Logging LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port              int `yaml:"port"`
	MetricsPort       int `yaml:"metrics_port"`
	RateLimitPerMin   int `yaml:"rate_limit_per_min"`
	ShutdownTimeoutMs int `yaml:"shutdown_timeout_ms"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type SessionConfig struct {
	TTLMs            int `yaml:"ttl_ms"`
	SweepIntervalMs  int `yaml:"sweep_interval_ms"`
	MinSuppliers     int `yaml:"min_suppliers"`
	MaxSuppliers     int `yaml:"max_suppliers"`
	DefaultSuppliers int `yaml:"default_suppliers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMs) * time.Millisecond
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepIntervalMs) * time.Millisecond
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutMs) * time.Millisecond
}

// Load returns the defaults, overlaid with the YAML file at path (if any) and
// then PROCURE_* environment variables. A matrix section replaces the built-in
// catalog wholesale and must pass validation.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              8700,
			MetricsPort:       8701,
			RateLimitPerMin:   600,
			ShutdownTimeoutMs: 10000,
		},
		Session: SessionConfig{
			TTLMs:            1800000,
			SweepIntervalMs:  60000,
			MinSuppliers:     1,
			MaxSuppliers:     10,
			DefaultSuppliers: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if len(cfg.Matrix.Criteria) == 0 && len(cfg.Matrix.Profiles) == 0 {
		cfg.Matrix = scoring.DefaultCatalog()
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the catalog and session bounds.
func (c *Config) Validate() error {
	if err := c.Matrix.Validate(); err != nil {
		return fmt.Errorf("matrix: %w", err)
	}
	s := c.Session
	if s.MinSuppliers < 1 || s.MaxSuppliers < s.MinSuppliers {
		return fmt.Errorf("session: supplier bounds [%d, %d] invalid", s.MinSuppliers, s.MaxSuppliers)
	}
	if s.DefaultSuppliers < s.MinSuppliers || s.DefaultSuppliers > s.MaxSuppliers {
		return fmt.Errorf("session: default_suppliers %d outside [%d, %d]", s.DefaultSuppliers, s.MinSuppliers, s.MaxSuppliers)
	}
	if s.TTLMs <= 0 || s.SweepIntervalMs <= 0 {
		return fmt.Errorf("session: ttl_ms and sweep_interval_ms must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PROCURE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("PROCURE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("PROCURE_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("PROCURE_SESSION_TTL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Session.TTLMs = n
		}
	}
	if v := os.Getenv("PROCURE_MAX_SUPPLIERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Session.MaxSuppliers = n
		}
	}
	if v := os.Getenv("PROCURE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PROCURE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
