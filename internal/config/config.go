// Package config provides configuration loading for switchd.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the full daemon configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Specialists SpecialistsConfig `koanf:"specialists"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
}

// SpecialistsConfig controls discovery and dispatch.
type SpecialistsConfig struct {
	// Addresses is a comma-separated list of specialist base URLs probed
	// for descriptors at startup.
	Addresses      string        `koanf:"addresses"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AddressList splits the configured address string, trimming whitespace and
// dropping empty entries.
func (c SpecialistsConfig) AddressList() []string {
	var out []string
	for _, addr := range strings.Split(c.Addresses, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be > 0")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server rate_limit must be >= 0, got %v", c.Server.RateLimit)
	}
	if c.Specialists.RequestTimeout <= 0 {
		return fmt.Errorf("specialists request_timeout must be > 0")
	}
	if c.Specialists.ConnectTimeout <= 0 {
		return fmt.Errorf("specialists connect_timeout must be > 0")
	}
	if c.Specialists.ConnectTimeout > c.Specialists.RequestTimeout {
		return fmt.Errorf("specialists connect_timeout must not exceed request_timeout")
	}
	for _, addr := range c.Specialists.AddressList() {
		if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
			return fmt.Errorf("specialist address %q must be an http(s) URL", addr)
		}
	}
	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Specialists.Addresses == "" {
		cfg.Specialists.Addresses = "http://localhost:10001,http://localhost:10002"
	}
	if cfg.Specialists.RequestTimeout == 0 {
		cfg.Specialists.RequestTimeout = 120 * time.Second
	}
	if cfg.Specialists.ConnectTimeout == 0 {
		cfg.Specialists.ConnectTimeout = 30 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
