package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config represents the main configuration structure for livepage
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds the listener configuration
type ServerConfig struct {
	Host     string         `yaml:"host"`
	Port     int            `yaml:"port"`
	Timeouts TimeoutsConfig `yaml:"timeouts"`
}

// TimeoutsConfig holds the HTTP transport timeouts in seconds
type TimeoutsConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// LoggingConfig controls the process logger and request logging
type LoggingConfig struct {
	Level         string          `yaml:"level"`
	Format        string          `yaml:"format"`
	IncludeCaller bool            `yaml:"include_caller"`
	RequestID     RequestIDConfig `yaml:"request_id"`
}

// RequestIDConfig controls request ID propagation
type RequestIDConfig struct {
	Enabled bool   `yaml:"enabled"`
	Header  string `yaml:"header"`
}

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Default returns the configuration compiled into the binary.
func Default() (*Config, error) {
	cfg, err := Parse(defaultsYAML)
	if err != nil {
		return nil, fmt.Errorf("error loading built-in config: %w", err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration document
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks value ranges. Zero timeouts are allowed and mean "use the default".
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	t := c.Server.Timeouts
	if t.Read < 0 || t.Write < 0 || t.Idle < 0 {
		return errors.New("server.timeouts must not be negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// Address returns the host:port pair the server binds to
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ReadTimeout returns the read timeout, falling back to 15s.
func (t TimeoutsConfig) ReadTimeout() time.Duration {
	return orDefault(t.Read, defaultReadTimeout)
}

// WriteTimeout returns the write timeout, falling back to 15s.
func (t TimeoutsConfig) WriteTimeout() time.Duration {
	return orDefault(t.Write, defaultWriteTimeout)
}

// IdleTimeout returns the keep-alive timeout, falling back to 60s.
func (t TimeoutsConfig) IdleTimeout() time.Duration {
	return orDefault(t.Idle, defaultIdleTimeout)
}

func orDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
