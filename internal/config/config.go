// Package config provides configuration management for the OpenAlex explorer service.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the OpenAlex explorer service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// API contains OpenAlex API client settings.
	API APIConfig `mapstructure:"api"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// MetricsPort is the Prometheus metrics server port (default: 9091).
	MetricsPort int `mapstructure:"metrics_port"`
	// ReadTimeout is the maximum duration for reading a request (default: 30s).
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing a response (default: 30s).
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// IdleTimeout is the maximum time to wait for the next request on a
	// keep-alive connection (default: 120s).
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	// ShutdownTimeout is the graceful shutdown timeout (default: 30s).
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// APIConfig holds OpenAlex API client configuration.
type APIConfig struct {
	// BaseURL is the OpenAlex API base URL (default: https://api.openalex.org).
	BaseURL string `mapstructure:"base_url"`
	// Email is the contact address sent with every request. Requests that
	// carry one are routed to the OpenAlex polite pool, which has more
	// generous rate limits. Optional but recommended.
	Email string `mapstructure:"email"`
	// Timeout is the per-request HTTP timeout (default: 30s).
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the maximum number of requests per second sent to
	// OpenAlex (default: 10, the documented per-user limit).
	RateLimit float64 `mapstructure:"rate_limit"`
	// BurstSize is the rate limiter burst allowance (default: 10).
	BurstSize int `mapstructure:"burst_size"`
	// MaxRetries is the number of retries for transient failures (default: 3).
	MaxRetries int `mapstructure:"max_retries"`
	// RetryDelay is the base delay between retries; each attempt doubles it
	// (default: 1s).
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// PerPage is the page size requested from OpenAlex list endpoints,
	// capped at 200 by the API (default: 25).
	PerPage int `mapstructure:"per_page"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error,
	// fatal, panic (default: info).
	Level string `mapstructure:"level"`
	// Format is the log output format: json or console (default: json).
	Format string `mapstructure:"format"`
	// Output is the log destination: stdout or stderr (default: stdout).
	Output string `mapstructure:"output"`
	// AddSource includes the source file and line in log entries (default: false).
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format (default: RFC3339).
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled turns the Prometheus metrics server on or off (default: true).
	Enabled bool `mapstructure:"enabled"`
	// Path is the metrics endpoint path (default: /metrics).
	Path string `mapstructure:"path"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// MetricsAddress returns the metrics server address.
func (c *ServerConfig) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("OPENALEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if present
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/openalex-explorer")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Viper only matches the prefixed form (OPENALEX_API_EMAIL); accept the
	// shorter OPENALEX_EMAIL as well.
	loadEmail(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadEmail falls back to the OPENALEX_EMAIL environment variable when no
// contact email is configured.
func loadEmail(cfg *Config) {
	if cfg.API.Email == "" {
		cfg.API.Email = os.Getenv("OPENALEX_EMAIL")
	}
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.metrics_port", 9091)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// OpenAlex API defaults
	v.SetDefault("api.base_url", "https://api.openalex.org")
	v.SetDefault("api.email", "")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.rate_limit", 10.0)
	v.SetDefault("api.burst_size", 10)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.retry_delay", "1s")
	v.SetDefault("api.per_page", 25)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	// Validate server ports
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.Server.MetricsPort)
	}

	// Validate API config
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}
	if c.API.RateLimit <= 0 {
		return fmt.Errorf("API rate limit must be positive")
	}
	if c.API.BurstSize < 1 {
		return fmt.Errorf("API burst size must be at least 1")
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("API max retries must not be negative")
	}
	if c.API.PerPage < 1 || c.API.PerPage > 200 {
		return fmt.Errorf("API per_page must be between 1 and 200, got %d", c.API.PerPage)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
