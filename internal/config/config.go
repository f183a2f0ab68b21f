// Package config loads client settings from an optional YAML file, a .env
// file and RANKPREDICT_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the full client configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServiceConfig points at the prediction service. The base URL is fixed for
// the lifetime of the process.
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig selects the presentation renderer (text, html, json).
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

const (
	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultTimeout = 30 * time.Second
)

func (c *Config) validate() error {
	raw := strings.TrimSpace(c.Service.BaseURL)
	if raw == "" {
		return fmt.Errorf("service.base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("service.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("service.base_url: host is required")
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must not be negative")
	}
	switch c.Output.Format {
	case "text", "html", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	return nil
}
