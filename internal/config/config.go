// Package config loads the till client configuration from till.yml.
// Every field has a sensible default so the file is optional; the
// TILL_API_URL environment variable overrides the configured base URL.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides api_base_url when set.
const EnvAPIURL = "TILL_API_URL"

const (
	defaultAPIBaseURL     = "http://localhost:8000"
	defaultRequestTimeout = 10 * time.Second
	defaultOrderLimit     = 10
)

// Config is the top-level till.yml configuration.
type Config struct {
	// APIBaseURL is the root of the POS service, without a trailing slash.
	APIBaseURL string `yaml:"api_base_url"`

	// RequestTimeout bounds each HTTP request, as a Go duration string
	// ("10s", "1m"). There is no retry policy: a request that times out is
	// surfaced to the user, never re-issued.
	RequestTimeout string `yaml:"request_timeout,omitempty"`

	// OrderLimit is the default number of orders shown by history views.
	OrderLimit int `yaml:"order_limit,omitempty"`

	timeout time.Duration
}

// Default returns the configuration used when no till.yml exists.
func Default() *Config {
	return &Config{
		APIBaseURL: defaultAPIBaseURL,
		OrderLimit: defaultOrderLimit,
		timeout:    defaultRequestTimeout,
	}
}

// DefaultPath returns the per-user location of till.yml
// (e.g. ~/.config/till/till.yml on Linux).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(configDir, "till", "till.yml"), nil
}

// Load reads and validates till.yml from the specified path. A missing file
// yields the defaults; a present but invalid file is an error. The
// TILL_API_URL environment variable takes precedence over the file in
// either case.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if envURL := os.Getenv(EnvAPIURL); envURL != "" {
		config.APIBaseURL = envURL
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Validate checks the configuration and fills derived fields.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url is required")
	}

	if c.RequestTimeout == "" {
		c.timeout = defaultRequestTimeout
	} else {
		timeout, err := time.ParseDuration(c.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
		}
		c.timeout = timeout
	}

	if c.OrderLimit < 0 {
		return fmt.Errorf("order_limit must be >= 0, got %d", c.OrderLimit)
	}
	if c.OrderLimit == 0 {
		c.OrderLimit = defaultOrderLimit
	}

	return nil
}

// Timeout returns the parsed request timeout. Valid only after a
// successful Validate (Load always validates).
func (c *Config) Timeout() time.Duration {
	if c.timeout == 0 {
		return defaultRequestTimeout
	}
	return c.timeout
}
