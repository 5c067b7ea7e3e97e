package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding the config file
const (
	EnvAPIKey = "DD_API_KEY"
	EnvAppKey = "DD_APP_KEY"
	EnvAPIURL = "DD_API_URL"
)

// DefaultAPIURL is the Datadog v1 API base used when nothing else is configured
const DefaultAPIURL = "https://api.datadoghq.com/api/v1"

const defaultTimeoutSeconds = 30

// Config holds process-wide settings for the Datadog client. It is
// established once at startup and read-only afterwards.
type Config struct {
	// APIKey is sent as the DD-API-KEY header
	APIKey string `yaml:"api_key"`
	// AppKey is sent as the DD-APPLICATION-KEY header
	AppKey string `yaml:"app_key"`
	// APIURL is the API base, e.g. https://api.datadoghq.com/api/v1
	APIURL string `yaml:"api_url"`
	// TimeoutSeconds bounds each outbound HTTP request
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Load reads the optional YAML config file at path, then applies
// environment overrides and defaults. An empty path skips the file.
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

	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvAppKey); v != "" {
		cfg.AppKey = v
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}

	return cfg, nil
}

// Validate checks that the credentials required by every request are present
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("Datadog API key is required (set %s or api_key in the config file)", EnvAPIKey)
	}
	if c.AppKey == "" {
		return fmt.Errorf("Datadog application key is required (set %s or app_key in the config file)", EnvAppKey)
	}
	return nil
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
