// Package config provides configuration loading and validation for the insights client.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DefaultBackendURL is used when neither the environment nor a config file names a backend.
const DefaultBackendURL = "http://127.0.0.1:8000"

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the client configuration. It is resolved once at startup and passed
// to the client; nothing reads the environment after that.
type Config struct {
	// Backend
	BackendURL string `json:"backend_url,omitempty"` // Base URL of the analytics backend
	Timeout    string `json:"timeout,omitempty"`     // Request timeout as a Go duration ("30s"); empty means transport default

	// Behavior
	SkipValidation bool   `json:"skip_validation,omitempty"` // Trust 2xx bodies without schema checks
	Output         string `json:"output,omitempty"`          // text or json
	Verbose        bool   `json:"verbose,omitempty"`         // Debug logging

	// Logging
	LogLevel    string `json:"log_level,omitempty"`   // debug, info, warn, error
	Environment string `json:"environment,omitempty"` // development or production
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BackendURL:  DefaultBackendURL,
		Output:      OutputText,
		LogLevel:    "info",
		Environment: "development",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg, _, err := loadFile(path)
	return cfg, err
}

// fileSwitches records which boolean settings a config file spells out,
// so an explicit false can override the environment.
type fileSwitches struct {
	SkipValidation *bool `json:"skip_validation"`
	Verbose        *bool `json:"verbose"`
}

func loadFile(path string) (*Config, *fileSwitches, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	var switches fileSwitches
	if err := json.Unmarshal(data, &switches); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, &switches, nil
}

// Load resolves the configuration with precedence config file > environment > defaults.
// This holds for booleans too: "skip_validation": false in the file switches off
// SKIP_RESPONSE_VALIDATION=true. An empty path skips the config file.
func Load(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	switches := &fileSwitches{}
	if path != "" {
		cfg, switches, err = loadFile(path)
		if err != nil {
			return nil, err
		}
	}

	merged := cfg.MergeWithDefaults(*env)
	merged = merged.MergeWithDefaults(Defaults())

	if switches.SkipValidation != nil {
		merged.SkipValidation = *switches.SkipValidation
	}
	if switches.Verbose != nil {
		merged.Verbose = *switches.Verbose
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: 'backend_url' must be an absolute http(s) URL, got %q", c.BackendURL)
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	switch c.Output {
	case "", OutputText, OutputJSON:
	default:
		return fmt.Errorf("config error: 'output' must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config error: 'timeout' is not a duration: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.Timeout == "" {
		result.Timeout = defaults.Timeout
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.Environment == "" {
		result.Environment = defaults.Environment
	}

	// Bool fields: true anywhere wins. Load applies explicit file values afterwards.
	result.SkipValidation = result.SkipValidation || defaults.SkipValidation
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
