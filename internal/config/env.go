package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envSpec mirrors the environment variables read at startup.
type envSpec struct {
	BackendURL       string `envconfig:"BACKEND_URL"`
	LegacyBackendURL string `envconfig:"VITE_BACKEND_URL"` // name used by the web frontend
	Timeout          string `envconfig:"BACKEND_TIMEOUT"`
	SkipValidation   bool   `envconfig:"SKIP_RESPONSE_VALIDATION" default:"false"`
	LogLevel         string `envconfig:"LOG_LEVEL"`
	Environment      string `envconfig:"ENVIRONMENT"`
}

// FromEnv reads the configuration from environment variables.
// BACKEND_URL wins over VITE_BACKEND_URL; unset fields stay empty so callers can layer defaults.
func FromEnv() (*Config, error) {
	var spec envSpec
	if err := envconfig.Process("", &spec); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	backendURL := spec.BackendURL
	if backendURL == "" {
		backendURL = spec.LegacyBackendURL
	}

	return &Config{
		BackendURL:     backendURL,
		Timeout:        spec.Timeout,
		SkipValidation: spec.SkipValidation,
		LogLevel:       spec.LogLevel,
		Environment:    spec.Environment,
	}, nil
}
