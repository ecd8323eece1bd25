package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the ICELAND_* environment overrides.
type Env struct {
	// Home replaces the base directory (~/.iceland).
	Home string `env:"ICELAND_HOME"`

	LogLevel  string `env:"ICELAND_LOG_LEVEL"`
	LogOutput string `env:"ICELAND_LOG_OUTPUT"`
	LogFormat string `env:"ICELAND_LOG_FORMAT"`

	// BrowserCommand replaces the configured launch template.
	BrowserCommand string `env:"ICELAND_BROWSER_COMMAND"`
}

// ParseEnv reads the overrides from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

// ParseEnvMap reads the overrides from a fixed map instead of the process
// environment.
func ParseEnvMap(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

// Apply returns a copy of cfg with the non-empty overrides applied.
// The result is used for the current run only and is never saved.
func (e Env) Apply(cfg *Config) *Config {
	result := cfg.Clone()

	if e.LogLevel != "" {
		result.Logging.Level = e.LogLevel
	}
	if e.LogOutput != "" {
		result.Logging.Output = e.LogOutput
	}
	if e.LogFormat != "" {
		result.Logging.Format = e.LogFormat
	}
	if e.BrowserCommand != "" {
		result.BrowserCommand = e.BrowserCommand
	}

	return result
}
