package config

import (
	"os"
	"path/filepath"
	"slices"
)

// DefaultAreas are created by init when no config exists.
var DefaultAreas = []string{"work", "math", "learning", "gaming", "traveling", "trading"}

// DefaultBrowserCommand opens a per-area Firefox profile.
const DefaultBrowserCommand = "firefox -P " + AreaPlaceholder

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Areas:          slices.Clone(DefaultAreas),
		BrowserCommand: DefaultBrowserCommand,
		Logging: LoggingConfig{
			Level:  "warn",
			Output: "stderr",
			Format: "text",
		},
	}
}

// DefaultBaseDir returns the default state directory.
//
// Returns: ~/.iceland.
func DefaultBaseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".iceland"
	}

	return filepath.Join(homeDir, ".iceland")
}
