// Package config provides the persisted iceland configuration: the ordered
// list of known areas, the browser-launch command template and logging
// settings.
//
// Configuration is resolved with the following precedence:
// 1. Environment variables (ICELAND_*)
// 2. Configuration file (<base>/config.yaml)
// 3. Default values
//
// A missing file is not an error: Load returns the defaults without writing
// anything. A file that cannot be parsed into the expected schema is fatal
// (ErrCorrupt).
//
// Example usage:
//
//	store := config.NewFileStore(paths.Config())
//	cfg, err := store.Load()
//	if err != nil {
//	    return err
//	}
//	cfg.Areas = append(cfg.Areas, "music")
//	if err := store.Save(cfg); err != nil {
//	    return err
//	}
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/0xmhha/iceland/pkg/logger"
)

// AreaPlaceholder is replaced by the area name in BrowserCommand.
const AreaPlaceholder = "{area}"

// Config represents the complete application configuration.
//
// Invariants:
// - Areas are unique valid area names; order is display and default order
// - Logging level and format, when set, are recognized values.
type Config struct {
	// Areas is the ordered list of known area names.
	Areas []string `yaml:"areas" json:"areas"`

	// BrowserCommand is launched after a switch, e.g. "firefox -P {area}".
	// Empty disables the launch.
	BrowserCommand string `yaml:"browser_command" json:"browser_command"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output" json:"output"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format"`
}

// Store loads and saves the whole configuration.
//
// There are no partial updates: callers merge their change into a full
// Config value and Save it, which replaces the previous content.
type Store interface {
	// Load returns the persisted configuration, or the defaults when none
	// has been persisted yet.
	//
	// Returns ErrCorrupt if persisted data does not match the schema.
	Load() (*Config, error)

	// Save validates cfg and replaces the persisted configuration.
	Save(cfg *Config) error

	// Exists reports whether a configuration has been persisted.
	Exists() (bool, error)
}

// Validate checks if the configuration satisfies all invariants.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Areas))
	for _, area := range c.Areas {
		if err := ValidateAreaName(area); err != nil {
			return err
		}
		if seen[area] {
			return fmt.Errorf("%w: %q", ErrDuplicateArea, area)
		}
		seen[area] = true
	}

	if c.Logging.Level != "" && !logger.ValidLevel(c.Logging.Level) {
		return ErrInvalidLogLevel
	}
	if c.Logging.Format != "" && !logger.ValidFormat(c.Logging.Format) {
		return ErrInvalidLogFormat
	}

	return nil
}

// HasArea reports whether name is a configured area.
func (c *Config) HasArea(name string) bool {
	return slices.Contains(c.Areas, name)
}

// FirstArea returns the first configured area, if any.
func (c *Config) FirstArea() (string, bool) {
	if len(c.Areas) == 0 {
		return "", false
	}
	return c.Areas[0], true
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Areas = slices.Clone(c.Areas)
	return &out
}

// ValidateAreaName checks that name can be used both as a list entry and
// as a directory name under the base directory.
func ValidateAreaName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAreaName)
	case name != strings.TrimSpace(name):
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidAreaName, name)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidAreaName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q must not start with a dot", ErrInvalidAreaName, name)
	case strings.ContainsAny(name, `/\`+"\n\r\x00"):
		return fmt.Errorf("%w: %q contains a path separator or control character", ErrInvalidAreaName, name)
	case IsStateFile(name):
		return fmt.Errorf("%w: %q is reserved for iceland state", ErrInvalidAreaName, name)
	}
	return nil
}
