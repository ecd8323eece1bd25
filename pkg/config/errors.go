package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrCorrupt is returned when a persisted config cannot be parsed into
	// the expected schema. Unlike a missing file, this is fatal.
	ErrCorrupt = errors.New("config is corrupt")

	// ErrConfigNotFound is returned by LoadFile when the file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidAreaName is returned for names that are empty or would
	// escape the base directory.
	ErrInvalidAreaName = errors.New("invalid area name")

	// ErrDuplicateArea is returned when an area is listed twice.
	ErrDuplicateArea = errors.New("duplicate area")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")
)
