package config

import (
	"path/filepath"
	"strings"
)

// File names inside the base directory.
const (
	ConfigFile       = "config.yaml"
	CurrentAreaFile  = "current_area"
	SessionStartFile = "session_start"
	SessionsFile     = "sessions.csv"
	StateDBFile      = "state.db"
)

// stateFiles lists every name iceland keeps next to the area directories.
var stateFiles = []string{ConfigFile, CurrentAreaFile, SessionStartFile, SessionsFile, StateDBFile}

// IsStateFile reports whether name collides with a state file in the base
// directory. The match ignores case so it also holds on case-insensitive
// filesystems.
func IsStateFile(name string) bool {
	for _, f := range stateFiles {
		if strings.EqualFold(name, f) {
			return true
		}
	}
	return false
}

// Paths resolves every persisted object relative to one base directory.
type Paths struct {
	Base string
}

// NewPaths returns Paths rooted at base, or at DefaultBaseDir when base is empty.
func NewPaths(base string) Paths {
	if base == "" {
		base = DefaultBaseDir()
	}
	return Paths{Base: base}
}

// Config returns the config file path.
func (p Paths) Config() string { return filepath.Join(p.Base, ConfigFile) }

// CurrentArea returns the current-area pointer file path.
func (p Paths) CurrentArea() string { return filepath.Join(p.Base, CurrentAreaFile) }

// SessionStart returns the active timer file path.
func (p Paths) SessionStart() string { return filepath.Join(p.Base, SessionStartFile) }

// Sessions returns the session ledger file path.
func (p Paths) Sessions() string { return filepath.Join(p.Base, SessionsFile) }

// StateDB returns the lock and journal database path.
func (p Paths) StateDB() string { return filepath.Join(p.Base, StateDBFile) }

// Area returns the backing directory of an area.
func (p Paths) Area(name string) string { return filepath.Join(p.Base, name) }
