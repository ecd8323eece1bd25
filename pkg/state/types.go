// Package state persists the two small single-value records that make up
// the live state of iceland: the current-area pointer and the start instant
// of the active session timer.
//
// Each value lives in its own file under the base directory and is replaced
// atomically, so a reader never observes a half-written value.
package state

import "time"

// Pointer stores the name of the current area.
//
// The pointer is advisory: it may name an area that has since been removed
// from the config. Callers validate it against the config when it matters.
type Pointer interface {
	// Get returns the current area. ok is false when the pointer is unset.
	Get() (area string, ok bool, err error)

	// Set replaces the current area.
	Set(area string) error

	// Clear unsets the pointer. Clearing an unset pointer is not an error.
	Clear() error
}

// TimerStore stores the start instant of the active session.
type TimerStore interface {
	// Load returns the stored start instant. ok is false when no session is
	// active. A stored value that cannot be parsed yields a
	// *parser.ParseError and leaves the store untouched.
	Load() (start time.Time, ok bool, err error)

	// Save records start as the active session's start instant.
	Save(start time.Time) error

	// Delete clears the timer. Deleting an absent timer is not an error.
	Delete() error
}
