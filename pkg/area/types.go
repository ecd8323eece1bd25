// Package area coordinates the multi-step operations on areas: switching
// the current area, adding and removing areas, and initialization.
//
// The persisted state (config, current-area pointer, session timer and
// ledger) and the external capabilities (scaffolding, browser launch,
// confirmation, links) are injected, so the whole state machine runs
// against in-memory fakes in tests.
//
// A switch closes the running session against the old area before the
// pointer moves, so no session is attributed to the wrong area. When a
// journal is configured, each step is recorded as it completes and an
// interrupted operation is rolled forward by Recover on the next run.
//
// Example usage:
//
//	svc, err := area.New(area.Config{
//	    Store:      config.NewFileStore(paths.Config()),
//	    Pointer:    state.NewFilePointer(paths.CurrentArea()),
//	    Sessions:   sessions,
//	    Scaffolder: scaffold.New(paths.Base, log),
//	    Launcher:   launcher.New(nil, log),
//	    Links:      scaffolder,
//	    Journal:    j,
//	}, log)
//	if err != nil {
//	    return err
//	}
//	res, err := svc.SwitchTo("math")
package area

import (
	"time"

	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/journal"
	"github.com/0xmhha/iceland/pkg/parser"
	"github.com/0xmhha/iceland/pkg/session"
	"github.com/0xmhha/iceland/pkg/state"
)

// Scaffolder creates and deletes the backing directory of an area.
type Scaffolder interface {
	// Create builds the area's directory tree.
	Create(area string) error

	// Exists reports whether the area has a backing directory.
	Exists(area string) (bool, error)

	// Remove deletes the area's whole directory tree.
	Remove(area string) error
}

// BrowserLauncher starts the browser for an area. Failures are warnings.
type BrowserLauncher interface {
	// Launch substitutes area into template and starts the process.
	// Returns launcher.ErrNoCommand when template is blank.
	Launch(template, area string) error
}

// ConfirmationPrompt asks the user to confirm a destructive operation.
type ConfirmationPrompt interface {
	Confirm(message string) (bool, error)
}

// LinksReader returns the links text shown after a switch.
type LinksReader interface {
	// ReadLinks returns the links of area. ok is false when it has none.
	ReadLinks(area string) (text string, ok bool, err error)
}

// ItemSelector lets the user choose one item from a list.
type ItemSelector interface {
	Select(title string, items []string) (int, error)
}

// Discoverer lists the area-like directories present on disk.
type Discoverer interface {
	Discover() ([]string, error)
}

// Config contains service configuration.
type Config struct {
	// Store persists the area list and browser command.
	Store config.Store

	// Pointer persists the current area.
	Pointer state.Pointer

	// Sessions controls the session timer.
	Sessions session.Manager

	// Scaffolder manages area directories.
	Scaffolder Scaffolder

	// Launcher starts the browser after a switch. Optional.
	Launcher BrowserLauncher

	// Links supplies the links shown after a switch. Optional.
	Links LinksReader

	// Confirm guards RemoveArea. Required for RemoveArea.
	Confirm ConfirmationPrompt

	// Discoverer finds untracked area directories for List. Optional.
	Discoverer Discoverer

	// Journal records multi-step operations. Optional.
	Journal journal.Journal

	// Overrides adjusts the loaded config for the current run, e.g. with
	// environment variables. The adjusted value is never saved.
	Overrides func(*config.Config) *config.Config
}

// SwitchResult describes a completed switch.
type SwitchResult struct {
	// From is the previously current area, if any.
	From string

	// To is the new current area.
	To string

	// Closed is the session recorded for the old area, if one was running
	// and could be closed.
	Closed *parser.SessionRecord

	// Started is the start of the new session.
	Started time.Time

	// Links is the new area's links text, when HasLinks is true.
	Links    string
	HasLinks bool

	// Launched reports whether the browser was started.
	Launched bool

	// Warnings are the non-fatal problems encountered.
	Warnings []string
}

// RemoveResult describes a completed removal.
type RemoveResult struct {
	// Removed is the area that was removed.
	Removed string

	// Closed is the session recorded for the removed area, if it was
	// current with a running timer.
	Closed *parser.SessionRecord

	// Current is the current area afterwards; empty if the pointer was
	// cleared.
	Current string

	// PointerChanged reports whether the pointer was reassigned or cleared.
	PointerChanged bool

	// Warnings are the non-fatal problems encountered.
	Warnings []string
}

// InitResult describes an initialization.
type InitResult struct {
	// ConfigCreated reports whether a config was written.
	ConfigCreated bool

	// Areas is the configured area list.
	Areas []string

	// Current is the current area afterwards.
	Current string

	// Closed is the session recorded because the pointer named an area
	// that is no longer configured.
	Closed *parser.SessionRecord

	Warnings []string
}

// Entry is one row of a listing.
type Entry struct {
	Name string `json:"name"`

	// Current marks the current area.
	Current bool `json:"current"`

	// Missing reports a configured area without a backing directory.
	Missing bool `json:"missing"`

	// Recorded is the time in the ledger for this area, in whole seconds.
	Recorded int64 `json:"recorded_seconds"`
}

// Listing is the result of List.
type Listing struct {
	Areas []Entry `json:"areas"`

	// Current is the pointer value; it may name an area no longer
	// configured.
	Current string `json:"current,omitempty"`

	// Untracked are directories under the base directory that are not
	// configured areas.
	Untracked []string `json:"untracked,omitempty"`
}

// Status describes the current area and the session timer.
type Status struct {
	Current string `json:"current,omitempty"`

	// Known reports whether Current is a configured area.
	Known bool `json:"known"`

	// Active is the running session, if any.
	Active *session.Active `json:"active,omitempty"`

	// TimerError is set when the timer value cannot be read.
	TimerError string `json:"timer_error,omitempty"`
}

// Recovered describes an interrupted operation completed by Recover.
type Recovered struct {
	Op       journal.Op
	Warnings []string

	// Discarded is set when the operation could not be completed and was
	// dropped instead.
	Discarded bool
}
