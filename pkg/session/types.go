// Package session provides the session timer: starting, inspecting and
// stopping the single in-progress session.
//
// A started session is not a completed session. Nothing is written to the
// ledger until Stop, which closes the interval at the current time and
// appends it. The record's area is the current area at stop time; callers
// that change the current area close the running session first, so that
// is also the area that was current when the session started.
//
// Example usage:
//
//	mgr, err := session.New(session.Config{
//	    Pointer: state.NewFilePointer(paths.CurrentArea()),
//	    Timer:   state.NewFileTimer(paths.SessionStart()),
//	    Ledger:  ledger.New(ledger.Config{Path: paths.Sessions()}, log),
//	}, log)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := mgr.Start("work"); err != nil {
//	    return err
//	}
//	// ... later
//	rec, err := mgr.Stop()
package session

import (
	"time"

	"github.com/0xmhha/iceland/pkg/ledger"
	"github.com/0xmhha/iceland/pkg/parser"
	"github.com/0xmhha/iceland/pkg/state"
)

// Active describes the running session.
type Active struct {
	// Area is the current area the session is attributed to.
	Area string `json:"area"`

	// Start is when the session started.
	Start time.Time `json:"start"`

	// Elapsed is the time since Start, never negative.
	Elapsed time.Duration `json:"elapsed"`
}

// Manager controls the session timer.
type Manager interface {
	// Start starts a session for area at the current time. The area is
	// only used for validation and logging; Stop attributes the session to
	// whatever area is current then.
	//
	// Returns error if:
	//   - ErrNoCurrentArea: area is empty
	//   - ErrSessionAlreadyActive: a timer value already exists
	//   - *parser.ParseError: the stored timer value is unreadable
	Start(area string) (time.Time, error)

	// Stop closes the running session at the current time, appends the
	// record to the ledger and then clears the timer. If the append fails
	// the timer is kept, so the session can be stopped again.
	//
	// Returns error if:
	//   - ErrNoActiveSession: no timer value exists
	//   - ErrNoCurrentArea: there is no area to attribute the session to
	//   - *parser.ParseError: the stored timer value is unreadable
	Stop() (parser.SessionRecord, error)

	// Active returns the running session, or nil if there is none.
	Active() (*Active, error)

	// Discard clears the timer without recording anything.
	Discard() error
}

// Config contains session manager configuration.
type Config struct {
	// Pointer supplies the current area.
	Pointer state.Pointer

	// Timer persists the start instant.
	Timer state.TimerStore

	// Ledger receives completed sessions.
	Ledger ledger.Ledger

	// Now returns the current time (default: time.Now).
	Now func() time.Time
}
