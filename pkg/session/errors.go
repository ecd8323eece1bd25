package session

import "errors"

// Common errors returned by the session manager.
var (
	// ErrNoActiveSession is returned when stopping without a running timer.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionAlreadyActive is returned when starting while a timer runs.
	ErrSessionAlreadyActive = errors.New("a session is already active")

	// ErrNoCurrentArea is returned when no area is current.
	ErrNoCurrentArea = errors.New("no current area, switch to an area first")
)
