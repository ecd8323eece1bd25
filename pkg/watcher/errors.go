package watcher

import "errors"

// Errors returned by the watcher.
var (
	// ErrWatcherClosed is returned by every method after Close.
	ErrWatcherClosed = errors.New("state watcher is closed")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("state watcher already started")

	// ErrNotStarted is returned by Stop before Start.
	ErrNotStarted = errors.New("state watcher not started")

	// ErrCircuitBreakerOpen is sent on Errors once fsnotify keeps failing.
	ErrCircuitBreakerOpen = errors.New("state watcher keeps failing")

	// ErrInvalidPath is returned when the directory to watch is missing
	// or is not a directory.
	ErrInvalidPath = errors.New("invalid watch directory")
)
