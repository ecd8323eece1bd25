// Package watcher provides real-time monitoring of the iceland state files.
//
// It uses fsnotify to watch the base directory (not its area
// subdirectories) and debounces events, since a single command rewrites
// several files through temp-file renames.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    DebounceInterval: 100 * time.Millisecond,
//	    Files:            []string{"current_area", "session_start", "sessions.csv"},
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Start(ctx, paths.Base); err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Printf("%s: %s\n", event.Name, event.Op)
//	}
package watcher

import (
	"context"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File created
	OpWrite                 // File modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved
	OpChmod                 // File permissions changed
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Event is a debounced change to one watched file.
type Event struct {
	// Path is the path of the file that changed.
	Path string

	// Name is the base name of Path, e.g. "current_area".
	Name string

	// Op is the operation that triggered the event.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher provides file system monitoring.
type Watcher interface {
	// Start begins watching dir. Events are processed in the background
	// until ctx is cancelled or the watcher is stopped.
	//
	// Returns ErrInvalidPath if dir is not an existing directory.
	Start(ctx context.Context, dir string) error

	// Stop gracefully shuts down the watcher.
	//
	// Returns error if shutdown fails.
	Stop() error

	// Events returns the channel for receiving file system events.
	//
	// Events are debounced based on the configured interval.
	// The channel is closed when the watcher stops.
	Events() <-chan Event

	// Errors returns the channel for receiving watcher errors.
	//
	// Non-fatal errors are sent to this channel.
	// The channel is closed when the watcher stops.
	Errors() <-chan error

	// Close closes the watcher and releases resources.
	//
	// Returns error if resources cannot be released cleanly.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// DebounceInterval is the time to wait before emitting an event.
	// Multiple events for the same file within this interval are coalesced.
	// Default: 100ms.
	DebounceInterval time.Duration

	// Files restricts events to these base names. Empty means every file
	// in the directory.
	Files []string

	// CircuitBreakerThreshold is the number of consecutive fsnotify
	// errors after which ErrCircuitBreakerOpen is reported and further
	// errors are only logged. A delivered event resets the count.
	// Default: 5.
	CircuitBreakerThreshold int
}
