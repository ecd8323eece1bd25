package journal

import "errors"

// Common errors returned by the journal.
var (
	// ErrLocked is returned when another process holds the state lock.
	ErrLocked = errors.New("another iceland command is running")

	// ErrPending is returned by Begin while an operation is recorded.
	ErrPending = errors.New("an interrupted operation is pending")

	// ErrNoPending is returned by Advance when nothing is recorded.
	ErrNoPending = errors.New("no pending operation")
)
