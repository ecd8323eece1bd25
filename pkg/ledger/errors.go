package ledger

import "errors"

// Common errors returned by the ledger.
var (
	// ErrFileTooLarge is returned when the ledger exceeds the maximum size.
	ErrFileTooLarge = errors.New("ledger exceeds maximum size")

	// ErrInvalidOffset is returned when an offset is negative.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidRecord is returned by Append for a record that would not
	// read back.
	ErrInvalidRecord = errors.New("invalid session record")
)
