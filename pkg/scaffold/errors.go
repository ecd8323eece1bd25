package scaffold

import "errors"

// Common errors returned by the scaffold package.
var (
	// ErrAreaMissing is returned when an area has no backing directory.
	ErrAreaMissing = errors.New("area directory does not exist")

	// ErrNoNotesDir is returned when an area has no notes directory.
	ErrNoNotesDir = errors.New("area has no notes folder")

	// ErrEmptyNote is returned when appending a blank note.
	ErrEmptyNote = errors.New("note text is empty")
)
