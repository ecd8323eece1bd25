package area

import "errors"

// Common errors returned by the area service.
var (
	// ErrAreaNotFound is returned for an area that is not configured or has
	// no backing directory.
	ErrAreaNotFound = errors.New("area not found")

	// ErrAreaAlreadyExists is returned when adding a configured area.
	ErrAreaAlreadyExists = errors.New("area already exists")

	// ErrAborted is returned when the user declines a confirmation.
	ErrAborted = errors.New("aborted")

	// ErrNoConfirmation is returned when RemoveArea has no prompt to ask.
	ErrNoConfirmation = errors.New("no confirmation prompt configured")
)
