package display

import "errors"

// Common errors returned by formatters.
var (
	// ErrUnknownFormat is returned by ParseFormat for an unsupported format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrNoDimensions is returned when grouped statistics have no dimensions.
	ErrNoDimensions = errors.New("no dimensions specified")
)
