package parser

import (
	"errors"
	"strconv"
)

// Common errors returned by the parser package.
var (
	// ErrInvalidTimestamp is returned when a timestamp is empty or not RFC 3339.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrColumnCount is returned when a ledger row does not have exactly
	// area, start and end columns.
	ErrColumnCount = errors.New("wrong column count")

	// ErrEmptyArea is returned when a ledger row has an empty area name.
	ErrEmptyArea = errors.New("empty area name")

	// ErrEndBeforeStart is returned when a record ends before it starts.
	ErrEndBeforeStart = errors.New("session ends before it starts")

	// ErrMalformedRow is returned when a line is not valid CSV.
	ErrMalformedRow = errors.New("malformed CSV row")
)

// ParseError provides context about a parsing failure.
type ParseError struct {
	Line int    // Line number where error occurred (1-indexed, 0 if unknown)
	Data string // The offending text (truncated if too long)
	Err  error  // Underlying error
}

func (e *ParseError) Error() string {
	const maxLen = 100
	data := e.Data
	if len(data) > maxLen {
		data = data[:maxLen] + "..."
	}

	if e.Line > 0 {
		return "parse error at line " + strconv.Itoa(e.Line) + ": " + strconv.Quote(data) + ": " + e.Err.Error()
	}
	return "parse error: " + strconv.Quote(data) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
