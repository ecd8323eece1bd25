// Package parser defines the completed-session record and the text codec
// shared by the session ledger and the session timer.
//
// Timestamps are written in RFC 3339 with the local zone offset, which keeps
// them sortable and zone-aware. Ledger rows are CSV triples of
// area,start,end under a fixed header.
//
// Example usage:
//
//	rec, err := parser.ParseLine(`work,2024-01-15T10:00:00+01:00,2024-01-15T11:00:00+01:00`, 2)
//	if err != nil {
//	    var perr *parser.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println("bad row at line", perr.Line)
//	    }
//	}
//	fmt.Println(rec.Area, rec.Duration())
package parser

import (
	"strings"
	"time"
)

// SessionRecord is one completed session: the area that was current while
// the timer ran, and the start and end of the interval.
//
// Invariant: Area is not empty.
// Invariant: Start and End are not zero and Start <= End.
type SessionRecord struct {
	Area  string    `json:"area"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start. It is never negative for a valid record.
func (r SessionRecord) Duration() time.Duration {
	d := r.End.Sub(r.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Seconds returns the record's duration in whole seconds.
func (r SessionRecord) Seconds() int64 {
	return int64(r.Duration() / time.Second)
}

// Validate checks if the record satisfies all invariants.
func (r SessionRecord) Validate() error {
	if strings.TrimSpace(r.Area) == "" {
		return ErrEmptyArea
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidTimestamp
	}
	if r.End.Before(r.Start) {
		return ErrEndBeforeStart
	}
	return nil
}
