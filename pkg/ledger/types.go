// Package ledger provides the append-only session ledger.
//
// The ledger is a CSV file with the header row "area,start,end" followed by
// one completed session per row, in the order sessions were closed. Rows
// are only ever appended; existing content is never reordered or
// rewritten.
//
// Reads come in two flavors. Strict reads fail on the first malformed row
// with a *parser.ParseError. Tolerant reads, used by stats and history,
// skip malformed rows and report them alongside the good records, so one
// corrupted historical row does not hide the rest of the history.
//
// Example usage:
//
//	l := ledger.New(ledger.Config{Path: paths.Sessions()}, log)
//	if err := l.Append(rec); err != nil {
//	    return err
//	}
//	res, err := l.Load(ledger.Tolerant)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d records, %d skipped\n", len(res.Records), len(res.Skipped))
package ledger

import "github.com/0xmhha/iceland/pkg/parser"

// Mode selects how malformed rows are handled during reads.
type Mode int

const (
	// Tolerant skips malformed rows and reports them in Result.Skipped.
	Tolerant Mode = iota

	// Strict fails on the first malformed row.
	Strict
)

// Result is the outcome of a read.
type Result struct {
	// Records are the parsed rows in ledger order.
	Records []parser.SessionRecord

	// Skipped holds one error per malformed row (Tolerant mode only).
	Skipped []*parser.ParseError

	// Offset is the byte offset just past the last complete line read.
	Offset int64

	// Restarted reports that the ledger shrank or disappeared since the
	// requested offset, so Records start from the beginning again.
	Restarted bool
}

// Ledger is the persisted history of completed sessions.
type Ledger interface {
	// Append adds rec as the last row, writing the header first if the
	// ledger is new or empty.
	Append(rec parser.SessionRecord) error

	// Load reads every record. A ledger that does not exist yet is empty.
	Load(mode Mode) (*Result, error)

	// ReadFrom reads the complete lines starting at byte offset. A partial
	// trailing line is left for the next call. If the ledger shrank below
	// offset, reading restarts from the beginning.
	ReadFrom(offset int64, mode Mode) (*Result, error)
}

// Config contains ledger configuration.
type Config struct {
	// Path is the CSV file path.
	Path string

	// MaxFileSize is the maximum ledger size to read (safety limit).
	// Default: 100MB.
	MaxFileSize int64
}
