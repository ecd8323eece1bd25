package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"
)

// TimestampLayout is the persisted timestamp format.
const TimestampLayout = time.RFC3339

// Header is the first row of the ledger file.
var Header = []string{"area", "start", "end"}

// FormatTimestamp renders t for persistence, truncated to whole seconds.
func FormatTimestamp(t time.Time) string {
	return t.Truncate(time.Second).Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp. Surrounding whitespace is
// ignored; fractional seconds written by other tools are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Data: s, Err: ErrInvalidTimestamp}
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &ParseError{Data: s, Err: ErrInvalidTimestamp}
	}
	return t, nil
}

// EncodeRecord returns the CSV fields for rec.
func EncodeRecord(rec SessionRecord) []string {
	return []string{rec.Area, FormatTimestamp(rec.Start), FormatTimestamp(rec.End)}
}

// DecodeRecord converts CSV fields back into a validated record.
func DecodeRecord(fields []string) (SessionRecord, error) {
	if len(fields) != len(Header) {
		return SessionRecord{}, ErrColumnCount
	}

	start, err := ParseTimestamp(fields[1])
	if err != nil {
		return SessionRecord{}, ErrInvalidTimestamp
	}
	end, err := ParseTimestamp(fields[2])
	if err != nil {
		return SessionRecord{}, ErrInvalidTimestamp
	}

	rec := SessionRecord{
		Area:  strings.TrimSpace(fields[0]),
		Start: start,
		End:   end,
	}
	if err := rec.Validate(); err != nil {
		return SessionRecord{}, err
	}
	return rec, nil
}

// IsHeader reports whether fields is the ledger header row.
func IsHeader(fields []string) bool {
	if len(fields) != len(Header) {
		return false
	}
	for i, h := range Header {
		if strings.TrimSpace(fields[i]) != h {
			return false
		}
	}
	return true
}

// SplitLine splits a single ledger line into CSV fields.
func SplitLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMalformedRow
	}
	if err != nil {
		return nil, ErrMalformedRow
	}
	return fields, nil
}

// ParseLine parses one ledger line. lineNum is used for error context only.
// Every failure is returned as a *ParseError.
func ParseLine(line string, lineNum int) (SessionRecord, error) {
	fields, err := SplitLine(line)
	if err != nil {
		return SessionRecord{}, &ParseError{Line: lineNum, Data: line, Err: err}
	}

	rec, err := DecodeRecord(fields)
	if err != nil {
		return SessionRecord{}, &ParseError{Line: lineNum, Data: line, Err: err}
	}
	return rec, nil
}
