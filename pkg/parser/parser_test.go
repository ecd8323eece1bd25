package parser

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "utc",
			input: "2024-01-15T10:30:00Z",
			want:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "offset with trailing newline",
			input: "2024-01-15T10:30:00+02:00\n",
			want:  time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "2024-01-15T10:30:00.123456789+00:00",
			want:  time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "missing zone", input: "2024-01-15T10:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimestamp) {
					t.Fatalf("ParseTimestamp(%q) error = %v, want ErrInvalidTimestamp", tt.input, err)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Errorf("ParseTimestamp(%q) error is not a *ParseError", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 1, 9, 15, 42, 987654321, zone)

	s := FormatTimestamp(ts)
	if s != "2024-03-01T09:15:42+01:00" {
		t.Errorf("FormatTimestamp() = %q", s)
	}

	back, err := ParseTimestamp(s)
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if !back.Equal(ts.Truncate(time.Second)) {
		t.Errorf("round trip = %v, want %v", back, ts.Truncate(time.Second))
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
		check   func(t *testing.T, rec SessionRecord)
	}{
		{
			name: "valid row",
			line: "work,2024-01-15T10:00:00Z,2024-01-15T11:30:00Z",
			check: func(t *testing.T, rec SessionRecord) {
				if rec.Area != "work" {
					t.Errorf("Area = %q, want work", rec.Area)
				}
				if rec.Seconds() != 5400 {
					t.Errorf("Seconds() = %d, want 5400", rec.Seconds())
				}
			},
		},
		{
			name: "quoted area containing a comma",
			line: `"side, project",2024-01-15T10:00:00Z,2024-01-15T10:01:00Z`,
			check: func(t *testing.T, rec SessionRecord) {
				if rec.Area != "side, project" {
					t.Errorf("Area = %q", rec.Area)
				}
			},
		},
		{
			name: "zero length session",
			line: "math,2024-01-15T10:00:00Z,2024-01-15T10:00:00Z",
			check: func(t *testing.T, rec SessionRecord) {
				if rec.Duration() != 0 {
					t.Errorf("Duration() = %v, want 0", rec.Duration())
				}
			},
		},
		{
			name:    "too few columns",
			line:    "work,2024-01-15T10:00:00Z",
			wantErr: ErrColumnCount,
		},
		{
			name:    "too many columns",
			line:    "work,2024-01-15T10:00:00Z,2024-01-15T11:00:00Z,extra",
			wantErr: ErrColumnCount,
		},
		{
			name:    "bad start timestamp",
			line:    "work,not-a-time,2024-01-15T11:00:00Z",
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "empty area",
			line:    " ,2024-01-15T10:00:00Z,2024-01-15T11:00:00Z",
			wantErr: ErrEmptyArea,
		},
		{
			name:    "end before start",
			line:    "work,2024-01-15T11:00:00Z,2024-01-15T10:00:00Z",
			wantErr: ErrEndBeforeStart,
		},
		{
			name:    "unterminated quote",
			line:    `"work,2024-01-15T10:00:00Z,2024-01-15T11:00:00Z`,
			wantErr: ErrMalformedRow,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: ErrMalformedRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(tt.line, 7)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseLine() error = %v, want %v", err, tt.wantErr)
				}
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseLine() error is not a *ParseError: %v", err)
				}
				if perr.Line != 7 {
					t.Errorf("ParseError.Line = %d, want 7", perr.Line)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestIsHeader(t *testing.T) {
	if !IsHeader([]string{"area", "start", "end"}) {
		t.Error("IsHeader() = false for the header row")
	}
	if IsHeader([]string{"work", "2024-01-15T10:00:00Z", "2024-01-15T11:00:00Z"}) {
		t.Error("IsHeader() = true for a data row")
	}
	if IsHeader([]string{"area", "start"}) {
		t.Error("IsHeader() = true for a short row")
	}
}

func TestEncodeRecord(t *testing.T) {
	rec := SessionRecord{
		Area:  "learning",
		Start: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 15, 10, 45, 0, 0, time.UTC),
	}

	fields := EncodeRecord(rec)
	got, err := DecodeRecord(fields)
	if err != nil {
		t.Fatalf("DecodeRecord() error = %v", err)
	}
	if got.Area != rec.Area || !got.Start.Equal(rec.Start) || !got.End.Equal(rec.End) {
		t.Errorf("DecodeRecord(EncodeRecord()) = %+v, want %+v", got, rec)
	}
}

func TestParseErrorTruncatesData(t *testing.T) {
	err := &ParseError{Line: 3, Data: strings.Repeat("x", 500), Err: ErrColumnCount}
	msg := err.Error()

	if !strings.Contains(msg, "line 3") {
		t.Errorf("Error() = %q, missing line number", msg)
	}
	if len(msg) > 200 {
		t.Errorf("Error() length = %d, want truncated data", len(msg))
	}
}
