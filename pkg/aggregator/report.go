package aggregator

import (
	"fmt"
	"time"

	"github.com/0xmhha/iceland/pkg/parser"
)

// TotalsByArea sums the whole seconds of every record per area. The map
// has no order; callers that display it sort explicitly.
func TotalsByArea(records []parser.SessionRecord) map[string]time.Duration {
	totals := make(map[string]time.Duration)
	for _, rec := range records {
		totals[rec.Area] += time.Duration(rec.Seconds()) * time.Second
	}
	return totals
}

// History returns the records in ledger order, keeping only those for area
// when area is not empty.
func History(records []parser.SessionRecord, area string) []parser.SessionRecord {
	result := make([]parser.SessionRecord, 0, len(records))
	for _, rec := range records {
		if area == "" || rec.Area == area {
			result = append(result, rec)
		}
	}
	return result
}

// Last returns the final n records, or all of them when n <= 0.
func Last(records []parser.SessionRecord, n int) []parser.SessionRecord {
	if n <= 0 || n >= len(records) {
		return records
	}
	return records[len(records)-n:]
}

// FormatDuration renders d as H:MM. Hours and minutes are rounded down,
// so 59 seconds is 0:00 and 1h59m59s is 1:59.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	return fmt.Sprintf("%d:%02d", hours, minutes)
}
