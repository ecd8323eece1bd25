package display

import (
	"encoding/json"
	"io"
	"time"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/area"
	"github.com/0xmhha/iceland/pkg/parser"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

// durationJSON is a duration shown both as seconds and as H:MM.
type durationJSON struct {
	Seconds int64  `json:"seconds"`
	Display string `json:"display"`
}

type historyJSON struct {
	Area     string       `json:"area"`
	Start    string       `json:"start"`
	End      string       `json:"end"`
	Duration durationJSON `json:"duration"`
}

type groupJSON struct {
	Key      string            `json:"key"`
	Values   map[string]string `json:"values"`
	Sessions int               `json:"sessions"`
	Total    durationJSON      `json:"total"`
	Avg      durationJSON      `json:"avg"`
}

// FormatStats implements Formatter.FormatStats.
func (f *jsonFormatter) FormatStats(w io.Writer, stats aggregator.Statistics) error {
	return f.encode(w, stats)
}

// FormatGroupedStats implements Formatter.FormatGroupedStats.
func (f *jsonFormatter) FormatGroupedStats(w io.Writer, grouped []aggregator.GroupStats, dimensions []aggregator.Dimension) error {
	if err := validateDimensions(dimensions); err != nil {
		return err
	}

	out := make([]groupJSON, len(grouped))
	for i, g := range grouped {
		values := make(map[string]string, len(g.Values))
		for d, v := range g.Values {
			values[string(d)] = v
		}
		out[i] = groupJSON{
			Key:      g.Key,
			Values:   values,
			Sessions: g.Statistics.Count,
			Total:    toDurationJSON(int64(g.Statistics.Total.Seconds())),
			Avg:      toDurationJSON(int64(g.Statistics.Avg.Seconds())),
		}
	}

	return f.encode(w, out)
}

// FormatHistory implements Formatter.FormatHistory.
func (f *jsonFormatter) FormatHistory(w io.Writer, records []parser.SessionRecord) error {
	out := make([]historyJSON, len(records))
	for i, rec := range records {
		out[i] = historyJSON{
			Area:     rec.Area,
			Start:    parser.FormatTimestamp(rec.Start),
			End:      parser.FormatTimestamp(rec.End),
			Duration: toDurationJSON(rec.Seconds()),
		}
	}

	return f.encode(w, out)
}

// FormatListing implements Formatter.FormatListing.
func (f *jsonFormatter) FormatListing(w io.Writer, listing *area.Listing) error {
	return f.encode(w, listing)
}

// FormatStatus implements Formatter.FormatStatus.
func (f *jsonFormatter) FormatStatus(w io.Writer, status *area.Status) error {
	return f.encode(w, status)
}

func (f *jsonFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(v)
}

func toDurationJSON(secs int64) durationJSON {
	return durationJSON{
		Seconds: secs,
		Display: aggregator.FormatDuration(time.Duration(secs) * time.Second),
	}
}
