package display

import (
	"fmt"
	"io"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/area"
	"github.com/0xmhha/iceland/pkg/parser"
)

// simpleFormatter formats output as simple text.
type simpleFormatter struct {
	config Config
}

// FormatStats implements Formatter.FormatStats.
func (f *simpleFormatter) FormatStats(w io.Writer, stats aggregator.Statistics) error {
	_, err := fmt.Fprintf(w, "Sessions: %d | Total: %s | Avg: %s | Min: %s | Max: %s\n",
		stats.Count,
		formatDuration(stats.Total),
		formatDuration(stats.Avg),
		formatDuration(stats.Min),
		formatDuration(stats.Max))
	return err
}

// FormatGroupedStats implements Formatter.FormatGroupedStats.
func (f *simpleFormatter) FormatGroupedStats(w io.Writer, grouped []aggregator.GroupStats, dimensions []aggregator.Dimension) error {
	if err := validateDimensions(dimensions); err != nil {
		return err
	}

	for _, g := range grouped {
		if _, err := fmt.Fprintf(w, "%s: %s h (%d sessions)\n",
			g.Key,
			formatDuration(g.Statistics.Total),
			g.Statistics.Count); err != nil {
			return err
		}
	}

	return nil
}

// FormatHistory implements Formatter.FormatHistory.
func (f *simpleFormatter) FormatHistory(w io.Writer, records []parser.SessionRecord) error {
	for _, rec := range records {
		if _, err := fmt.Fprintf(w, "%s %s - %s (%s)\n",
			rec.Area,
			formatTime(rec.Start, f.config.Location),
			formatTime(rec.End, f.config.Location),
			formatDuration(rec.Duration())); err != nil {
			return err
		}
	}

	return nil
}

// FormatListing implements Formatter.FormatListing.
func (f *simpleFormatter) FormatListing(w io.Writer, listing *area.Listing) error {
	for _, e := range listing.Areas {
		line := e.Name
		if e.Current {
			line += " (current)"
		}
		if e.Missing {
			line += " (missing)"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, name := range listing.Untracked {
		if _, err := fmt.Fprintf(w, "%s (untracked)\n", name); err != nil {
			return err
		}
	}

	return nil
}

// FormatStatus implements Formatter.FormatStatus.
func (f *simpleFormatter) FormatStatus(w io.Writer, status *area.Status) error {
	if _, err := fmt.Fprintf(w, "Current area: %s\n", currentLabel(status)); err != nil {
		return err
	}

	if status.Active != nil {
		_, err := fmt.Fprintf(w, "Session: running for %s (since %s)\n",
			formatElapsed(status.Active.Elapsed),
			formatTime(status.Active.Start, f.config.Location))
		return err
	}

	_, err := fmt.Fprintf(w, "Session: %s\n", sessionLabel(status))
	return err
}
