// Package display provides output formatting for session statistics,
// history, area listings and status.
//
// It supports multiple output formats (table, JSON, simple text). Durations
// are shown as H:MM with hours and minutes rounded down, so a total never
// reads longer than the recorded time.
package display

import (
	"io"
	"time"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/area"
	"github.com/0xmhha/iceland/pkg/parser"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays data in a formatted table.
	FormatTable Format = "table"

	// FormatJSON displays data as JSON.
	FormatJSON Format = "json"

	// FormatSimple displays data in simple text format.
	FormatSimple Format = "simple"
)

// Formatter formats and displays session data.
type Formatter interface {
	// FormatStats formats overall statistics.
	//
	// Parameters:
	//   - w: Output writer
	//   - stats: Statistics to format
	//
	// Returns error if formatting fails.
	FormatStats(w io.Writer, stats aggregator.Statistics) error

	// FormatGroupedStats formats grouped statistics in the given order.
	//
	// Parameters:
	//   - w: Output writer
	//   - grouped: Grouped statistics to format
	//   - dimensions: Dimensions the statistics are grouped by
	//
	// Returns error if formatting fails.
	FormatGroupedStats(w io.Writer, grouped []aggregator.GroupStats, dimensions []aggregator.Dimension) error

	// FormatHistory formats session records in the given order.
	FormatHistory(w io.Writer, records []parser.SessionRecord) error

	// FormatListing formats the configured areas.
	FormatListing(w io.Writer, listing *area.Listing) error

	// FormatStatus formats the current area and running session.
	FormatStatus(w io.Writer, status *area.Status) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// ShowPercentiles enables percentile display.
	ShowPercentiles bool

	// ShowTimestamps enables first/last timestamp display.
	ShowTimestamps bool

	// Compact enables compact output (less whitespace).
	// Default: false.
	Compact bool

	// Styled renders table headers with terminal styling. Enable only
	// when writing to a terminal.
	Styled bool

	// Location is used to display timestamps (default: time.Local).
	Location *time.Location
}
