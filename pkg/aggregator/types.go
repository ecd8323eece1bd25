// Package aggregator provides session time aggregation and statistics.
//
// It accumulates completed sessions by area and by calendar date, and
// provides summary statistics for reports. Durations are summed in whole
// seconds per record, and rendered as hours and minutes rounded down.
//
// Example usage:
//
//	agg := aggregator.New(aggregator.Config{
//	    GroupBy: []aggregator.Dimension{aggregator.DimArea},
//	})
//
//	for _, rec := range records {
//	    agg.Add(rec)
//	}
//
//	for _, g := range agg.GroupedStats() {
//	    fmt.Printf("%s %s\n", g.Key, aggregator.FormatDuration(g.Statistics.Total))
//	}
package aggregator

import (
	"time"

	"github.com/0xmhha/iceland/pkg/parser"
)

// Dimension represents an aggregation dimension.
type Dimension string

const (
	// DimArea aggregates by area name.
	DimArea Dimension = "area"

	// DimDate aggregates by the session's start date (YYYY-MM-DD).
	DimDate Dimension = "date"
)

// KeySeparator joins dimension values in a group key.
const KeySeparator = "|"

// Aggregator computes session time statistics.
type Aggregator interface {
	// Add adds a completed session to the aggregator.
	Add(rec parser.SessionRecord)

	// Stats returns statistics across all sessions.
	Stats() Statistics

	// GroupedStats returns statistics grouped by the configured
	// dimensions, sorted by total time descending, then by key.
	//
	// Returns nil if no dimensions are configured.
	GroupedStats() []GroupStats

	// Top returns the n groups with the most time. n <= 0 returns all.
	Top(n int) []GroupStats

	// Reset clears all aggregated data.
	Reset()
}

// Statistics contains aggregated session statistics.
type Statistics struct {
	// Count is the number of sessions.
	Count int `json:"count"`

	// Total is the summed session time.
	Total time.Duration `json:"total"`

	// Avg is the mean session length.
	Avg time.Duration `json:"avg"`

	// Min is the shortest session.
	Min time.Duration `json:"min"`

	// Max is the longest session.
	Max time.Duration `json:"max"`

	// P50 is the median session length.
	P50 time.Duration `json:"p50,omitempty"`

	// P95 is the 95th percentile session length.
	P95 time.Duration `json:"p95,omitempty"`

	// FirstStart is the earliest session start.
	FirstStart time.Time `json:"first_start"`

	// LastEnd is the latest session end.
	LastEnd time.Time `json:"last_end"`
}

// GroupStats contains statistics for one group.
type GroupStats struct {
	// Key is the dimension values joined by KeySeparator.
	Key string `json:"key"`

	// Values maps each configured dimension to its value.
	Values map[Dimension]string `json:"values"`

	// Statistics contains aggregated stats for this group.
	Statistics Statistics `json:"statistics"`
}

// Config contains aggregator configuration.
type Config struct {
	// GroupBy specifies aggregation dimensions.
	//
	// Examples:
	//   - [DimArea] - time per area
	//   - [DimDate] - time per day
	//   - [DimArea, DimDate] - time per area per day
	//
	// Default: no grouping (overall stats only).
	GroupBy []Dimension

	// TrackPercentiles enables percentile calculation.
	//
	// Percentile calculation keeps every session length in memory.
	TrackPercentiles bool

	// Location is used to derive dates (default: time.Local).
	Location *time.Location
}
