package aggregator

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/0xmhha/iceland/pkg/parser"
)

// aggregator implements the Aggregator interface.
type aggregator struct {
	config Config

	mu     sync.RWMutex
	lens   []time.Duration   // All session lengths for percentile calculation
	stats  Statistics        // Overall statistics
	groups map[string]*group // Grouped statistics
}

// group holds statistics for a specific dimension combination.
type group struct {
	values map[Dimension]string
	lens   []time.Duration
	stats  Statistics
}

// New creates a new aggregator.
func New(cfg Config) Aggregator {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &aggregator{
		config: cfg,
		lens:   make([]time.Duration, 0),
		groups: make(map[string]*group),
	}
}

// Add implements Aggregator.Add.
func (a *aggregator) Add(rec parser.SessionRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d := time.Duration(rec.Seconds()) * time.Second

	updateStats(&a.stats, rec, d)
	if a.config.TrackPercentiles {
		a.lens = append(a.lens, d)
	}

	if len(a.config.GroupBy) == 0 {
		return
	}

	values := a.dimensionValues(rec)
	key := joinKey(a.config.GroupBy, values)

	g, exists := a.groups[key]
	if !exists {
		g = &group{values: values}
		a.groups[key] = g
	}

	updateStats(&g.stats, rec, d)
	if a.config.TrackPercentiles {
		g.lens = append(g.lens, d)
	}
}

// Stats implements Aggregator.Stats.
func (a *aggregator) Stats() Statistics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := a.stats
	if a.config.TrackPercentiles {
		fillPercentiles(&stats, a.lens)
	}
	return stats
}

// GroupedStats implements Aggregator.GroupedStats.
func (a *aggregator) GroupedStats() []GroupStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.config.GroupBy) == 0 {
		return nil
	}

	result := make([]GroupStats, 0, len(a.groups))
	for key, g := range a.groups {
		stats := g.stats
		if a.config.TrackPercentiles {
			fillPercentiles(&stats, g.lens)
		}

		values := make(map[Dimension]string, len(g.values))
		for k, v := range g.values {
			values[k] = v
		}

		result = append(result, GroupStats{
			Key:        key,
			Values:     values,
			Statistics: stats,
		})
	}

	// Map iteration order is random; sort explicitly.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Statistics.Total != result[j].Statistics.Total {
			return result[i].Statistics.Total > result[j].Statistics.Total
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// Top implements Aggregator.Top.
func (a *aggregator) Top(n int) []GroupStats {
	result := a.GroupedStats()
	if n > 0 && n < len(result) {
		result = result[:n]
	}
	return result
}

// Reset implements Aggregator.Reset.
func (a *aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.lens = make([]time.Duration, 0)
	a.stats = Statistics{}
	a.groups = make(map[string]*group)
}

// dimensionValues extracts the value of every configured dimension.
func (a *aggregator) dimensionValues(rec parser.SessionRecord) map[Dimension]string {
	values := make(map[Dimension]string, len(a.config.GroupBy))
	for _, dim := range a.config.GroupBy {
		switch dim {
		case DimArea:
			values[dim] = rec.Area
		case DimDate:
			values[dim] = rec.Start.In(a.config.Location).Format("2006-01-02")
		}
	}
	return values
}

// updateStats updates statistics with a new session of length d.
func updateStats(stats *Statistics, rec parser.SessionRecord, d time.Duration) {
	stats.Count++
	stats.Total += d
	stats.Avg = stats.Total / time.Duration(stats.Count)

	if stats.Count == 1 {
		stats.Min = d
		stats.Max = d
	} else {
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
	}

	if stats.FirstStart.IsZero() || rec.Start.Before(stats.FirstStart) {
		stats.FirstStart = rec.Start
	}
	if stats.LastEnd.IsZero() || rec.End.After(stats.LastEnd) {
		stats.LastEnd = rec.End
	}
}

func fillPercentiles(stats *Statistics, lens []time.Duration) {
	if len(lens) == 0 {
		return
	}

	sorted := make([]time.Duration, len(lens))
	copy(sorted, lens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	stats.P50 = percentile(sorted, 50)
	stats.P95 = percentile(sorted, 95)
}

// percentile calculates the nth percentile of a sorted slice.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	// Linear interpolation between closest ranks.
	rank := float64(p) / 100.0 * float64(len(sorted)-1)
	lower := int(rank)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower] + time.Duration(weight*float64(sorted[upper]-sorted[lower]))
}

func joinKey(dims []Dimension, values map[Dimension]string) string {
	parts := make([]string, len(dims))
	for i, dim := range dims {
		parts[i] = values[dim]
	}
	return strings.Join(parts, KeySeparator)
}

// ParseDimensions parses a comma-separated dimension list such as
// "area,date".
func ParseDimensions(s string) ([]Dimension, error) {
	var dims []Dimension
	seen := make(map[Dimension]bool)

	for _, part := range strings.Split(s, ",") {
		dim := Dimension(strings.ToLower(strings.TrimSpace(part)))
		switch dim {
		case DimArea, DimDate:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, part)
		}
		if !seen[dim] {
			seen[dim] = true
			dims = append(dims, dim)
		}
	}

	return dims, nil
}
