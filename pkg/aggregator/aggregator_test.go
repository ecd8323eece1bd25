package aggregator

import (
	"errors"
	"testing"
	"time"

	"github.com/0xmhha/iceland/pkg/parser"
)

var t0 = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func rec(area string, startOffset, endOffset time.Duration) parser.SessionRecord {
	return parser.SessionRecord{Area: area, Start: t0.Add(startOffset), End: t0.Add(endOffset)}
}

// sample is the ledger used throughout: work 120s, math 3600s.
func sample() []parser.SessionRecord {
	return []parser.SessionRecord{
		rec("work", 0, 60*time.Second),
		rec("math", 60*time.Second, 3660*time.Second),
		rec("work", 3660*time.Second, 3720*time.Second),
	}
}

func TestTotalsByArea(t *testing.T) {
	t.Parallel()

	totals := TotalsByArea(sample())

	if len(totals) != 2 {
		t.Fatalf("len(totals) = %d, want 2", len(totals))
	}
	if totals["work"] != 120*time.Second {
		t.Errorf("work = %v, want 120s", totals["work"])
	}
	if totals["math"] != 3600*time.Second {
		t.Errorf("math = %v, want 3600s", totals["math"])
	}
}

func TestTotalsByAreaTruncatesSubSecond(t *testing.T) {
	t.Parallel()

	records := []parser.SessionRecord{
		{Area: "work", Start: t0, End: t0.Add(1500 * time.Millisecond)},
		{Area: "work", Start: t0, End: t0.Add(1500 * time.Millisecond)},
	}

	if got := TotalsByArea(records)["work"]; got != 2*time.Second {
		t.Errorf("work = %v, want 2s (whole seconds per record)", got)
	}
}

func TestTotalsByAreaEmpty(t *testing.T) {
	t.Parallel()

	if totals := TotalsByArea(nil); len(totals) != 0 {
		t.Errorf("TotalsByArea(nil) = %v, want empty", totals)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()

	records := sample()

	all := History(records, "")
	if len(all) != 3 {
		t.Fatalf("len(History(all)) = %d, want 3", len(all))
	}
	for i := range records {
		if all[i] != records[i] {
			t.Errorf("History()[%d] = %+v, want ledger order", i, all[i])
		}
	}

	work := History(records, "work")
	if len(work) != 2 || work[0].Start != t0 || work[1].Start != t0.Add(3660*time.Second) {
		t.Errorf("History(work) = %+v", work)
	}

	if none := History(records, "gaming"); len(none) != 0 {
		t.Errorf("History(gaming) = %+v, want empty", none)
	}
}

func TestLast(t *testing.T) {
	t.Parallel()

	records := sample()
	if got := Last(records, 2); len(got) != 2 || got[0].Area != "math" {
		t.Errorf("Last(2) = %+v", got)
	}
	if got := Last(records, 0); len(got) != 3 {
		t.Errorf("Last(0) returned %d records, want all", len(got))
	}
	if got := Last(records, 10); len(got) != 3 {
		t.Errorf("Last(10) returned %d records, want all", len(got))
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:00"},
		{60 * time.Second, "0:01"},
		{3599 * time.Second, "0:59"},
		{time.Hour, "1:00"},
		{time.Hour + 59*time.Minute + 59*time.Second, "1:59"},
		{125*time.Hour + 5*time.Minute, "125:05"},
		{-time.Minute, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	agg := New(Config{TrackPercentiles: true})
	for _, r := range sample() {
		agg.Add(r)
	}

	stats := agg.Stats()
	if stats.Count != 3 {
		t.Errorf("Count = %d, want 3", stats.Count)
	}
	if stats.Total != 3720*time.Second {
		t.Errorf("Total = %v, want 3720s", stats.Total)
	}
	if stats.Min != 60*time.Second || stats.Max != 3600*time.Second {
		t.Errorf("Min/Max = %v/%v", stats.Min, stats.Max)
	}
	if stats.Avg != 1240*time.Second {
		t.Errorf("Avg = %v, want 1240s", stats.Avg)
	}
	if stats.P50 != 60*time.Second {
		t.Errorf("P50 = %v, want 60s", stats.P50)
	}
	if !stats.FirstStart.Equal(t0) || !stats.LastEnd.Equal(t0.Add(3720*time.Second)) {
		t.Errorf("FirstStart/LastEnd = %v/%v", stats.FirstStart, stats.LastEnd)
	}
}

func TestGroupedStatsByArea(t *testing.T) {
	t.Parallel()

	agg := New(Config{GroupBy: []Dimension{DimArea}})
	for _, r := range sample() {
		agg.Add(r)
	}

	groups := agg.GroupedStats()
	if len(groups) != 2 {
		t.Fatalf("len(GroupedStats()) = %d, want 2", len(groups))
	}

	// Sorted by total descending.
	if groups[0].Key != "math" || groups[0].Statistics.Total != time.Hour {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Key != "work" || groups[1].Statistics.Count != 2 {
		t.Errorf("groups[1] = %+v", groups[1])
	}
	if groups[1].Values[DimArea] != "work" {
		t.Errorf("Values = %v", groups[1].Values)
	}
}

func TestGroupedStatsTiesSortByKey(t *testing.T) {
	t.Parallel()

	agg := New(Config{GroupBy: []Dimension{DimArea}})
	agg.Add(rec("trading", 0, time.Minute))
	agg.Add(rec("gaming", 0, time.Minute))
	agg.Add(rec("math", 0, time.Minute))

	groups := agg.GroupedStats()
	want := []string{"gaming", "math", "trading"}
	for i, w := range want {
		if groups[i].Key != w {
			t.Errorf("groups[%d].Key = %q, want %q", i, groups[i].Key, w)
		}
	}
}

func TestGroupedStatsByAreaAndDate(t *testing.T) {
	t.Parallel()

	agg := New(Config{
		GroupBy:  []Dimension{DimArea, DimDate},
		Location: time.UTC,
	})
	agg.Add(rec("work", 0, time.Hour))
	agg.Add(rec("work", 24*time.Hour, 26*time.Hour))
	agg.Add(rec("work", 25*time.Hour+30*time.Minute, 26*time.Hour))

	groups := agg.GroupedStats()
	if len(groups) != 2 {
		t.Fatalf("len(GroupedStats()) = %d, want 2", len(groups))
	}
	if groups[0].Key != "work|2024-01-16" || groups[0].Statistics.Total != 2*time.Hour+30*time.Minute {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Values[DimDate] != "2024-01-15" {
		t.Errorf("groups[1].Values = %v", groups[1].Values)
	}
}

func TestGroupedStatsWithoutDimensions(t *testing.T) {
	t.Parallel()

	agg := New(Config{})
	agg.Add(rec("work", 0, time.Hour))

	if groups := agg.GroupedStats(); groups != nil {
		t.Errorf("GroupedStats() = %+v, want nil", groups)
	}
}

func TestTop(t *testing.T) {
	t.Parallel()

	agg := New(Config{GroupBy: []Dimension{DimArea}})
	for _, r := range sample() {
		agg.Add(r)
	}

	top := agg.Top(1)
	if len(top) != 1 || top[0].Key != "math" {
		t.Errorf("Top(1) = %+v", top)
	}
	if all := agg.Top(0); len(all) != 2 {
		t.Errorf("Top(0) returned %d groups, want 2", len(all))
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	agg := New(Config{GroupBy: []Dimension{DimArea}, TrackPercentiles: true})
	agg.Add(rec("work", 0, time.Hour))
	agg.Reset()

	if stats := agg.Stats(); stats.Count != 0 || stats.Total != 0 {
		t.Errorf("Stats() after Reset = %+v", stats)
	}
	if groups := agg.GroupedStats(); len(groups) != 0 {
		t.Errorf("GroupedStats() after Reset = %+v", groups)
	}
}

func TestParseDimensions(t *testing.T) {
	t.Parallel()

	dims, err := ParseDimensions("area, DATE,area")
	if err != nil {
		t.Fatalf("ParseDimensions() error = %v", err)
	}
	if len(dims) != 2 || dims[0] != DimArea || dims[1] != DimDate {
		t.Errorf("ParseDimensions() = %v", dims)
	}

	if _, err := ParseDimensions("model"); !errors.Is(err, ErrUnknownDimension) {
		t.Errorf("ParseDimensions(model) error = %v, want ErrUnknownDimension", err)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	sorted := []time.Duration{10, 20, 30, 40, 50}
	tests := []struct {
		p    int
		want time.Duration
	}{
		{0, 10},
		{50, 30},
		{100, 50},
		{25, 20},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); got != tt.want {
			t.Errorf("percentile(%d) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(nil) = %v, want 0", got)
	}
}

func BenchmarkAdd(b *testing.B) {
	agg := New(Config{GroupBy: []Dimension{DimArea, DimDate}})
	r := rec("work", 0, time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		agg.Add(r)
	}
}
