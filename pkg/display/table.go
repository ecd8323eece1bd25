package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/area"
	"github.com/0xmhha/iceland/pkg/parser"
)

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatStats implements Formatter.FormatStats.
func (f *tableFormatter) FormatStats(w io.Writer, stats aggregator.Statistics) error {
	if err := f.header(w, "Session Statistics"); err != nil {
		return err
	}

	if stats.Count == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	rows := [][]string{
		{"Sessions", formatNumber(stats.Count)},
		{"Total Time", formatDuration(stats.Total)},
		{"Total Seconds", formatNumber(int(stats.Total / time.Second))},
		{"Average", formatDuration(stats.Avg)},
		{"Shortest", formatDuration(stats.Min)},
		{"Longest", formatDuration(stats.Max)},
	}

	if f.config.ShowPercentiles {
		rows = append(rows,
			[]string{"P50", formatDuration(stats.P50)},
			[]string{"P95", formatDuration(stats.P95)},
		)
	}

	if f.config.ShowTimestamps {
		rows = append(rows,
			[]string{"First Start", formatTime(stats.FirstStart, f.config.Location)},
			[]string{"Last End", formatTime(stats.LastEnd, f.config.Location)},
		)
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// FormatGroupedStats implements Formatter.FormatGroupedStats.
func (f *tableFormatter) FormatGroupedStats(w io.Writer, grouped []aggregator.GroupStats, dimensions []aggregator.Dimension) error {
	if err := validateDimensions(dimensions); err != nil {
		return err
	}

	if err := f.header(w, "Time by "+joinDimensions(dimensions)); err != nil {
		return err
	}

	if len(grouped) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	n := len(dimensions)
	header := make([]string, n+5)
	for i, d := range dimensions {
		header[i] = titleCase(string(d))
	}
	header[n] = "Sessions"
	header[n+1] = "Time (hh:mm)"
	header[n+2] = "Seconds"
	header[n+3] = "Avg"
	header[n+4] = "Min/Max"

	rows := make([][]string, 0, len(grouped)+1)
	var total time.Duration
	var count int
	for _, g := range grouped {
		row := make([]string, len(header))
		for i, d := range dimensions {
			row[i] = g.Values[d]
		}

		stats := g.Statistics
		row[n] = formatNumber(stats.Count)
		row[n+1] = formatDuration(stats.Total)
		row[n+2] = formatNumber(int(stats.Total / time.Second))
		row[n+3] = formatDuration(stats.Avg)
		row[n+4] = fmt.Sprintf("%s/%s", formatDuration(stats.Min), formatDuration(stats.Max))

		total += stats.Total
		count += stats.Count
		rows = append(rows, row)
	}

	footer := make([]string, len(header))
	footer[0] = "TOTAL"
	footer[n] = formatNumber(count)
	footer[n+1] = formatDuration(total)
	footer[n+2] = formatNumber(int(total / time.Second))
	rows = append(rows, footer)

	return f.writeTable(w, header, rows)
}

// FormatHistory implements Formatter.FormatHistory.
func (f *tableFormatter) FormatHistory(w io.Writer, records []parser.SessionRecord) error {
	if err := f.header(w, "Session History"); err != nil {
		return err
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	header := []string{"#", "Area", "Start", "End", "Duration"}
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			rec.Area,
			formatTime(rec.Start, f.config.Location),
			formatTime(rec.End, f.config.Location),
			formatDuration(rec.Duration()),
		}
	}

	return f.writeTable(w, header, rows)
}

// FormatListing implements Formatter.FormatListing.
func (f *tableFormatter) FormatListing(w io.Writer, listing *area.Listing) error {
	if err := f.header(w, "Areas"); err != nil {
		return err
	}

	if len(listing.Areas) == 0 {
		if _, err := fmt.Fprintln(w, "No areas configured. Use add-area to create one."); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(listing.Areas))
		for i, e := range listing.Areas {
			recorded := aggregator.FormatDuration(time.Duration(e.Recorded) * time.Second)
			rows[i] = []string{currentMarker(e.Current), e.Name, entryState(e), recorded}
		}
		if err := f.writeTable(w, []string{"", "Area", "State", "Recorded"}, rows); err != nil {
			return err
		}
	}

	if len(listing.Untracked) > 0 {
		_, err := fmt.Fprintf(w, "Untracked directories: %s\n", strings.Join(listing.Untracked, ", "))
		return err
	}

	return nil
}

// FormatStatus implements Formatter.FormatStatus.
func (f *tableFormatter) FormatStatus(w io.Writer, status *area.Status) error {
	if err := f.header(w, "Status"); err != nil {
		return err
	}

	rows := [][]string{
		{"Current Area", currentLabel(status)},
		{"Session", sessionLabel(status)},
	}
	if status.Active != nil {
		rows = append(rows,
			[]string{"Started", formatTime(status.Active.Start, f.config.Location)},
			[]string{"Elapsed", formatElapsed(status.Active.Elapsed)},
		)
	}

	return f.writeTable(w, []string{"Field", "Value"}, rows)
}

func (f *tableFormatter) header(w io.Writer, title string) error {
	return writeHeader(w, title, f.config.Compact, f.config.Styled)
}

// writeTable writes a formatted table.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	// Calculate column widths.
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Write header.
	if err := f.writeRow(w, header, widths, f.config.Styled); err != nil {
		return err
	}

	// Write separator.
	if !f.config.Compact {
		separator := make([]string, len(header))
		for i, width := range widths {
			separator[i] = strings.Repeat("-", width)
		}
		if err := f.writeRow(w, separator, widths, false); err != nil {
			return err
		}
	}

	// Write rows.
	for _, row := range rows {
		if err := f.writeRow(w, row, widths, false); err != nil {
			return err
		}
	}

	// Add spacing.
	if !f.config.Compact {
		_, err := fmt.Fprintln(w)
		return err
	}

	return nil
}

// writeRow writes a single table row.
func (f *tableFormatter) writeRow(w io.Writer, cells []string, widths []int, styled bool) error {
	gap := "  "
	if f.config.Compact {
		gap = " "
	}

	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(gap)
		}

		padded := fmt.Sprintf("%-*s", widths[i], cell)
		if styled {
			padded = headerStyle.Render(padded)
		}
		b.WriteString(padded)
	}

	_, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	return err
}

func joinDimensions(dims []aggregator.Dimension) string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func currentMarker(current bool) string {
	if current {
		return "*"
	}
	return ""
}

func entryState(e area.Entry) string {
	switch {
	case e.Missing:
		return "missing directory (run init)"
	case e.Current:
		return "current"
	default:
		return "ok"
	}
}

func currentLabel(status *area.Status) string {
	switch {
	case status.Current == "":
		return "none (run init or switch)"
	case !status.Known:
		return status.Current + " (not configured)"
	default:
		return status.Current
	}
}

func sessionLabel(status *area.Status) string {
	switch {
	case status.TimerError != "":
		return "unreadable timer: " + status.TimerError
	case status.Active == nil:
		return "not running"
	default:
		return "running"
	}
}
