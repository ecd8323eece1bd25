package main

import (
	"github.com/spf13/cobra"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/display"
	"github.com/0xmhha/iceland/pkg/ledger"
	"github.com/0xmhha/iceland/pkg/parser"
)

// statsCommand holds the flags of the stats command.
type statsCommand struct {
	by          string
	top         int
	summary     bool
	percentiles bool
	format      string
	compact     bool
	strict      bool
}

func newStatsCmd(a *app) *cobra.Command {
	c := &statsCommand{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the time recorded per area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(a)
		},
	}

	cmd.Flags().StringVar(&c.by, "by", "area", "group by dimensions (comma-separated: area,date)")
	cmd.Flags().IntVar(&c.top, "top", 0, "show only the N groups with the most time")
	cmd.Flags().BoolVar(&c.summary, "summary", false, "show totals across all sessions instead of groups")
	cmd.Flags().BoolVar(&c.percentiles, "percentiles", false, "include P50/P95 session lengths in the summary")
	cmd.Flags().StringVar(&c.format, "format", "table", "output format (table, json, simple)")
	cmd.Flags().BoolVar(&c.compact, "compact", false, "compact output")
	cmd.Flags().BoolVar(&c.strict, "strict", false, "fail on malformed ledger rows instead of skipping them")
	return cmd
}

func (c *statsCommand) run(a *app) error {
	var dims []aggregator.Dimension
	if !c.summary {
		var err error
		if dims, err = aggregator.ParseDimensions(c.by); err != nil {
			return err
		}
	}

	f, err := a.formatter(c.format, display.Config{
		Compact:         c.compact,
		ShowPercentiles: c.percentiles,
		ShowTimestamps:  c.summary,
	})
	if err != nil {
		return err
	}

	records, err := a.loadRecords(readMode(c.strict))
	if err != nil {
		return err
	}

	agg := aggregator.New(aggregator.Config{
		GroupBy:          dims,
		TrackPercentiles: c.percentiles,
	})
	for _, rec := range records {
		agg.Add(rec)
	}

	if c.summary {
		return f.FormatStats(a.out, agg.Stats())
	}
	return f.FormatGroupedStats(a.out, agg.Top(c.top), dims)
}

// historyCommand holds the flags of the history command.
type historyCommand struct {
	area   string
	limit  int
	format string
	strict bool
}

func newHistoryCmd(a *app) *cobra.Command {
	c := &historyCommand{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(a)
		},
	}

	cmd.Flags().StringVar(&c.area, "area", "", "show only sessions of this area")
	cmd.Flags().IntVar(&c.limit, "limit", 0, "show only the last N sessions")
	cmd.Flags().StringVar(&c.format, "format", "table", "output format (table, json, simple)")
	cmd.Flags().BoolVar(&c.strict, "strict", false, "fail on malformed ledger rows instead of skipping them")
	return cmd
}

func (c *historyCommand) run(a *app) error {
	f, err := a.formatter(c.format, display.Config{})
	if err != nil {
		return err
	}

	records, err := a.loadRecords(readMode(c.strict))
	if err != nil {
		return err
	}

	records = aggregator.Last(aggregator.History(records, c.area), c.limit)
	return f.FormatHistory(a.out, records)
}

func readMode(strict bool) ledger.Mode {
	if strict {
		return ledger.Strict
	}
	return ledger.Tolerant
}

// loadRecords reads the whole ledger. In Tolerant mode malformed rows are
// skipped with a warning.
func (a *app) loadRecords(mode ledger.Mode) ([]parser.SessionRecord, error) {
	rt, err := a.load()
	if err != nil {
		return nil, err
	}

	l := ledger.New(ledger.Config{Path: rt.paths.Sessions()}, rt.logger)
	res, err := l.Load(mode)
	if err != nil {
		return nil, err
	}

	if n := len(res.Skipped); n > 0 {
		a.warn("skipped %d malformed ledger row(s)", n)
	}
	return res.Records, nil
}
