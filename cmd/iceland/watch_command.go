package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/display"
	"github.com/0xmhha/iceland/pkg/monitor"
	"github.com/0xmhha/iceland/pkg/watcher"
)

// watchCommand holds the flags of the watch command.
type watchCommand struct {
	refresh time.Duration
	format  string
	once    bool
}

func newWatchCmd(a *app) *cobra.Command {
	c := &watchCommand{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the current area, the running session and the totals live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.run(ctx, a)
		},
	}

	cmd.Flags().DurationVar(&c.refresh, "refresh", time.Second, "refresh interval for the elapsed time")
	cmd.Flags().StringVar(&c.format, "format", "table", "output format (table, simple)")
	cmd.Flags().BoolVar(&c.once, "once", false, "print the current state once and exit")
	return cmd
}

func (c *watchCommand) run(ctx context.Context, a *app) error {
	f, err := a.formatter(c.format, display.Config{Compact: true})
	if err != nil {
		return err
	}

	ws, err := a.open(false)
	if err != nil {
		return err
	}
	defer ws.Close()
	log := ws.logger

	w, err := watcher.New(watcher.Config{
		Files: []string{config.CurrentAreaFile, config.SessionStartFile, config.SessionsFile},
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize watcher: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Error("failed to close watcher", "error", err)
		}
	}()

	mon, err := monitor.New(monitor.Config{
		Dir:             ws.paths.Base,
		RefreshInterval: c.refresh,
	}, w, ws.ledger, ws.svc, log)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}
	defer func() {
		if err := mon.Close(); err != nil {
			log.Error("failed to close monitor", "error", err)
		}
	}()

	if err := mon.Start(ctx); err != nil {
		if errors.Is(err, watcher.ErrInvalidPath) {
			return fmt.Errorf("%s does not exist, run init first", ws.paths.Base)
		}
		return err
	}

	redraw := isTerminal(a.out) && !c.once
	for {
		select {
		case <-ctx.Done():
			a.printf("\nStopping monitor...\n")
			return nil

		case update, ok := <-mon.Updates():
			if !ok {
				return nil
			}
			if err := c.render(a, f, update, redraw); err != nil {
				return err
			}
			if c.once {
				return nil
			}
		}
	}
}

// render prints one update, redrawing the screen on terminals.
func (c *watchCommand) render(a *app, f display.Formatter, update monitor.Update, redraw bool) error {
	if redraw {
		a.printf("\033[2J\033[H")
	}

	a.printf("iceland watch - %s (Ctrl+C to stop)\n\n", update.Timestamp.Format("2006-01-02 15:04:05"))

	if update.StatusError != "" {
		a.printf("Status unavailable: %s\n", update.StatusError)
	} else if err := f.FormatStatus(a.out, update.Status); err != nil {
		return err
	}
	a.printf("\n")

	if err := f.FormatGroupedStats(a.out, update.Totals, []aggregator.Dimension{aggregator.DimArea}); err != nil {
		return err
	}

	if update.Delta.NewSessions > 0 {
		a.printf("\n+%d session(s), +%s since the last update\n",
			update.Delta.NewSessions, aggregator.FormatDuration(update.Delta.Time))
	}
	if update.Skipped > 0 {
		a.printf("(%d malformed ledger row(s) skipped)\n", update.Skipped)
	}
	return nil
}
