package main

import (
	"github.com/spf13/cobra"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/display"
	"github.com/0xmhha/iceland/pkg/parser"
)

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a session in the current area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			current, start, err := ws.svc.StartSession()
			if err != nil {
				return err
			}
			a.printf("Session started for %s at %s\n", current, start.Local().Format("15:04:05"))
			return nil
		},
	}
}

func newStopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session and record it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			rec, err := ws.svc.StopSession()
			if err != nil {
				return err
			}
			a.printStopped(rec)
			return nil
		},
	}
}

func (a *app) printStopped(rec parser.SessionRecord) {
	a.printf("Session stopped for %s: %s (%d seconds)\n",
		rec.Area, aggregator.FormatDuration(rec.Duration()), rec.Seconds())
}

func newStatusCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current area and the running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.formatter(format, display.Config{})
			if err != nil {
				return err
			}

			ws, err := a.open(false)
			if err != nil {
				return err
			}
			defer ws.Close()

			status, err := ws.svc.Status()
			if err != nil {
				return err
			}
			return f.FormatStatus(a.out, status)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format (table, json, simple)")
	return cmd
}
