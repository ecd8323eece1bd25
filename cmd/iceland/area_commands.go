package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/area"
	"github.com/0xmhha/iceland/pkg/display"
	"github.com/0xmhha/iceland/pkg/ledger"
	"github.com/0xmhha/iceland/pkg/prompt"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config and the area directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			res, err := ws.svc.Init()
			if err != nil {
				return err
			}

			for _, w := range res.Warnings {
				a.warn("%s", w)
			}
			if res.ConfigCreated {
				a.printf("Created config: %s\n", ws.paths.Config())
			}
			if res.Closed != nil {
				a.printf("Recorded %s session: %s\n",
					res.Closed.Area, aggregator.FormatDuration(res.Closed.Duration()))
			}
			a.printf("Areas: %s\n", strings.Join(res.Areas, ", "))
			if res.Current != "" {
				a.printf("Current area: %s\n", res.Current)
			}
			a.printf("Initialized %s\n", ws.paths.Base)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured areas",
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

			listing, err := ws.svc.List()
			if err != nil {
				return err
			}

			records, err := a.loadRecords(ledger.Tolerant)
			if err != nil {
				return err
			}
			totals := aggregator.TotalsByArea(records)
			for i := range listing.Areas {
				listing.Areas[i].Recorded = int64(totals[listing.Areas[i].Name] / time.Second)
			}

			return f.FormatListing(a.out, listing)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format (table, json, simple)")
	return cmd
}

func newSwitchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <area>",
		Short: "Make an area current, closing the running session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			res, err := ws.svc.SwitchTo(args[0])
			if err != nil {
				return err
			}
			a.printSwitch(res)
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Pick an area interactively and switch to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			name, err := ws.svc.SelectArea(a.itemSelector())
			if errors.Is(err, prompt.ErrCancelled) {
				a.printf("No area selected.\n")
				return nil
			}
			if err != nil {
				return err
			}

			res, err := ws.svc.SwitchTo(name)
			if err != nil {
				return err
			}
			a.printSwitch(res)
			return nil
		},
	}
}

func (a *app) printSwitch(res *area.SwitchResult) {
	for _, w := range res.Warnings {
		a.warn("%s", w)
	}

	if res.Closed != nil {
		a.printf("Recorded %s session: %s\n",
			res.Closed.Area, aggregator.FormatDuration(res.Closed.Duration()))
	}
	a.printf("Switched to area: %s\n", res.To)
	a.printf("Session started at %s\n", res.Started.Local().Format("15:04:05"))

	if res.HasLinks {
		if links := strings.TrimSpace(res.Links); links != "" {
			a.printf("\nLinks:\n%s\n", links)
		}
	}
}

func newAddAreaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-area <name>",
		Short: "Add a new area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			if err := ws.svc.AddArea(args[0]); err != nil {
				return err
			}
			a.printf("Added area: %s\n", args[0])
			return nil
		},
	}
}

func newRemoveAreaCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove-area <name>",
		Short: "Remove an area and delete all of its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes {
				prev := a.confirm
				a.confirm = prompt.Always(true)
				defer func() { a.confirm = prev }()
			}

			ws, err := a.open(true)
			if err != nil {
				return err
			}
			defer ws.Close()

			res, err := ws.svc.RemoveArea(args[0])
			if err != nil {
				return err
			}

			for _, w := range res.Warnings {
				a.warn("%s", w)
			}
			if res.Closed != nil {
				a.printf("Recorded %s session: %s\n",
					res.Closed.Area, aggregator.FormatDuration(res.Closed.Duration()))
			}
			a.printf("Removed area: %s\n", res.Removed)
			if res.PointerChanged {
				if res.Current != "" {
					a.printf("Current area is now: %s\n", res.Current)
				} else {
					a.printf("No areas left; current area cleared.\n")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm without prompting")
	return cmd
}
