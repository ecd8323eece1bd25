// Package monitor drives the live `watch` view: it follows the state files
// in the base directory and emits an Update whenever the current area,
// the session timer or the ledger changes, plus one every refresh
// interval so elapsed time keeps moving.
//
// The ledger is tailed from the last byte offset read, so a long history
// is parsed once and only appended rows are processed afterwards.
package monitor

import (
	"context"
	"time"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/area"
)

// StatusSource reports the current area and running session.
type StatusSource interface {
	Status() (*area.Status, error)
}

// Config holds the configuration for the live monitor.
type Config struct {
	// Dir is the base directory holding the state files.
	Dir string

	// LedgerFile is the base name of the ledger inside Dir.
	// Default: sessions.csv.
	LedgerFile string

	// RefreshInterval is the interval between periodic updates.
	// Default: 1s.
	RefreshInterval time.Duration
}

// LiveMonitor provides real-time area and session monitoring.
type LiveMonitor interface {
	// Start reads the ledger, starts watching Dir and sends the initial
	// update. It returns once monitoring runs in the background.
	Start(ctx context.Context) error

	// Stop stops the monitor gracefully
	Stop() error

	// Close stops the monitor and closes the update channel.
	Close() error

	// Updates returns the channel for receiving updates.
	Updates() <-chan Update

	// Totals returns the current per-area totals, longest first.
	Totals() []aggregator.GroupStats
}

// Reason describes what triggered an update.
type Reason string

// Update reasons.
const (
	ReasonInitial Reason = "initial"
	ReasonChange  Reason = "change"
	ReasonTick    Reason = "tick"
)

// Update represents a live monitoring update event.
type Update struct {
	// Timestamp of the update
	Timestamp time.Time

	// Reason is what triggered the update.
	Reason Reason

	// Status is the current area and running session. Nil if StatusError
	// is set.
	Status *area.Status

	// StatusError describes why Status could not be read.
	StatusError string

	// Totals contains per-area totals over the whole ledger.
	Totals []aggregator.GroupStats

	// Delta contains the sessions recorded since the last update.
	Delta DeltaStats

	// Skipped is the number of malformed ledger rows seen so far.
	Skipped int
}

// DeltaStats represents changes since the last update.
type DeltaStats struct {
	// NewSessions is the number of sessions recorded
	NewSessions int

	// Time is the total length of those sessions.
	Time time.Duration
}
