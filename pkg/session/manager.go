package session

import (
	"fmt"
	"time"

	"github.com/0xmhha/iceland/pkg/logger"
	"github.com/0xmhha/iceland/pkg/parser"
)

// manager implements the Manager interface.
type manager struct {
	config Config
	logger logger.Logger
}

// New creates a new session manager.
//
// Returns error if a required store is missing.
func New(cfg Config, log logger.Logger) (Manager, error) {
	if cfg.Pointer == nil {
		return nil, fmt.Errorf("pointer is required")
	}
	if cfg.Timer == nil {
		return nil, fmt.Errorf("timer is required")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &manager{
		config: cfg,
		logger: log,
	}, nil
}

// Start implements Manager.Start.
func (m *manager) Start(area string) (time.Time, error) {
	if area == "" {
		return time.Time{}, ErrNoCurrentArea
	}

	_, running, err := m.config.Timer.Load()
	if err != nil {
		return time.Time{}, err
	}
	if running {
		return time.Time{}, ErrSessionAlreadyActive
	}

	start := m.config.Now().Truncate(time.Second)
	if err := m.config.Timer.Save(start); err != nil {
		return time.Time{}, err
	}

	m.logger.Info("session started", "area", area, "start", start)
	return start, nil
}

// Stop implements Manager.Stop.
func (m *manager) Stop() (parser.SessionRecord, error) {
	start, running, err := m.config.Timer.Load()
	if err != nil {
		return parser.SessionRecord{}, err
	}
	if !running {
		return parser.SessionRecord{}, ErrNoActiveSession
	}

	area, ok, err := m.config.Pointer.Get()
	if err != nil {
		return parser.SessionRecord{}, err
	}
	if !ok {
		return parser.SessionRecord{}, ErrNoCurrentArea
	}

	end := m.config.Now().Truncate(time.Second)
	if end.Before(start) {
		m.logger.Warn("clock moved backwards, recording zero-length session",
			"area", area, "start", start, "now", end)
		end = start
	}

	rec := parser.SessionRecord{Area: area, Start: start, End: end}
	if err := m.config.Ledger.Append(rec); err != nil {
		return parser.SessionRecord{}, fmt.Errorf("failed to record session: %w", err)
	}

	if err := m.config.Timer.Delete(); err != nil {
		return parser.SessionRecord{}, err
	}

	m.logger.Info("session stopped", "area", area, "seconds", rec.Seconds())
	return rec, nil
}

// Active implements Manager.Active.
func (m *manager) Active() (*Active, error) {
	start, running, err := m.config.Timer.Load()
	if err != nil {
		return nil, err
	}
	if !running {
		return nil, nil
	}

	area, _, err := m.config.Pointer.Get()
	if err != nil {
		return nil, err
	}

	elapsed := m.config.Now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	return &Active{Area: area, Start: start, Elapsed: elapsed}, nil
}

// Discard implements Manager.Discard.
func (m *manager) Discard() error {
	if err := m.config.Timer.Delete(); err != nil {
		return err
	}
	m.logger.Warn("session timer discarded")
	return nil
}
