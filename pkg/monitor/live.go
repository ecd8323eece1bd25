package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/0xmhha/iceland/pkg/aggregator"
	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/ledger"
	"github.com/0xmhha/iceland/pkg/logger"
	"github.com/0xmhha/iceland/pkg/watcher"
)

// liveMonitor implements the LiveMonitor interface.
type liveMonitor struct {
	config  Config
	logger  logger.Logger
	watcher watcher.Watcher
	ledger  ledger.Ledger
	status  StatusSource

	mu       sync.RWMutex
	running  bool
	closed   bool
	stopChan chan struct{}

	// Aggregation state
	agg       aggregator.Aggregator
	offset    int64
	skipped   int
	lastStats aggregator.Statistics

	// Update channel for consumers
	updates chan Update
}

// New creates a new live monitor.
//
// Parameters:
//   - cfg: Monitor configuration
//   - w: File watcher
//   - l: Session ledger
//   - src: Current area and session status
//   - log: Logger instance
//
// Returns:
//   - Configured LiveMonitor
//   - Error if configuration is invalid
func New(cfg Config, w watcher.Watcher, l ledger.Ledger, src StatusSource, log logger.Logger) (LiveMonitor, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: directory is required", ErrInvalidConfig)
	}
	if w == nil || l == nil || src == nil {
		return nil, fmt.Errorf("%w: watcher, ledger and status source are required", ErrInvalidConfig)
	}
	if cfg.LedgerFile == "" {
		cfg.LedgerFile = config.SessionsFile
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = time.Second
	}

	m := &liveMonitor{
		config:   cfg,
		logger:   log,
		watcher:  w,
		ledger:   l,
		status:   src,
		stopChan: make(chan struct{}),
		updates:  make(chan Update, 10),
		agg:      newAggregator(),
	}

	log.Debug("live monitor created",
		"dir", cfg.Dir,
		"refresh_interval", cfg.RefreshInterval)

	return m, nil
}

func newAggregator() aggregator.Aggregator {
	return aggregator.New(aggregator.Config{
		GroupBy: []aggregator.Dimension{aggregator.DimArea},
	})
}

// Start implements LiveMonitor.Start.
func (m *liveMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMonitorClosed
	}
	if m.running {
		m.mu.Unlock()
		return ErrMonitorRunning
	}
	m.running = true
	m.mu.Unlock()

	// Initial read of the whole ledger
	if err := m.readLedger(); err != nil {
		m.setStopped()
		return fmt.Errorf("initial read failed: %w", err)
	}

	m.mu.Lock()
	m.lastStats = m.agg.Stats()
	m.mu.Unlock()

	if err := m.watcher.Start(ctx, m.config.Dir); err != nil {
		m.setStopped()
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	m.sendUpdate(ReasonInitial)

	// Start event processing
	go m.processEvents(ctx)

	// Start periodic updates
	go m.periodicUpdates(ctx)

	m.logger.Debug("live monitor started")
	return nil
}

// Stop implements LiveMonitor.Stop.
func (m *liveMonitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrMonitorClosed
	}
	if !m.running {
		return ErrMonitorNotRunning
	}

	// Signal stop
	close(m.stopChan)
	m.running = false

	// Stop watcher
	if err := m.watcher.Stop(); err != nil {
		m.logger.Warn("failed to stop watcher", "error", err)
	}

	m.logger.Debug("live monitor stopped")
	return nil
}

// Totals implements LiveMonitor.Totals.
func (m *liveMonitor) Totals() []aggregator.GroupStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.agg.GroupedStats()
}

// Updates implements LiveMonitor.Updates.
func (m *liveMonitor) Updates() <-chan Update {
	return m.updates
}

func (m *liveMonitor) setStopped() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// readLedger adds the rows appended since the last read. If the ledger
// shrank or was removed, the totals are rebuilt from the beginning.
func (m *liveMonitor) readLedger() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, err := m.ledger.ReadFrom(m.offset, ledger.Tolerant)
	if err != nil {
		return err
	}

	if res.Restarted {
		m.logger.Warn("ledger was rewritten, recomputing totals")
		m.agg.Reset()
		m.skipped = 0
		m.lastStats = aggregator.Statistics{}
	}

	for _, rec := range res.Records {
		m.agg.Add(rec)
	}
	for _, perr := range res.Skipped {
		m.logger.Warn("skipping malformed ledger row", "error", perr)
	}
	m.skipped += len(res.Skipped)
	m.offset = res.Offset

	m.logger.Debug("ledger read",
		"new_records", len(res.Records),
		"offset", res.Offset)

	return nil
}

// processEvents handles file change events from the watcher.
func (m *liveMonitor) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case <-m.stopChan:
			return

		case event, ok := <-m.watcher.Events():
			if !ok {
				m.logger.Debug("watcher events channel closed")
				return
			}

			m.handleFileChange(event)

		case err, ok := <-m.watcher.Errors():
			if !ok {
				m.logger.Debug("watcher errors channel closed")
				return
			}

			m.logger.Error("watcher error", "error", err)
		}
	}
}

// handleFileChange processes a file change event.
func (m *liveMonitor) handleFileChange(event watcher.Event) {
	m.logger.Debug("state file changed",
		"file", event.Name,
		"op", event.Op)

	if event.Name == m.config.LedgerFile {
		if err := m.readLedger(); err != nil {
			m.logger.Warn("failed to read ledger after change",
				"path", event.Path,
				"error", err)
		}
	}

	// Trigger immediate update
	m.sendUpdate(ReasonChange)
}

// periodicUpdates sends periodic updates even if no file changes.
func (m *liveMonitor) periodicUpdates(ctx context.Context) {
	ticker := time.NewTicker(m.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-m.stopChan:
			return

		case <-ticker.C:
			m.sendUpdate(ReasonTick)
		}
	}
}

// sendUpdate sends an update to the updates channel.
func (m *liveMonitor) sendUpdate(reason Reason) {
	status, statusErr := m.status.Status()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	currentStats := m.agg.Stats()

	update := Update{
		Timestamp: time.Now(),
		Reason:    reason,
		Status:    status,
		Totals:    m.agg.GroupedStats(),
		Delta: DeltaStats{
			NewSessions: currentStats.Count - m.lastStats.Count,
			Time:        currentStats.Total - m.lastStats.Total,
		},
		Skipped: m.skipped,
	}
	if statusErr != nil {
		update.StatusError = statusErr.Error()
	}

	// Send update (non-blocking)
	select {
	case m.updates <- update:
	default:
		m.logger.Warn("updates channel full, dropping update")
	}

	// Update last stats
	m.lastStats = currentStats
}

// Close implements LiveMonitor.Close.
func (m *liveMonitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true

	// Stop if running
	if m.running {
		close(m.stopChan)
		m.running = false
	}

	// Close update channel
	close(m.updates)

	m.logger.Debug("live monitor closed")
	return nil
}
