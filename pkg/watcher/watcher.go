package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/0xmhha/iceland/pkg/logger"
)

// watcher implements Watcher on one fsnotify watch of the base directory.
type watcher struct {
	fsw    *fsnotify.Watcher
	logger logger.Logger
	config Config

	// files is the base-name filter; nil accepts every file.
	files map[string]bool

	events chan Event
	errors chan error

	mu       sync.RWMutex
	running  bool
	closed   bool
	stopChan chan struct{}

	// pending holds one debounce timer per file name.
	pending   map[string]*time.Timer
	pendingMu sync.Mutex

	// failures counts consecutive fsnotify errors; a delivered event
	// resets it.
	failures int
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config, log logger.Logger) (Watcher, error) {
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = 100 * time.Millisecond
	}
	if cfg.CircuitBreakerThreshold == 0 {
		cfg.CircuitBreakerThreshold = 5
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	var files map[string]bool
	if len(cfg.Files) > 0 {
		files = make(map[string]bool, len(cfg.Files))
		for _, name := range cfg.Files {
			files[name] = true
		}
	}

	log.Debug("state watcher created",
		"debounce_interval", cfg.DebounceInterval,
		"files", cfg.Files)

	return &watcher{
		fsw:      fsw,
		logger:   log,
		config:   cfg,
		files:    files,
		events:   make(chan Event, 100),
		errors:   make(chan error, 10),
		stopChan: make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Start implements Watcher.Start.
func (w *watcher) Start(ctx context.Context, dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.running {
		return ErrAlreadyStarted
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s does not exist", ErrInvalidPath, dir)
	case err != nil:
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, dir)
	}

	// Non-recursive: area subdirectories never produce events.
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.running = true

	go w.loop(ctx)

	w.logger.Debug("state watcher started", "dir", dir)
	return nil
}

// Stop implements Watcher.Stop.
func (w *watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.running {
		return ErrNotStarted
	}

	close(w.stopChan)
	w.running = false

	w.logger.Debug("state watcher stopped")
	return nil
}

// Events implements Watcher.Events.
func (w *watcher) Events() <-chan Event {
	return w.events
}

// Errors implements Watcher.Errors.
func (w *watcher) Errors() <-chan error {
	return w.errors
}

// Close implements Watcher.Close.
func (w *watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.running {
		close(w.stopChan)
		w.running = false
	}

	w.pendingMu.Lock()
	for _, t := range w.pending {
		t.Stop()
	}
	w.pending = nil
	w.pendingMu.Unlock()

	close(w.events)
	close(w.errors)

	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	w.logger.Debug("state watcher closed")
	return nil
}

func (w *watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.handleError(err)
		}
	}
}

// handleEvent filters ev by file name and schedules its delivery.
func (w *watcher) handleEvent(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if w.files != nil && !w.files[name] {
		return
	}

	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}

	w.mu.Lock()
	w.failures = 0
	w.mu.Unlock()

	w.debounce(Event{
		Path:      ev.Name,
		Name:      name,
		Op:        op,
		Timestamp: time.Now(),
	})
}

// convertOp maps an fsnotify op to the most significant Op it carries.
func convertOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Chmod):
		return OpChmod, true
	default:
		return 0, false
	}
}

// debounce delivers ev after the interval unless another event for the
// same file arrives first; the last one wins.
func (w *watcher) debounce(ev Event) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if w.pending == nil {
		return
	}
	if t, ok := w.pending[ev.Name]; ok {
		t.Stop()
	}

	w.pending[ev.Name] = time.AfterFunc(w.config.DebounceInterval, func() {
		w.pendingMu.Lock()
		if w.pending != nil {
			delete(w.pending, ev.Name)
		}
		w.pendingMu.Unlock()

		w.mu.RLock()
		defer w.mu.RUnlock()
		if w.closed {
			return
		}
		select {
		case w.events <- ev:
		default:
			w.logger.Warn("event channel full, dropping event", "file", ev.Name)
		}
	})
}

// handleError forwards fsnotify errors until CircuitBreakerThreshold
// consecutive failures, then reports ErrCircuitBreakerOpen once.
func (w *watcher) handleError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.failures++
	w.logger.Warn("state watcher error", "error", err, "consecutive", w.failures)

	switch {
	case w.failures < w.config.CircuitBreakerThreshold:
	case w.failures == w.config.CircuitBreakerThreshold:
		w.logger.Error("too many watcher errors, suppressing further reports",
			"threshold", w.config.CircuitBreakerThreshold)
		err = ErrCircuitBreakerOpen
	default:
		return
	}

	select {
	case w.errors <- err:
	default:
		w.logger.Warn("error channel full, dropping error")
	}
}
