package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/0xmhha/iceland/pkg/logger"
)

var stateFiles = []string{"current_area", "session_start", "sessions.csv"}

// startWatcher creates and starts a watcher on a temp dir.
func startWatcher(t *testing.T, cfg Config) (Watcher, string) {
	t.Helper()

	tmpDir := t.TempDir()

	w, err := New(cfg, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := w.Close(); err != nil {
			t.Logf("Close() error = %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	if err := w.Start(ctx, tmpDir); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Give watcher time to start.
	time.Sleep(50 * time.Millisecond)

	return w, tmpDir
}

// waitEvent waits for the next event or fails.
func waitEvent(t *testing.T, w Watcher) Event {
	t.Helper()

	select {
	case event := <-w.Events():
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

// drainEvents drains all pending events from a channel.
func drainEvents(ch <-chan Event) {
	for {
		select {
		case <-ch:
			// Drain.
		default:
			return
		}
	}
}

func TestNew(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w == nil {
		t.Error("New() returned nil watcher")
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Close() error = %v", closeErr)
	}
}

func TestStartInvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(tmpDir, "nonexistent"), file} {
		w, err := New(Config{}, logger.Noop())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if startErr := w.Start(context.Background(), path); !errors.Is(startErr, ErrInvalidPath) {
			t.Errorf("Start(%s) error = %v, want ErrInvalidPath", path, startErr)
		}

		if err := w.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}
}

func TestStartAlreadyStarted(t *testing.T) {
	w, dir := startWatcher(t, Config{})

	if err := w.Start(context.Background(), dir); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}
}

func TestStateFileEvents(t *testing.T) {
	w, dir := startWatcher(t, Config{
		DebounceInterval: 50 * time.Millisecond,
		Files:            stateFiles,
	})

	pointer := filepath.Join(dir, "current_area")
	if err := os.WriteFile(pointer, []byte("work\n"), 0600); err != nil {
		t.Fatalf("Failed to write pointer: %v", err)
	}

	event := waitEvent(t, w)
	if event.Path != pointer {
		t.Errorf("event.Path = %s, want %s", event.Path, pointer)
	}
	if event.Name != "current_area" {
		t.Errorf("event.Name = %s, want current_area", event.Name)
	}
	if event.Timestamp.IsZero() {
		t.Error("event.Timestamp is zero")
	}

	time.Sleep(100 * time.Millisecond)
	drainEvents(w.Events())

	if err := os.Remove(pointer); err != nil {
		t.Fatalf("Failed to remove pointer: %v", err)
	}

	event = waitEvent(t, w)
	if event.Op != OpRemove {
		t.Errorf("event.Op = %v, want REMOVE", event.Op)
	}
}

func TestAtomicRenameDetected(t *testing.T) {
	w, dir := startWatcher(t, Config{
		DebounceInterval: 50 * time.Millisecond,
		Files:            stateFiles,
	})

	// Temp file names are filtered, the rename target is not.
	tmp := filepath.Join(dir, ".current_area.tmp")
	if err := os.WriteFile(tmp, []byte("math\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, "current_area")); err != nil {
		t.Fatal(err)
	}

	event := waitEvent(t, w)
	if event.Name != "current_area" {
		t.Errorf("event for %s, want current_area", event.Name)
	}
}

func TestOtherFilesIgnored(t *testing.T) {
	w, dir := startWatcher(t, Config{
		DebounceInterval: 50 * time.Millisecond,
		Files:            stateFiles,
	})

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("areas: []\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "work", "notes"), 0700); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-w.Events():
		t.Errorf("Received unexpected event: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected - no events.
	}
}

func TestDebouncing(t *testing.T) {
	w, dir := startWatcher(t, Config{
		DebounceInterval: 200 * time.Millisecond,
	})

	ledger := filepath.Join(dir, "sessions.csv")

	// Create file first (to avoid create + write events).
	if err := os.WriteFile(ledger, []byte("area,start,end\n"), 0600); err != nil {
		t.Fatalf("Failed to create ledger: %v", err)
	}
	time.Sleep(400 * time.Millisecond)
	drainEvents(w.Events())

	// Rapid appends, each within the debounce interval.
	for i := 0; i < 5; i++ {
		f, err := os.OpenFile(ledger, os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.WriteString("work,2024-01-15T10:00:00Z,2024-01-15T10:01:00Z\n"); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
		time.Sleep(30 * time.Millisecond)
	}

	eventCount := 0
	timeout := time.After(1 * time.Second)
loop:
	for {
		select {
		case <-w.Events():
			eventCount++
		case <-timeout:
			break loop
		}
	}

	if eventCount == 0 {
		t.Error("No events received, debouncing may be too aggressive")
	}
	if eventCount >= 5 {
		t.Errorf("Received %d events for 5 rapid writes, debouncing not working", eventCount)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{Op(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op.String() = %v, want %v", got, tt.want)
		}
	}
}

func TestStop(t *testing.T) {
	w, _ := startWatcher(t, Config{})

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := w.Stop(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("second Stop() error = %v, want ErrNotStarted", err)
	}
}

func TestStopNotStarted(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			t.Logf("Close() error = %v", closeErr)
		}
	}()

	if stopErr := w.Stop(); !errors.Is(stopErr, ErrNotStarted) {
		t.Errorf("Stop() error = %v, want ErrNotStarted", stopErr)
	}
}

func TestCloseTwice(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("First Close() error = %v", closeErr)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Errorf("Second Close() error = %v", closeErr)
	}
}

func TestStartAfterClose(t *testing.T) {
	w, err := New(Config{}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if closeErr := w.Close(); closeErr != nil {
		t.Fatalf("Close() error = %v", closeErr)
	}

	if startErr := w.Start(context.Background(), t.TempDir()); !errors.Is(startErr, ErrWatcherClosed) {
		t.Errorf("Start() error = %v, want ErrWatcherClosed", startErr)
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in     fsnotify.Op
		want   Op
		wantOK bool
	}{
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Write | fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, OpChmod, true},
		{0, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCircuitBreaker(t *testing.T) {
	iface, err := New(Config{CircuitBreakerThreshold: 3}, logger.Noop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer iface.Close()
	w := iface.(*watcher)

	fail := errors.New("queue overflow")
	for i := 0; i < 5; i++ {
		w.handleError(fail)
	}

	var got []error
	for len(w.errors) > 0 {
		got = append(got, <-w.errors)
	}
	if len(got) != 3 {
		t.Fatalf("received %d errors, want 3: %v", len(got), got)
	}
	if !errors.Is(got[0], fail) || !errors.Is(got[1], fail) {
		t.Errorf("first errors = %v, want the fsnotify error", got[:2])
	}
	if !errors.Is(got[2], ErrCircuitBreakerOpen) {
		t.Errorf("third error = %v, want ErrCircuitBreakerOpen", got[2])
	}

	// A delivered event closes the breaker again.
	w.handleEvent(fsnotify.Event{Name: "/base/current_area", Op: fsnotify.Write})
	w.handleError(fail)
	if err := <-w.errors; !errors.Is(err, fail) {
		t.Errorf("error after reset = %v, want the fsnotify error", err)
	}
}
