package state

import (
	"sync"
	"time"
)

// MemoryPointer is an in-memory Pointer for tests.
type MemoryPointer struct {
	mu   sync.Mutex
	area string
	set  bool

	// SetErr, when non-nil, is returned by Set.
	SetErr error
}

// NewMemoryPointer creates a MemoryPointer, optionally pre-set to area.
func NewMemoryPointer(area string) *MemoryPointer {
	return &MemoryPointer{area: area, set: area != ""}
}

// Get implements Pointer.Get.
func (p *MemoryPointer) Get() (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.area, p.set, nil
}

// Set implements Pointer.Set.
func (p *MemoryPointer) Set(area string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SetErr != nil {
		return p.SetErr
	}
	p.area, p.set = area, true
	return nil
}

// Clear implements Pointer.Clear.
func (p *MemoryPointer) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.area, p.set = "", false
	return nil
}

// MemoryTimer is an in-memory TimerStore for tests.
type MemoryTimer struct {
	mu    sync.Mutex
	start time.Time
	set   bool

	// LoadErr, when non-nil, is returned by Load to simulate an
	// unreadable timer.
	LoadErr error
}

// NewMemoryTimer creates an empty MemoryTimer.
func NewMemoryTimer() *MemoryTimer {
	return &MemoryTimer{}
}

// Load implements TimerStore.Load.
func (t *MemoryTimer) Load() (time.Time, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.LoadErr != nil {
		return time.Time{}, false, t.LoadErr
	}
	return t.start, t.set, nil
}

// Save implements TimerStore.Save.
func (t *MemoryTimer) Save(start time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start, t.set = start, true
	t.LoadErr = nil
	return nil
}

// Delete implements TimerStore.Delete.
func (t *MemoryTimer) Delete() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start, t.set = time.Time{}, false
	t.LoadErr = nil
	return nil
}
