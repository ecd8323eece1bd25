package journal

import (
	"sync"
	"time"
)

// Memory is an in-memory Journal for tests.
type Memory struct {
	mu     sync.Mutex
	op     *Op
	closed bool

	// History lists every step recorded, in order, as "kind:step".
	History []string
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Begin implements Journal.Begin.
func (m *Memory) Begin(op Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.op != nil {
		return ErrPending
	}
	op.Step = StepBegun
	op.Started = time.Now()
	op.Updated = op.Started
	m.op = &op
	m.History = append(m.History, string(op.Kind)+":"+string(StepBegun))
	return nil
}

// Advance implements Journal.Advance.
func (m *Memory) Advance(step Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.op == nil {
		return ErrNoPending
	}
	m.op.Step = step
	m.History = append(m.History, string(m.op.Kind)+":"+string(step))
	return nil
}

// Pending implements Journal.Pending.
func (m *Memory) Pending() (*Op, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.op == nil {
		return nil, nil
	}
	op := *m.op
	return &op, nil
}

// Complete implements Journal.Complete.
func (m *Memory) Complete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op = nil
	return nil
}

// Close implements Journal.Close.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Set records op as pending at its current Step, simulating an
// interrupted run.
func (m *Memory) Set(op Op) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op = &op
}
