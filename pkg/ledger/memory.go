package ledger

import (
	"fmt"
	"sync"

	"github.com/0xmhha/iceland/pkg/parser"
)

// Memory is an in-memory Ledger for tests.
type Memory struct {
	mu      sync.Mutex
	records []parser.SessionRecord

	// AppendErr, when non-nil, is returned by Append.
	AppendErr error
}

// NewMemory creates a Memory ledger holding records.
func NewMemory(records ...parser.SessionRecord) *Memory {
	return &Memory{records: append([]parser.SessionRecord{}, records...)}
}

// Append implements Ledger.Append.
func (m *Memory) Append(rec parser.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	m.records = append(m.records, rec)
	return nil
}

// Load implements Ledger.Load.
func (m *Memory) Load(mode Mode) (*Result, error) {
	return m.ReadFrom(0, mode)
}

// ReadFrom implements Ledger.ReadFrom. Offsets count records, not bytes.
func (m *Memory) ReadFrom(offset int64, _ Mode) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset < 0 {
		return nil, ErrInvalidOffset
	}
	restarted := false
	if offset > int64(len(m.records)) {
		offset, restarted = 0, true
	}
	out := append([]parser.SessionRecord{}, m.records[offset:]...)
	return &Result{Records: out, Offset: int64(len(m.records)), Restarted: restarted}, nil
}

// Records returns a copy of the stored records.
func (m *Memory) Records() []parser.SessionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]parser.SessionRecord{}, m.records...)
}
