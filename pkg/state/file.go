package state

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/0xmhha/iceland/pkg/fsutil"
	"github.com/0xmhha/iceland/pkg/parser"
)

// filePointer implements Pointer on a one-line text file.
type filePointer struct {
	path string
}

// NewFilePointer creates a Pointer backed by the file at path.
func NewFilePointer(path string) Pointer {
	return &filePointer{path: path}
}

// Get implements Pointer.Get.
func (p *filePointer) Get() (string, bool, error) {
	data, err := os.ReadFile(p.path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read current area: %w", err)
	}

	area := strings.TrimSpace(string(data))
	if area == "" {
		return "", false, nil
	}
	return area, true, nil
}

// Set implements Pointer.Set.
func (p *filePointer) Set(area string) error {
	if err := fsutil.WriteFileAtomic(p.path, []byte(area+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write current area: %w", err)
	}
	return nil
}

// Clear implements Pointer.Clear.
func (p *filePointer) Clear() error {
	if err := fsutil.RemoveIfExists(p.path); err != nil {
		return fmt.Errorf("failed to clear current area: %w", err)
	}
	return nil
}

// fileTimer implements TimerStore on a file holding one RFC 3339 timestamp.
type fileTimer struct {
	path string
}

// NewFileTimer creates a TimerStore backed by the file at path.
func NewFileTimer(path string) TimerStore {
	return &fileTimer{path: path}
}

// Load implements TimerStore.Load.
func (t *fileTimer) Load() (time.Time, bool, error) {
	data, err := os.ReadFile(t.path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read session start: %w", err)
	}

	start, err := parser.ParseTimestamp(string(data))
	if err != nil {
		return time.Time{}, false, err
	}
	return start, true, nil
}

// Save implements TimerStore.Save.
func (t *fileTimer) Save(start time.Time) error {
	data := parser.FormatTimestamp(start) + "\n"
	if err := fsutil.WriteFileAtomic(t.path, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write session start: %w", err)
	}
	return nil
}

// Delete implements TimerStore.Delete.
func (t *fileTimer) Delete() error {
	if err := fsutil.RemoveIfExists(t.path); err != nil {
		return fmt.Errorf("failed to delete session start: %w", err)
	}
	return nil
}
