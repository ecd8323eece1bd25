package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xmhha/iceland/pkg/parser"
)

func TestFilePointer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_area")
	p := NewFilePointer(path)

	_, ok, err := p.Get()
	require.NoError(t, err)
	assert.False(t, ok, "pointer should start unset")

	require.NoError(t, p.Set("math"))
	area, ok, err := p.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "math", area)

	require.NoError(t, p.Set("work"))
	area, _, _ = p.Get()
	assert.Equal(t, "work", area)

	require.NoError(t, p.Clear())
	_, ok, err = p.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, p.Clear())
}

func TestFilePointerTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_area")
	require.NoError(t, os.WriteFile(path, []byte("  gaming \n\n"), 0600))

	area, ok, err := NewFilePointer(path).Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gaming", area)
}

func TestFilePointerBlankFileIsUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_area")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	_, ok, err := NewFilePointer(path).Get()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileTimer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_start")
	timer := NewFileTimer(path)

	_, ok, err := timer.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	start := time.Date(2024, 5, 2, 8, 0, 0, 500, time.UTC)
	require.NoError(t, timer.Save(start))

	got, ok, err := timer.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(start.Truncate(time.Second)), "got %v", got)

	require.NoError(t, timer.Delete())
	_, ok, err = timer.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, timer.Delete())
}

func TestFileTimerMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session_start")
	require.NoError(t, os.WriteFile(path, []byte("not a time\n"), 0600))

	_, ok, err := NewFileTimer(path).Load()
	assert.False(t, ok)
	assert.True(t, errors.Is(err, parser.ErrInvalidTimestamp), "err = %v", err)

	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))

	// The unreadable value is left in place.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "not a time\n", string(data))
}

func TestMemoryStores(t *testing.T) {
	p := NewMemoryPointer("")
	_, ok, _ := p.Get()
	assert.False(t, ok)

	p = NewMemoryPointer("work")
	area, ok, _ := p.Get()
	assert.True(t, ok)
	assert.Equal(t, "work", area)

	timer := NewMemoryTimer()
	timer.LoadErr = errors.New("boom")
	_, _, err := timer.Load()
	assert.Error(t, err)

	require.NoError(t, timer.Save(time.Unix(100, 0)))
	got, ok, err := timer.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(100), got.Unix())
}
