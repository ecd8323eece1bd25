package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"  yes  \n", true},
		{"yes", true},
		{"y\n", false},
		{"YES\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		c := NewLineConfirmer(strings.NewReader(tt.input), &out)

		got, err := c.Confirm("Delete everything?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Delete everything?")
		assert.Contains(t, out.String(), "Type 'yes' to confirm")
	}
}

func TestAlways(t *testing.T) {
	ok, err := Always(true).Confirm("x")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = Always(false).Confirm("x")
	assert.False(t, ok)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(strings.NewReader("")))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m selectModel, keys ...string) selectModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(selectModel)
	}
	return m
}

func TestSelectModelNavigation(t *testing.T) {
	m := newSelectModel("Select an area", []string{"work", "math", "gaming"}, 0)

	m = press(m, "down", "down", "down")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last item")

	m = press(m, "up", "k")
	assert.Equal(t, 0, m.cursor)

	m = press(m, "j", "enter")
	assert.Equal(t, 1, m.chosen)
	assert.False(t, m.cancelled)
}

func TestSelectModelCancel(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := press(newSelectModel("t", []string{"a"}, 0), k)
		assert.True(t, m.cancelled, "key %q", k)
		assert.Equal(t, -1, m.chosen)
	}
}

func TestSelectModelView(t *testing.T) {
	m := newSelectModel("Select an area", []string{"work", "math"}, 1)
	view := m.View()

	assert.Contains(t, view, "Select an area")
	assert.Contains(t, view, "> math")
	assert.Contains(t, view, "work")

	m = press(m, "enter")
	assert.Empty(t, m.View())
}

func TestSelectorNonInteractive(t *testing.T) {
	s := NewSelector(strings.NewReader(""), &bytes.Buffer{})

	_, err := s.Select("t", []string{"a"})
	assert.True(t, errors.Is(err, ErrNotInteractive))

	_, err = s.Select("t", nil)
	assert.True(t, errors.Is(err, ErrNoItems))
}
