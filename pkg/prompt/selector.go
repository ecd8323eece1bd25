package prompt

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(0).
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)
)

// selectModel is the bubbletea model of the list selector.
type selectModel struct {
	title     string
	items     []string
	cursor    int
	chosen    int
	cancelled bool
}

func newSelectModel(title string, items []string, initial int) selectModel {
	if initial < 0 || initial >= len(items) {
		initial = 0
	}
	return selectModel{title: title, items: items, cursor: initial, chosen: -1}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		m.cursor = len(m.items) - 1

	case "enter", " ":
		m.chosen = m.cursor
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.chosen >= 0 || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString(itemStyle.Render(item))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: move  enter: select  q: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Selector shows a list on a terminal and returns the chosen index.
type Selector struct {
	in  io.Reader
	out io.Writer

	// interactive reports whether in is a terminal.
	interactive func(io.Reader) bool
}

// NewSelector creates a Selector on the given streams.
func NewSelector(in io.Reader, out io.Writer) *Selector {
	return &Selector{in: in, out: out, interactive: IsTerminal}
}

// Select lets the user pick one of items.
//
// Returns error if:
//   - ErrNoItems: items is empty
//   - ErrNotInteractive: input is not a terminal
//   - ErrCancelled: the user quit without choosing
func (s *Selector) Select(title string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, ErrNoItems
	}
	if !s.interactive(s.in) {
		return -1, ErrNotInteractive
	}

	p := tea.NewProgram(newSelectModel(title, items, 0),
		tea.WithInput(s.in),
		tea.WithOutput(s.out))

	final, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("selector failed: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.cancelled || m.chosen < 0 {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}
