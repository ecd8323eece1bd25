// Package flashcard loads flashcard decks and plays them on a terminal.
//
// A deck is a plain text file in an area's flashcards directory with one
// card per line in the form "front|back". Lines without a separator are
// skipped and reported; blank lines are ignored.
package flashcard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Separator divides the front and back of a card.
const Separator = "|"

// ErrNoDeckDir is returned when an area has no flashcards directory.
var ErrNoDeckDir = errors.New("no flashcards folder")

// Card is one flashcard.
type Card struct {
	Front string
	Back  string
}

// Deck is a parsed deck file.
type Deck struct {
	Name  string
	Cards []Card

	// Skipped lists the 1-based line numbers without a separator.
	Skipped []int
}

// ListDecks returns the deck file names in dir, sorted. Hidden files and
// subdirectories are ignored.
func ListDecks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDeckDir, dir)
		}
		return nil, fmt.Errorf("failed to read flashcards: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// LoadDeck reads and parses the deck at path.
func LoadDeck(path string) (*Deck, error) {
	f, err := os.Open(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open deck: %w", err)
	}
	defer f.Close()

	deck, err := Parse(f)
	if err != nil {
		return nil, err
	}
	deck.Name = filepath.Base(path)
	return deck, nil
}

// Parse reads cards from r.
func Parse(r io.Reader) (*Deck, error) {
	deck := &Deck{}
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		front, back, ok := strings.Cut(text, Separator)
		if !ok {
			deck.Skipped = append(deck.Skipped, line)
			continue
		}
		deck.Cards = append(deck.Cards, Card{
			Front: strings.TrimSpace(front),
			Back:  strings.TrimSpace(back),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}

	return deck, nil
}

// Player walks through a deck, waiting for a line of input before
// revealing each back and before each next card.
type Player struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlayer creates a Player reading from in and writing to out.
func NewPlayer(in io.Reader, out io.Writer) *Player {
	return &Player{in: bufio.NewReader(in), out: out}
}

// Play shows every card of deck. Input ending early stops the session
// without an error.
func (p *Player) Play(deck *Deck) error {
	n := len(deck.Cards)
	fmt.Fprintf(p.out, "\n--- Starting %s (%d cards) ---\n", deck.Name, n)

	for i, card := range deck.Cards {
		fmt.Fprintf(p.out, "\nCard %d of %d\n", i+1, n)
		fmt.Fprintf(p.out, "Front: %s\n", card.Front)
		fmt.Fprintln(p.out, "Press Enter to reveal back...")
		if !p.wait() {
			return nil
		}

		fmt.Fprintf(p.out, "Back: %s\n", card.Back)
		if i < n-1 {
			fmt.Fprintln(p.out, "Press Enter for next card...")
			if !p.wait() {
				return nil
			}
		}
	}

	fmt.Fprintln(p.out, "--- Finished deck ---")
	return nil
}

func (p *Player) wait() bool {
	_, err := p.in.ReadString('\n')
	return err == nil
}
