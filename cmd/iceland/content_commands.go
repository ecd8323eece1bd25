package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0xmhha/iceland/pkg/flashcard"
	"github.com/0xmhha/iceland/pkg/prompt"
	"github.com/0xmhha/iceland/pkg/scaffold"
)

// Destroy targets.
const (
	targetBrowser = "browser"
	targetNotes   = "notes"
)

// scaffolder returns the area directory manager for the resolved base
// directory.
func (a *app) scaffolder() (*scaffold.Scaffolder, error) {
	rt, err := a.load()
	if err != nil {
		return nil, err
	}
	return scaffold.New(rt.paths.Base, rt.logger), nil
}

func newDestroyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "destroy <area> <browser|notes>",
		Short:     "Reset an area's browser profiles or notes",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{targetBrowser, targetNotes},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, target := args[0], args[1]
			if target != targetBrowser && target != targetNotes {
				return fmt.Errorf("unknown destroy target %q (want %s or %s)", target, targetBrowser, targetNotes)
			}

			s, err := a.scaffolder()
			if err != nil {
				return err
			}

			if target == targetBrowser {
				reset, err := s.ResetBrowser(name)
				for _, dir := range reset {
					a.printf("Reset browser directory: %s\n", dir)
				}
				if err != nil {
					return err
				}
				if len(reset) == 0 {
					a.printf("No browser directory found for %s\n", name)
				}
				return nil
			}

			ok, err := s.ResetNotes(name)
			if err != nil {
				return err
			}
			if ok {
				a.printf("Reset notes for %s\n", name)
			} else {
				a.printf("No notes folder found for %s\n", name)
			}
			return nil
		},
	}
}

func newNotesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <area> <text>...",
		Short: "Append a line to an area's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scaffolder()
			if err != nil {
				return err
			}

			path, err := s.AppendNote(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			a.printf("Note added to %s\n", path)
			return nil
		},
	}
}

func newFlashcardsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "flashcards <area>",
		Short: "Pick a flashcard deck of an area and play it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.scaffolder()
			if err != nil {
				return err
			}

			dir := s.FlashcardsPath(args[0])
			decks, err := flashcard.ListDecks(dir)
			if err != nil {
				return err
			}
			if len(decks) == 0 {
				a.printf("No flashcard decks available.\n")
				return nil
			}

			idx, err := a.itemSelector().Select("Select a deck", decks)
			if errors.Is(err, prompt.ErrCancelled) {
				a.printf("No deck selected.\n")
				return nil
			}
			if err != nil {
				return err
			}

			deck, err := flashcard.LoadDeck(filepath.Join(dir, decks[idx]))
			if err != nil {
				return err
			}
			for _, line := range deck.Skipped {
				a.warn("line %d skipped (no '%s' separator)", line, flashcard.Separator)
			}
			if len(deck.Cards) == 0 {
				a.printf("Deck is empty or malformed.\n")
				return nil
			}

			return flashcard.NewPlayer(a.in, a.out).Play(deck)
		},
	}
}
