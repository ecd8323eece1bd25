// Package prompt provides the interactive capabilities of the CLI: a typed
// confirmation for destructive operations and a list selector.
//
// Both are plain values behind small interfaces, so callers can substitute
// scripted answers in tests and in non-interactive runs.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConfirmWord must be typed to confirm.
const ConfirmWord = "yes"

// Common errors returned by the prompt package.
var (
	// ErrNotInteractive is returned when a selector needs a terminal.
	ErrNotInteractive = errors.New("not running in an interactive terminal")

	// ErrCancelled is returned when the user quits a selector.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoItems is returned when there is nothing to select from.
	ErrNoItems = errors.New("nothing to select")
)

// LineConfirmer asks on out and reads one line from in.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a LineConfirmer.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints message and returns true only if the answer is exactly
// "yes". End of input counts as a refusal.
func (c *LineConfirmer) Confirm(message string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s\nType '%s' to confirm: ", message, ConfirmWord); err != nil {
		return false, err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.TrimSpace(line) == ConfirmWord, nil
}

// Always answers every confirmation with its own value.
type Always bool

// Confirm implements the confirmation capability.
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
