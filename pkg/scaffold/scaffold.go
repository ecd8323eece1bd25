// Package scaffold manages the backing directory tree of each area under
// the base directory: creating it from a template, resetting parts of it,
// reading its links and appending notes.
//
// Example usage:
//
//	s := scaffold.New(paths.Base, log)
//	if err := s.Create("math"); err != nil {
//	    return err
//	}
//	links, ok, err := s.ReadLinks("math")
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/fsutil"
	"github.com/0xmhha/iceland/pkg/logger"
)

// Scaffolder implements the area directory operations.
type Scaffolder struct {
	base   string
	logger logger.Logger
}

// New creates a Scaffolder rooted at base.
func New(base string, log logger.Logger) *Scaffolder {
	return &Scaffolder{base: base, logger: log}
}

// Path returns the backing directory of area.
func (s *Scaffolder) Path(area string) string {
	return filepath.Join(s.base, area)
}

// FlashcardsPath returns the flashcards directory of area.
func (s *Scaffolder) FlashcardsPath(area string) string {
	return filepath.Join(s.Path(area), FlashcardsDir)
}

// Create builds the directory tree of area. Existing directories are kept
// and an existing links file is never overwritten, so Create can repair a
// partially deleted area.
func (s *Scaffolder) Create(area string) error {
	if err := config.ValidateAreaName(area); err != nil {
		return err
	}

	root := s.Path(area)
	tmpl := TemplateFor(area)

	dirs := append([]string{NotesDir, FlashcardsDir}, tmpl.Dirs...)
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0700); err != nil {
			return fmt.Errorf("failed to create %s for area %s: %w", d, area, err)
		}
	}

	if tmpl.Links != nil {
		links := filepath.Join(root, LinksFile)
		exists, err := fsutil.Exists(links)
		if err != nil {
			return err
		}
		if !exists {
			content := strings.Join(tmpl.Links, "\n") + "\n"
			if err := fsutil.WriteFileAtomic(links, []byte(content), 0600); err != nil {
				return fmt.Errorf("failed to seed links for area %s: %w", area, err)
			}
		}
	}

	s.logger.Debug("area scaffolded", "area", area, "path", root)
	return nil
}

// Exists reports whether area has a backing directory.
func (s *Scaffolder) Exists(area string) (bool, error) {
	if config.ValidateAreaName(area) != nil {
		return false, nil
	}

	info, err := os.Stat(s.Path(area))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat area %s: %w", area, err)
	}
	return info.IsDir(), nil
}

// Remove deletes the whole backing directory of area. A missing directory
// is not an error.
func (s *Scaffolder) Remove(area string) error {
	if err := config.ValidateAreaName(area); err != nil {
		return err
	}

	if err := os.RemoveAll(s.Path(area)); err != nil {
		return fmt.Errorf("failed to remove area %s: %w", area, err)
	}

	s.logger.Info("area directory removed", "area", area)
	return nil
}

// ReadLinks returns the content of the area's links file. ok is false
// when the area has none.
func (s *Scaffolder) ReadLinks(area string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.Path(area), LinksFile)) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read links for area %s: %w", area, err)
	}
	return string(data), true, nil
}

// ResetBrowser empties every browser profile directory the area has and
// returns the names of the directories reset.
func (s *Scaffolder) ResetBrowser(area string) ([]string, error) {
	if err := s.requireArea(area); err != nil {
		return nil, err
	}

	var reset []string
	for _, name := range BrowserDirs {
		ok, err := s.resetDir(filepath.Join(s.Path(area), name))
		if err != nil {
			return reset, err
		}
		if ok {
			reset = append(reset, name)
		}
	}
	return reset, nil
}

// ResetNotes empties the area's notes directory. It reports false when
// the area has no notes directory.
func (s *Scaffolder) ResetNotes(area string) (bool, error) {
	if err := s.requireArea(area); err != nil {
		return false, err
	}
	return s.resetDir(filepath.Join(s.Path(area), NotesDir))
}

// AppendNote appends text as one line to the area's notes file and
// returns the file path.
func (s *Scaffolder) AppendNote(area, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyNote
	}

	dir := filepath.Join(s.Path(area), NotesDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNoNotesDir, area)
	}

	path := filepath.Join(dir, NotesFile)
	// #nosec G304: path is built from a validated area name
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // nolint:gosec
	if err != nil {
		return "", fmt.Errorf("failed to open notes: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(strings.TrimRight(text, "\n") + "\n"); err != nil {
		return "", fmt.Errorf("failed to write note: %w", err)
	}
	return path, nil
}

func (s *Scaffolder) requireArea(area string) error {
	ok, err := s.Exists(area)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAreaMissing, area)
	}
	return nil
}

// resetDir recreates dir empty if it exists.
func (s *Scaffolder) resetDir(dir string) (bool, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, fmt.Errorf("failed to recreate %s: %w", dir, err)
	}

	s.logger.Info("directory reset", "path", dir)
	return true, nil
}
