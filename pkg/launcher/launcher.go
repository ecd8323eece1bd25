// Package launcher starts the per-area browser from the configured command
// template.
//
// The template is split on whitespace after substituting the area name for
// every "{area}" placeholder; the first word is the program and the rest
// are its arguments. The process is started detached and not waited for.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/0xmhha/iceland/pkg/config"
	"github.com/0xmhha/iceland/pkg/logger"
)

// ErrNoCommand is returned when the template expands to nothing.
var ErrNoCommand = errors.New("no browser command configured")

// StartFunc starts name with args without waiting for it to exit.
type StartFunc func(name string, args ...string) error

// Launcher starts external processes.
type Launcher struct {
	start  StartFunc
	logger logger.Logger
}

// New creates a Launcher. A nil start uses os/exec.
func New(start StartFunc, log logger.Logger) *Launcher {
	if start == nil {
		start = startProcess
	}
	return &Launcher{start: start, logger: log}
}

// Expand substitutes area into template and splits the result into the
// program and its arguments.
func Expand(template, area string) []string {
	return strings.Fields(strings.ReplaceAll(template, config.AreaPlaceholder, area))
}

// Launch starts the command for area.
//
// Returns ErrNoCommand if template is blank.
func (l *Launcher) Launch(template, area string) error {
	argv := Expand(template, area)
	if len(argv) == 0 {
		return ErrNoCommand
	}

	if err := l.start(argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("could not launch %s: %w", argv[0], err)
	}

	l.logger.Info("browser launched", "area", area, "command", argv[0])
	return nil
}

func startProcess(name string, args ...string) error {
	cmd := exec.Command(name, args...) // nolint:gosec
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
