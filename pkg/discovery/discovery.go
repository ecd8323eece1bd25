// Package discovery finds area directories under the iceland base
// directory.
//
// Any visible subdirectory whose name is a valid area name counts as an
// area directory, configured or not. Hidden entries and files (config,
// pointer, timer, ledger, lock database) are ignored.
//
// Example usage:
//
//	d := discovery.New("~/.iceland", logger.Default())
//	dirs, err := d.Scan()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, dir := range dirs {
//	    fmt.Printf("Area: %s (%s)\n", dir.Name, dir.Path)
//	}
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/0xmhha/iceland/pkg/config"
)

// Logger defines the logging interface used by the discovery package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// AreaDir represents a discovered area directory.
type AreaDir struct {
	// Name is the directory name, which is the area name.
	Name string

	// Path is the absolute path to the directory.
	Path string

	// ModTime is the last modification time.
	ModTime time.Time
}

// Discoverer provides methods for discovering area directories.
type Discoverer interface {
	// Scan returns every area directory under the base directory, sorted
	// by name. A missing base directory yields an empty result.
	Scan() ([]AreaDir, error)

	// Discover returns the names of the directories Scan finds.
	Discover() ([]string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	baseDir string
	logger  Logger
}

// New creates a new Discoverer instance.
//
// Parameters:
//   - baseDir: The iceland base directory; a leading ~ is expanded
//   - logger: Logger instance for diagnostic messages
//
// Returns a configured Discoverer.
func New(baseDir string, logger Logger) Discoverer {
	return &discoverer{
		baseDir: ExpandHome(baseDir),
		logger:  logger,
	}
}

// Scan implements Discoverer.Scan.
func (d *discoverer) Scan() ([]AreaDir, error) {
	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			d.logger.Debug("base directory not found", "path", d.baseDir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", d.baseDir, err)
	}

	dirs := make([]AreaDir, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if err := config.ValidateAreaName(entry.Name()); err != nil {
			d.logger.Debug("skipping directory", "name", entry.Name(), "reason", err)
			continue
		}

		path := filepath.Join(d.baseDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			d.logger.Warn("failed to get directory info",
				"path", path,
				"error", err)
			continue
		}

		dirs = append(dirs, AreaDir{
			Name:    entry.Name(),
			Path:    path,
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })

	d.logger.Debug("discovery complete", "path", d.baseDir, "areas_found", len(dirs))
	return dirs, nil
}

// Discover implements Discoverer.Discover.
func (d *discoverer) Discover() ([]string, error) {
	dirs, err := d.Scan()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(dirs))
	for i, dir := range dirs {
		names[i] = dir.Name
	}
	return names, nil
}

// ExpandHome expands ~ in file paths to the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if !strings.HasPrefix(path, "~/") {
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
