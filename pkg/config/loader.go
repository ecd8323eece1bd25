package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/0xmhha/iceland/pkg/fsutil"
)

// fileConfig mirrors Config with optional fields so that keys absent from
// the file keep their defaults while present-but-empty values (an empty
// area list, an empty browser command) are honored.
type fileConfig struct {
	Areas          *[]string      `yaml:"areas"`
	BrowserCommand *string        `yaml:"browser_command"`
	Logging        *LoggingConfig `yaml:"logging"`
}

// fileStore implements Store on a YAML file.
type fileStore struct {
	path string
}

// NewFileStore creates a Store backed by the YAML file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

// Load implements Store.Load.
func (s *fileStore) Load() (*Config, error) {
	cfg, err := LoadFile(s.path)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save implements Store.Save.
func (s *fileStore) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Exists implements Store.Exists.
func (s *fileStore) Exists() (bool, error) {
	return fsutil.Exists(s.path)
}

// LoadFile reads and validates the config file at path, merging it over
// the defaults.
//
// Returns ErrConfigNotFound if the file does not exist and ErrCorrupt if it
// cannot be decoded or violates an invariant.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	fc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	cfg := merge(Default(), fc)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}

	return cfg, nil
}

// decode parses data strictly: unknown keys and an empty document are
// schema violations.
func decode(data []byte) (*fileConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	return &fc, nil
}

// merge overlays the fields present in the file onto base.
func merge(base *Config, fc *fileConfig) *Config {
	result := base.Clone()

	if fc.Areas != nil {
		result.Areas = append([]string{}, (*fc.Areas)...)
	}
	if fc.BrowserCommand != nil {
		result.BrowserCommand = *fc.BrowserCommand
	}
	if fc.Logging != nil {
		if fc.Logging.Level != "" {
			result.Logging.Level = fc.Logging.Level
		}
		if fc.Logging.Output != "" {
			result.Logging.Output = fc.Logging.Output
		}
		if fc.Logging.Format != "" {
			result.Logging.Format = fc.Logging.Format
		}
	}

	return result
}

// memoryStore implements Store in memory.
type memoryStore struct {
	cfg *Config
}

// NewMemoryStore creates an in-memory Store. A nil initial value behaves
// like a missing file.
func NewMemoryStore(initial *Config) Store {
	s := &memoryStore{}
	if initial != nil {
		s.cfg = initial.Clone()
	}
	return s
}

// Load implements Store.Load.
func (s *memoryStore) Load() (*Config, error) {
	if s.cfg == nil {
		return Default(), nil
	}
	return s.cfg.Clone(), nil
}

// Save implements Store.Save.
func (s *memoryStore) Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	s.cfg = cfg.Clone()
	return nil
}

// Exists implements Store.Exists.
func (s *memoryStore) Exists() (bool, error) {
	return s.cfg != nil, nil
}
