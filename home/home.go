// Package home resolves the promptpad home directory layout.
package home

import (
	"fmt"
	"os"
	"path/filepath"

	"promptpad/kv"
)

const (
	// DefaultDirName is the default name for the promptpad home directory.
	DefaultDirName = ".promptpad"

	// DataDirName is the subdirectory for persisted prompts and settings.
	DataDirName = "data"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the promptpad home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.promptpad).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) DataPath() string {
	return filepath.Join(d.path, DataDirName)
}

func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// StorePath returns the default location of the key-value store for backend.
// The memory backend has no file and yields "".
func (d *Dir) StorePath(backend string) string {
	switch backend {
	case kv.BackendSQLite:
		return filepath.Join(d.DataPath(), "promptpad.db")
	case kv.BackendMemory:
		return ""
	default:
		return filepath.Join(d.DataPath(), "storage.json")
	}
}

// EnsureExists creates the home and data directories.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.DataPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
