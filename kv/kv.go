// Package kv is the synchronous string-keyed storage that promptpad persists
// its state into. Every backend reports failures wrapped in ErrUnavailable so
// callers can degrade instead of crashing.
package kv

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the storage medium cannot be read or written.
var ErrUnavailable = errors.New("storage unavailable")

// Store is a string-keyed value store. Calls block until the medium answers.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set creates or replaces the value for key.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the backend named by backend, rooted at path.
// path is ignored for the memory backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(path), nil
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// unavailable wraps err so errors.Is(err, ErrUnavailable) holds.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
