package prompt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"promptpad/kv"
)

// Store owns the ordered collection of saved base prompts. It keeps no copy
// between calls: every operation reads the adapter, and every mutation writes
// the whole collection back before returning.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *slog.Logger
}

// NewStore creates a prompt store on top of a key-value adapter.
func NewStore(store kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: store, logger: logger}
}

// Load returns the saved prompts in insertion order. A missing, unreadable or
// corrupt value yields an empty collection.
func (s *Store) Load() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompts, err := s.load()
	if err != nil {
		s.logger.Warn("prompt storage unreadable, using empty collection", "error", err)
		return []string{}
	}
	return prompts
}

// Add appends text unless it is blank or already saved. It reports whether
// the collection changed. Nothing is written when the stored collection
// cannot be read.
func (s *Store) Add(text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prompts, err := s.load()
	if err != nil {
		return false, err
	}
	for _, p := range prompts {
		if p == text {
			return false, nil
		}
	}
	if err := s.save(append(prompts, text)); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAt deletes the prompt at index. An out-of-range index is a no-op.
func (s *Store) RemoveAt(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompts, err := s.load()
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(prompts) {
		return false, nil
	}
	next := make([]string, 0, len(prompts)-1)
	next = append(next, prompts[:index]...)
	next = append(next, prompts[index+1:]...)
	if err := s.save(next); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops the persisted collection entirely.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(StorageKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// ReplaceAll overwrites the collection with prompts exactly as given.
// Duplicates and blank entries are kept.
func (s *Store) ReplaceAll(prompts []string) error {
	if prompts == nil {
		prompts = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(prompts)
}

// ExportSnapshot returns the current collection for serialization.
// An empty collection is ErrEmptyExport.
func (s *Store) ExportSnapshot() (Snapshot, error) {
	s.mu.Lock()
	prompts, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return Snapshot{}, err
	}
	if len(prompts) == 0 {
		return Snapshot{}, ErrEmptyExport
	}
	return Snapshot{Prompts: prompts}, nil
}

// load reads and decodes the collection. An unreadable or corrupt value is
// ErrStorageUnavailable. Caller must hold s.mu.
func (s *Store) load() ([]string, error) {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return []string{}, nil
	}

	var prompts []string
	if err := json.Unmarshal([]byte(raw), &prompts); err != nil {
		return nil, fmt.Errorf("%w: saved prompts are not a JSON string array: %v", ErrStorageUnavailable, err)
	}
	if prompts == nil {
		prompts = []string{}
	}
	return prompts, nil
}

// save encodes and writes the collection. Caller must hold s.mu.
func (s *Store) save(prompts []string) error {
	data, err := json.Marshal(prompts)
	if err != nil {
		return err
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.logger.Debug("saved prompts", "count", len(prompts))
	return nil
}
