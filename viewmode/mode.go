// Package viewmode persists the desktop/vertical layout preference.
package viewmode

import (
	"fmt"
	"log/slog"
	"sync"

	"promptpad/kv"
)

// StorageKey is the key the layout preference is persisted under.
const StorageKey = "nev_view_mode"

type Mode string

const (
	Desktop  Mode = "mode-desktop"
	Vertical Mode = "mode-vertical"
)

// Parse maps a stored or user-supplied value to a Mode. Short names
// ("desktop", "vertical") are accepted as well as the stored literals.
func Parse(s string) (Mode, error) {
	switch s {
	case string(Desktop), "desktop":
		return Desktop, nil
	case string(Vertical), "vertical":
		return Vertical, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// Other returns the mode a toggle switches to.
func (m Mode) Other() Mode {
	if m == Desktop {
		return Vertical
	}
	return Desktop
}

// ToggleLabel is the caption of the control that switches away from m.
func (m Mode) ToggleLabel() string {
	if m == Desktop {
		return "Switch to Vertical Scroll Mode"
	}
	return "Switch to Desktop Mode"
}

// Store reads and writes the preference. Like the prompt store it holds no
// state of its own.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *slog.Logger
}

func NewStore(store kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: store, logger: logger}
}

// Load returns the saved mode, or Desktop when nothing usable is stored.
func (s *Store) Load() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Set saves m. Anything Parse rejects is an error and nothing is written.
func (s *Store) Set(m Mode) error {
	m, err := Parse(string(m))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(StorageKey, string(m))
}

// Toggle flips the saved mode and returns the new one.
func (s *Store) Toggle() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.load().Other()
	if err := s.kv.Set(StorageKey, string(next)); err != nil {
		return "", err
	}
	return next, nil
}

func (s *Store) load() Mode {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Warn("view mode unreadable, using desktop", "error", err)
		return Desktop
	}
	if !ok {
		return Desktop
	}
	m, err := Parse(raw)
	if err != nil {
		s.logger.Debug("ignoring stored view mode", "value", raw)
		return Desktop
	}
	return m
}
