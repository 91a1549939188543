// Package workspace keeps named in-memory drafts that browser clients attach
// to over a websocket.
package workspace

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNameTaken = errors.New("workspace name already in use")
var ErrNotFound = errors.New("workspace not found")

type Manager struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	logger     *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{workspaces: make(map[string]*Workspace), logger: logger}
}

func (m *Manager) Create(name string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range m.workspaces {
		if w.Name == name {
			return nil, ErrNameTaken
		}
	}

	w := newWorkspace(uuid.New().String(), name, time.Now())
	m.workspaces[w.ID] = w
	m.logger.Info("workspace created", "id", w.ID, "name", name)
	return w, nil
}

// List returns snapshots of all workspaces, oldest first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	list := make([]Info, 0, len(m.workspaces))
	for _, w := range m.workspaces {
		list = append(list, w.Info())
	}
	m.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (m *Manager) Get(id string) (*Workspace, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.workspaces[id]
	return w, ok
}

// Close removes the workspace and signals its attached client.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workspaces[id]
	if !ok {
		return ErrNotFound
	}
	w.close()
	delete(m.workspaces, id)
	m.logger.Info("workspace closed", "id", id, "name", w.Name)
	return nil
}

// CloseAll closes every workspace, for shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, w := range m.workspaces {
		w.close()
		delete(m.workspaces, id)
	}
}
