package workspace

import (
	"sync"
	"time"
)

// Info is a point-in-time copy of a workspace, safe to encode.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Base       string    `json:"base"`
	Addon      string    `json:"addon"`
	LastResult string    `json:"last_result,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
}

// Workspace is a named draft that survives browser reloads for as long as
// the server runs. At most one client is attached at a time.
type Workspace struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu         sync.Mutex
	base       string
	addon      string
	lastResult string
	lastActive time.Time

	outMu     sync.Mutex
	outChan   chan []byte
	kickChan  chan struct{}
	connected bool

	done      chan struct{}
	closeOnce sync.Once
}

func newWorkspace(id, name string, now time.Time) *Workspace {
	return &Workspace{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		lastActive: now,
		done:       make(chan struct{}),
	}
}

// Info returns a snapshot of w.
func (w *Workspace) Info() Info {
	w.mu.Lock()
	info := Info{
		ID:         w.ID,
		Name:       w.Name,
		Base:       w.base,
		Addon:      w.addon,
		LastResult: w.lastResult,
		CreatedAt:  w.CreatedAt,
		LastActive: w.lastActive,
	}
	w.mu.Unlock()

	w.outMu.Lock()
	info.Connected = w.connected
	w.outMu.Unlock()
	return info
}

// SetDraft records the text currently in the base and addon fields.
func (w *Workspace) SetDraft(base, addon string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.base, w.addon = base, addon
	w.lastActive = time.Now()
}

// SetBase replaces only the base field, as selecting a saved prompt does.
func (w *Workspace) SetBase(base string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.base = base
	w.lastActive = time.Now()
}

// SetResult records the last copied text.
func (w *Workspace) SetResult(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastResult = text
	w.lastActive = time.Now()
}

// Draft returns the saved fields for replay on connect.
func (w *Workspace) Draft() (base, addon, result string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.base, w.addon, w.lastResult
}

// SetClient registers ch to receive frames. A previously attached client is
// kicked by closing its kick channel. The returned channel is closed if this
// client is later displaced.
func (w *Workspace) SetClient(ch chan []byte) <-chan struct{} {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	if w.kickChan != nil {
		close(w.kickChan)
	}
	kick := make(chan struct{})
	w.kickChan = kick
	w.outChan = ch
	w.connected = true
	return kick
}

// ClearClient detaches ch. State is only reset if ch is still the current
// client, so a displaced connection cannot clear its successor. ch is always
// closed.
func (w *Workspace) ClearClient(ch chan []byte) {
	w.outMu.Lock()
	if w.outChan == ch {
		w.outChan = nil
		w.kickChan = nil
		w.connected = false
	}
	w.outMu.Unlock()
	close(ch)
}

// Send queues frame on ch if ch is still the attached client. It reports
// false when ch was displaced or detached, or its queue is full; the frame
// is dropped.
func (w *Workspace) Send(ch chan []byte, frame []byte) bool {
	w.outMu.Lock()
	defer w.outMu.Unlock()
	if w.outChan == nil || w.outChan != ch {
		return false
	}
	select {
	case w.outChan <- frame:
		return true
	default:
		return false
	}
}

// Done is closed when the workspace is closed.
func (w *Workspace) Done() <-chan struct{} {
	return w.done
}

func (w *Workspace) close() {
	w.closeOnce.Do(func() { close(w.done) })
}
