package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"promptpad/ui"
	"promptpad/viewmode"
	"promptpad/workspace"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientFrame is anything the browser sends.
type clientFrame struct {
	Type    string          `json:"type"`
	Index   int             `json:"index"`
	Base    string          `json:"base"`
	Addon   string          `json:"addon"`
	Options json.RawMessage `json:"options,omitempty"`
}

// Server frames. Each type has its own shape so an empty list still encodes
// as "items": [].
type listFrame struct {
	Type  string    `json:"type"`
	Items []ui.Item `json:"items"`
}

type textFrame struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type draftFrame struct {
	Type  string `json:"type"`
	Base  string `json:"base"`
	Addon string `json:"addon"`
}

type modeFrame struct {
	Type  string        `json:"type"`
	Mode  viewmode.Mode `json:"mode"`
	Label string        `json:"label"`
}

type noticeFrame struct {
	Type string `json:"type"`
	ui.Notice
}

type closedFrame struct {
	Type string `json:"type"`
}

// wsSurface is the ui.Surface of one browser tab. Output goes through the
// workspace tagged with the tab's queue, so it is dropped once the tab is
// displaced.
type wsSurface struct {
	ws     *workspace.Workspace
	out    chan []byte
	logger *slog.Logger

	mu       sync.Mutex
	onSelect func(int)
	onDelete func(int)
	onSubmit func(string, string)
}

func (s *wsSurface) send(frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("encode ws frame", "error", err)
		return
	}
	if !s.ws.Send(s.out, data) {
		s.logger.Debug("ws frame dropped", "workspace", s.ws.ID)
	}
}

func (s *wsSurface) RenderList(items []ui.Item) {
	s.send(listFrame{Type: "prompts", Items: items})
}

func (s *wsSurface) SetBase(text string) {
	s.ws.SetBase(text)
	s.send(textFrame{Type: "base", Data: text})
}

func (s *wsSurface) ShowResult(text string) {
	s.ws.SetResult(text)
	s.send(textFrame{Type: "result", Data: text})
}

func (s *wsSurface) ShowMode(m viewmode.Mode) {
	s.send(modeFrame{Type: "mode", Mode: m, Label: m.ToggleLabel()})
}

func (s *wsSurface) Notify(n ui.Notice) {
	s.send(noticeFrame{Type: "notice", Notice: n})
}

func (s *wsSurface) OnSelect(fn func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSelect = fn
}

func (s *wsSurface) OnDelete(fn func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDelete = fn
}

func (s *wsSurface) OnSubmit(fn func(string, string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSubmit = fn
}

func (s *wsSurface) hooks() (func(int), func(int), func(string, string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onSelect, s.onDelete, s.onSubmit
}

func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ws, ok := h.workspaces.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "workspace", id, "error", err)
		return
	}
	defer conn.Close()

	// gorilla/websocket allows one concurrent writer.
	var writeMu sync.Mutex
	writeMsg := func(frame any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(frame)
	}

	outChan := make(chan []byte, 256)
	kick := ws.SetClient(outChan)
	defer ws.ClearClient(outChan)

	// Replay the draft so a reload picks up where the tab left off.
	base, addon, result := ws.Draft()
	if base != "" || addon != "" {
		if err := writeMsg(draftFrame{Type: "draft", Base: base, Addon: addon}); err != nil {
			return
		}
	}
	if result != "" {
		if err := writeMsg(textFrame{Type: "result", Data: result}); err != nil {
			return
		}
	}

	// Pump queued frames to the client. Exits when ClearClient closes outChan.
	go func() {
		for data := range outChan {
			writeMu.Lock()
			err := conn.WriteMessage(websocket.TextMessage, data)
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}()

	surface := &wsSurface{ws: ws, out: outChan, logger: h.logger}
	unbind := h.controller.Bind(surface)
	defer unbind()

	// Close the connection when the workspace ends or this tab is displaced,
	// so ReadJSON below unblocks.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-ws.Done():
			writeMsg(closedFrame{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced: no "closed" frame, the tab shows it was disconnected.
			unbind()
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg clientFrame
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(surface, msg)
	}
}

func (h *handler) dispatch(s *wsSurface, msg clientFrame) {
	onSelect, onDelete, onSubmit := s.hooks()

	switch msg.Type {
	case "select":
		if onSelect != nil {
			onSelect(msg.Index)
		}
	case "delete":
		if onDelete != nil {
			onDelete(msg.Index)
		}
	case "submit":
		s.ws.SetDraft(msg.Base, msg.Addon)
		if onSubmit != nil {
			onSubmit(msg.Base, msg.Addon)
		}
	case "draft":
		s.ws.SetDraft(msg.Base, msg.Addon)
	case "template":
		opts, err := translationOptions(h.controller.TranslationDefaults(), msg.Options)
		if err != nil {
			s.Notify(ui.Notice{Level: ui.LevelError, Message: err.Error()})
			return
		}
		s.SetBase(h.controller.TranslationPrompt(&opts))
	case "toggle-view":
		if _, err := h.controller.ToggleViewMode(); err != nil {
			h.logger.Error("toggle view mode", "error", err)
			s.Notify(ui.Notice{Level: ui.LevelError, Message: "Could not save view mode."})
		}
	default:
		h.logger.Debug("unknown ws frame", "type", msg.Type)
	}
}
