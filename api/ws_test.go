package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"promptpad/workspace"
)

// wsMsg is the union of every frame the server sends.
type wsMsg struct {
	Type    string `json:"type"`
	Data    string `json:"data,omitempty"`
	Base    string `json:"base,omitempty"`
	Addon   string `json:"addon,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Label   string `json:"label,omitempty"`
	Level   string `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
	Items   []struct {
		Index int    `json:"index"`
		Text  string `json:"text"`
	} `json:"items,omitempty"`
}

func (m wsMsg) texts() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Text
	}
	return out
}

func dialWS(t *testing.T, env *testEnv, id string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/api/workspaces/" + id + "/ws"
	return websocket.DefaultDialer.Dial(wsURL, nil)
}

func openWorkspace(t *testing.T, env *testEnv, name string) (*workspace.Workspace, *websocket.Conn) {
	t.Helper()
	ws, err := env.workspaces.Create(name)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	conn, _, err := dialWS(t, env, ws.ID)
	if err != nil {
		t.Fatalf("WS dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return ws, conn
}

// readUntil reads frames until one of type typ arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) wsMsg {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg wsMsg
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", typ, err)
		}
		if msg.Type == typ {
			return msg
		}
	}
}

func TestWSNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	_, resp, err := dialWS(t, env, "nonexistent")
	if err == nil {
		t.Fatal("expected error connecting to nonexistent workspace")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}

func TestWSInitialState(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "a", "b")
	_, conn := openWorkspace(t, env, "initial")

	list := readUntil(t, conn, "prompts")
	if !equalStrings(list.texts(), []string{"a", "b"}) {
		t.Fatalf("initial list %v", list.texts())
	}
	mode := readUntil(t, conn, "mode")
	if mode.Mode != "mode-desktop" || mode.Label != "Switch to Vertical Scroll Mode" {
		t.Fatalf("initial mode %+v", mode)
	}
}

func TestWSSelectSetsBase(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "first", "second")
	ws, conn := openWorkspace(t, env, "select")
	readUntil(t, conn, "mode")

	conn.WriteJSON(map[string]any{"type": "select", "index": 1})
	msg := readUntil(t, conn, "base")
	if msg.Data != "second" {
		t.Fatalf("base %q", msg.Data)
	}
	if base, _, _ := ws.Draft(); base != "second" {
		t.Fatalf("workspace draft base %q", base)
	}
}

func TestWSSubmitCopiesAndRerenders(t *testing.T) {
	env := newTestEnv(t, nil)
	_, conn := openWorkspace(t, env, "submit")
	readUntil(t, conn, "mode")

	conn.WriteJSON(map[string]any{"type": "submit", "base": "Hello", "addon": "World"})

	list := readUntil(t, conn, "prompts")
	if !equalStrings(list.texts(), []string{"Hello"}) {
		t.Fatalf("list after submit %v", list.texts())
	}
	res := readUntil(t, conn, "result")
	if res.Data != "Hello\n=\nWorld" {
		t.Fatalf("result %q", res.Data)
	}
	if got := env.clip.written(); len(got) != 1 || got[0] != "Hello\n=\nWorld" {
		t.Fatalf("clipboard %q", got)
	}
}

func TestWSDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "a", "b", "c")
	_, conn := openWorkspace(t, env, "delete")
	readUntil(t, conn, "mode")

	conn.WriteJSON(map[string]any{"type": "delete", "index": 0})
	list := readUntil(t, conn, "prompts")
	if !equalStrings(list.texts(), []string{"b", "c"}) {
		t.Fatalf("list after delete %v", list.texts())
	}
}

func TestWSTemplateAndToggle(t *testing.T) {
	env := newTestEnv(t, nil)
	_, conn := openWorkspace(t, env, "template")
	readUntil(t, conn, "mode")

	conn.WriteJSON(map[string]any{"type": "template", "options": map[string]any{"targetLanguage": "French", "register": "faithful"}})
	msg := readUntil(t, conn, "base")
	if !strings.HasPrefix(msg.Data, "Translate the following text into French. Keep the wording") {
		t.Fatalf("template %q", msg.Data)
	}

	conn.WriteJSON(map[string]any{"type": "template", "options": map[string]any{"register": "loose"}})
	notice := readUntil(t, conn, "notice")
	if notice.Level != "error" {
		t.Fatalf("notice %+v", notice)
	}

	conn.WriteJSON(map[string]any{"type": "toggle-view"})
	mode := readUntil(t, conn, "mode")
	if mode.Mode != "mode-vertical" {
		t.Fatalf("mode %+v", mode)
	}
}

func TestWSDraftReplay(t *testing.T) {
	env := newTestEnv(t, nil)
	ws, conn := openWorkspace(t, env, "replay")
	readUntil(t, conn, "mode")

	conn.WriteJSON(map[string]any{"type": "draft", "base": "half", "addon": "done"})
	deadline := time.Now().Add(2 * time.Second)
	for {
		if base, addon, _ := ws.Draft(); base == "half" && addon == "done" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("draft not recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}
	conn.Close()

	conn2, _, err := dialWS(t, env, ws.ID)
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	defer conn2.Close()
	draft := readUntil(t, conn2, "draft")
	if draft.Base != "half" || draft.Addon != "done" {
		t.Fatalf("replayed %+v", draft)
	}
}

func TestWSBroadcastAcrossWorkspaces(t *testing.T) {
	env := newTestEnv(t, nil)
	_, conn1 := openWorkspace(t, env, "one")
	_, conn2 := openWorkspace(t, env, "two")
	readUntil(t, conn1, "mode")
	readUntil(t, conn2, "mode")

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/api/prompts", `{"text":"shared"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	for _, conn := range []*websocket.Conn{conn1, conn2} {
		list := readUntil(t, conn, "prompts")
		if !equalStrings(list.texts(), []string{"shared"}) {
			t.Fatalf("list %v", list.texts())
		}
	}
}

func TestWSClosedOnWorkspaceClose(t *testing.T) {
	env := newTestEnv(t, nil)
	ws, conn := openWorkspace(t, env, "close")
	readUntil(t, conn, "mode")

	env.workspaces.Close(ws.ID)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg wsMsg
		if err := conn.ReadJSON(&msg); err != nil {
			// Closed without a frame is acceptable.
			return
		}
		if msg.Type == "closed" {
			return
		}
	}
}

func TestWSClientDisplacement(t *testing.T) {
	env := newTestEnv(t, nil)
	ws, conn1 := openWorkspace(t, env, "displace")
	readUntil(t, conn1, "mode")

	conn2, _, err := dialWS(t, env, ws.ID)
	if err != nil {
		t.Fatalf("conn2 dial: %v", err)
	}
	defer conn2.Close()
	readUntil(t, conn2, "mode")

	// conn1 is closed by the server without a "closed" frame.
	conn1.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg wsMsg
		if err := conn1.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "closed" {
			t.Fatal("displaced client received a closed frame")
		}
	}

	if !ws.Info().Connected {
		t.Fatal("displaced client cleared the new client's connection")
	}
}

func TestWSDisplacedTabSendsNothingToSuccessor(t *testing.T) {
	env := newTestEnv(t, nil)
	ws, conn1 := openWorkspace(t, env, "successor")
	readUntil(t, conn1, "mode")

	conn2, _, err := dialWS(t, env, ws.ID)
	if err != nil {
		t.Fatalf("conn2 dial: %v", err)
	}
	defer conn2.Close()
	readUntil(t, conn2, "mode")

	conn1.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg wsMsg
		if err := conn1.ReadJSON(&msg); err != nil {
			break
		}
	}

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/api/prompts", `{"text":"once"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: status %d", resp.StatusCode)
	}

	if got := readUntil(t, conn2, "prompts").texts(); len(got) != 1 || got[0] != "once" {
		t.Fatalf("items = %q", got)
	}
	conn2.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var extra wsMsg
	if err := conn2.ReadJSON(&extra); err == nil {
		t.Fatalf("successor got an extra %q frame", extra.Type)
	}
}

func TestWSUnknownFrameKeepsConnection(t *testing.T) {
	env := newTestEnv(t, nil)
	_, conn := openWorkspace(t, env, "unknown")
	readUntil(t, conn, "mode")

	if err := conn.WriteJSON(map[string]any{"type": "resize", "cols": 80}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	conn.WriteJSON(map[string]any{"type": "toggle-view"})
	if mode := readUntil(t, conn, "mode"); mode.Mode != "mode-vertical" {
		t.Fatalf("mode %+v", mode)
	}
}
