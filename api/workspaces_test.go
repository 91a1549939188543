package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestListWorkspacesEmpty(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := doRequest(t, http.MethodGet, env.srv.URL+"/api/workspaces", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var list []any
	json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 0 {
		t.Fatalf("expected 0 workspaces, got %d", len(list))
	}
}

func TestCreateWorkspace201(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/api/workspaces", `{"name":"drafts"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var ws map[string]any
	json.NewDecoder(resp.Body).Decode(&ws)
	if ws["name"] != "drafts" {
		t.Fatalf("expected name 'drafts', got %v", ws["name"])
	}
	if ws["id"] == "" || ws["id"] == nil {
		t.Fatal("expected non-empty id")
	}
}

func TestCreateWorkspaceBadRequest(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, body := range []string{"not-json", `{"name":""}`, `{"name":"   "}`} {
		resp := doRequest(t, http.MethodPost, env.srv.URL+"/api/workspaces", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func TestCreateWorkspaceConflict(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := doRequest(t, http.MethodPost, env.srv.URL+"/api/workspaces", `{"name":"dupe"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", resp.StatusCode)
	}
	resp = doRequest(t, http.MethodPost, env.srv.URL+"/api/workspaces", `{"name":"dupe"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second create: expected 409, got %d", resp.StatusCode)
	}
}

func TestCloseWorkspace(t *testing.T) {
	env := newTestEnv(t, nil)
	ws, err := env.workspaces.Create("to-close")
	if err != nil {
		t.Fatal(err)
	}

	resp := doRequest(t, http.MethodDelete, env.srv.URL+"/api/workspaces/"+ws.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp = doRequest(t, http.MethodDelete, env.srv.URL+"/api/workspaces/"+ws.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListWorkspacesAfterCreate(t *testing.T) {
	env := newTestEnv(t, nil)
	env.workspaces.Create("w1")
	env.workspaces.Create("w2")

	resp := doRequest(t, http.MethodGet, env.srv.URL+"/api/workspaces", "")
	var list []map[string]any
	json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(list))
	}
}
