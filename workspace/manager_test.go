package workspace

import (
	"testing"
	"time"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager(nil)
	w, err := m.Create("test")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if w.Name != "test" {
		t.Fatalf("expected name 'test', got %q", w.Name)
	}
	got, ok := m.Get(w.ID)
	if !ok {
		t.Fatal("Get returned ok=false for existing workspace")
	}
	if got.ID != w.ID {
		t.Fatalf("Get returned wrong workspace")
	}
}

func TestCreateNameUniqueness(t *testing.T) {
	m := NewManager(nil)
	if _, err := m.Create("dup"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := m.Create("dup"); err != ErrNameTaken {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestListOldestFirst(t *testing.T) {
	m := NewManager(nil)
	m.Create("a")
	time.Sleep(2 * time.Millisecond)
	m.Create("b")

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 workspaces, got %d", len(list))
	}
	if list[0].Name != "a" || list[1].Name != "b" {
		t.Fatalf("unexpected order: %q, %q", list[0].Name, list[1].Name)
	}
}

func TestClose(t *testing.T) {
	m := NewManager(nil)
	w, err := m.Create("closeme")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := m.Close(w.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := m.Get(w.ID); ok {
		t.Fatal("workspace still exists after Close")
	}
	select {
	case <-w.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestCloseNotFound(t *testing.T) {
	m := NewManager(nil)
	if err := m.Close("nonexistent"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCloseAll(t *testing.T) {
	m := NewManager(nil)
	a, _ := m.Create("a")
	b, _ := m.Create("b")
	m.CloseAll()

	if len(m.List()) != 0 {
		t.Fatal("workspaces left after CloseAll")
	}
	for _, w := range []*Workspace{a, b} {
		select {
		case <-w.Done():
		default:
			t.Fatalf("%s not closed", w.Name)
		}
	}
}

func TestNameFreedAfterClose(t *testing.T) {
	m := NewManager(nil)
	w, _ := m.Create("reuse")
	m.Close(w.ID)
	if _, err := m.Create("reuse"); err != nil {
		t.Fatalf("name not reusable after close: %v", err)
	}
}
