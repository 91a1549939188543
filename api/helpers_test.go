package api_test

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"

	"promptpad/api"
	"promptpad/composer"
	"promptpad/kv"
	"promptpad/prompt"
	"promptpad/viewmode"
	"promptpad/workspace"
)

// fakeClipboard records writes, or refuses them when err is set.
type fakeClipboard struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeClipboard) Write(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeClipboard) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func (f *fakeClipboard) refuse(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type brokenKV struct{}

func (brokenKV) Get(string) (string, bool, error) { return "", false, kv.ErrUnavailable }
func (brokenKV) Set(string, string) error         { return fmt.Errorf("%w: quota exceeded", kv.ErrUnavailable) }
func (brokenKV) Remove(string) error              { return fmt.Errorf("%w: quota exceeded", kv.ErrUnavailable) }

type testEnv struct {
	srv        *httptest.Server
	prompts    *prompt.Store
	workspaces *workspace.Manager
	clip       *fakeClipboard
}

func newTestEnv(t *testing.T, store kv.Store) *testEnv {
	t.Helper()
	if store == nil {
		store = kv.NewMemory()
	}
	env := &testEnv{
		prompts:    prompt.NewStore(store, nil),
		workspaces: workspace.NewManager(nil),
		clip:       &fakeClipboard{},
	}
	c := composer.New(composer.Options{
		Prompts:         env.prompts,
		Views:           viewmode.NewStore(store, nil),
		Clipboard:       env.clip,
		ExportTimestamp: func() bool { return false },
	})
	staticFS := fstest.MapFS{
		"index.html":     {Data: []byte("<html>index</html>")},
		"workspace.html": {Data: []byte("<html>workspace</html>")},
		"js/app.js":      {Data: []byte("// app")},
	}
	env.srv = httptest.NewServer(api.RegisterRoutes(c, env.workspaces, staticFS, nil))
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) seed(t *testing.T, prompts ...string) {
	t.Helper()
	if err := e.prompts.ReplaceAll(prompts); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
