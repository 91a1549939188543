package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"promptpad/composer"
	"promptpad/kv"
	"promptpad/prompt"
	"promptpad/workspace"
)

func RegisterRoutes(c *composer.Controller, workspaces *workspace.Manager, staticFS fs.FS, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	h := &handler{controller: c, workspaces: workspaces, logger: logger}

	// Saved prompts
	r.Get("/api/prompts", h.listPrompts)
	r.Post("/api/prompts", h.addPrompt)
	r.Delete("/api/prompts", h.clearPrompts)
	r.Delete("/api/prompts/{index}", h.deletePrompt)
	r.Get("/api/prompts/export", h.exportPrompts)
	r.Post("/api/prompts/import", h.importPrompts)

	// Composition
	r.Post("/api/format", h.format)
	r.Post("/api/copy", h.copy)
	r.Post("/api/template", h.template)

	r.Get("/api/view-mode", h.getViewMode)
	r.Post("/api/view-mode/toggle", h.toggleViewMode)

	// Workspaces
	r.Get("/api/workspaces", h.listWorkspaces)
	r.Post("/api/workspaces", h.createWorkspace)
	r.Delete("/api/workspaces/{id}", h.closeWorkspace)
	r.Get("/api/workspaces/{id}/ws", h.handleWS)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// A test or dev FS may already be rooted at the asset directory, so probe
	// for index.html before trusting the Sub.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Pages are read directly: http.FileServer redirects paths ending in
	// index.html to "./".
	r.Get("/", serveFile(staticSub, "index.html"))
	r.Get("/workspace/{id}", serveFile(staticSub, "workspace.html"))

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	controller *composer.Controller
	workspaces *workspace.Manager
	logger     *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError reports a persistence failure. An unreachable store is
// 503; anything else is a plain 500.
func (h *handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("storage operation failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err)
	if errors.Is(err, prompt.ErrStorageUnavailable) || errors.Is(err, kv.ErrUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
