package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"promptpad/composer"
	"promptpad/prompt"
)

// maxImportSize bounds an uploaded backup file.
const maxImportSize = 8 << 20

type promptsResponse struct {
	Prompts []string `json:"prompts"`
}

type addPromptResponse struct {
	Added   bool     `json:"added"`
	Prompts []string `json:"prompts"`
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

func (h *handler) listPrompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, promptsResponse{Prompts: h.controller.Prompts()})
}

func (h *handler) addPrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	added, err := h.controller.Add(req.Text)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, addPromptResponse{Added: added, Prompts: h.controller.Prompts()})
}

func (h *handler) deletePrompt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	if err := h.controller.Delete(index); err != nil {
		if errors.Is(err, composer.ErrNoSuchPrompt) {
			writeError(w, http.StatusNotFound, "prompt not found")
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clearPrompts(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		writeError(w, http.StatusConflict, composer.QuestionClear)
		return
	}
	if _, err := h.controller.ClearAll(composer.Always(true)); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) exportPrompts(w http.ResponseWriter, r *http.Request) {
	data, err := h.controller.Export()
	if err != nil {
		if errors.Is(err, prompt.ErrEmptyExport) {
			writeError(w, http.StatusNotFound, composer.MessageNoExport)
			return
		}
		h.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+prompt.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// importPrompts validates the uploaded file before looking at confirm, so a
// bad file is reported as such even on an unconfirmed request.
func (h *handler) importPrompts(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, composer.MessageBadImport)
		return
	}

	ok := confirmed(r)
	done, err := h.controller.Import(raw, composer.Always(ok))
	switch {
	case errors.Is(err, prompt.ErrMalformedImport):
		writeError(w, http.StatusBadRequest, composer.MessageBadImport)
	case err != nil:
		h.writeStoreError(w, r, err)
	case !done:
		writeError(w, http.StatusConflict, composer.QuestionOverwrite)
	default:
		writeJSON(w, http.StatusOK, promptsResponse{Prompts: h.controller.Prompts()})
	}
}
