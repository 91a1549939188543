package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"promptpad/compose"
	"promptpad/composer"
	"promptpad/viewmode"
)

type fieldsRequest struct {
	Base  string `json:"base"`
	Addon string `json:"addon"`
}

type textResponse struct {
	Text string `json:"text"`
}

type viewModeResponse struct {
	Mode        viewmode.Mode `json:"mode"`
	ToggleLabel string        `json:"toggleLabel"`
}

func (h *handler) format(w http.ResponseWriter, r *http.Request) {
	var req fieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, err := compose.Format(req.Base, req.Addon)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

func (h *handler) copy(w http.ResponseWriter, r *http.Request) {
	var req fieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.controller.Copy(req.Base, req.Addon)
	switch {
	case errors.Is(err, compose.ErrNothingToCopy):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, composer.ErrClipboardDenied):
		writeError(w, http.StatusBadGateway, composer.MessageCopyFailed)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (h *handler) template(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	opts, err := translationOptions(h.controller.TranslationDefaults(), raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Text: h.controller.TranslationPrompt(&opts)})
}

// translationOptions overlays the fields present in raw on defaults. An
// empty body keeps the defaults.
func translationOptions(defaults compose.TranslationOptions, raw []byte) (compose.TranslationOptions, error) {
	opts := defaults
	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if err := json.Unmarshal(raw, &opts); err != nil {
			return defaults, err
		}
	}
	if err := opts.Validate(); err != nil {
		return defaults, err
	}
	return opts, nil
}

func (h *handler) getViewMode(w http.ResponseWriter, r *http.Request) {
	m := h.controller.ViewMode()
	writeJSON(w, http.StatusOK, viewModeResponse{Mode: m, ToggleLabel: m.ToggleLabel()})
}

func (h *handler) toggleViewMode(w http.ResponseWriter, r *http.Request) {
	m, err := h.controller.ToggleViewMode()
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewModeResponse{Mode: m, ToggleLabel: m.ToggleLabel()})
}
