// File: internal/handlers/flags_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/launchkit/launchkit/internal/services/flags"
)

type FlagsHandler struct {
	flags *flags.Service
}

func NewFlagsHandler(svc *flags.Service) *FlagsHandler {
	return &FlagsHandler{flags: svc}
}

func (h *FlagsHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.flags.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch feature flags")
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *FlagsHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	writeJSON(w, http.StatusOK, map[string]any{
		"key":     key,
		"enabled": h.flags.IsEnabled(r.Context(), key),
	})
}

type setFlagRequest struct {
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

func (h *FlagsHandler) Set(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req setFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.flags.Set(r.Context(), key, req.Enabled, req.Description); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "enabled": req.Enabled})
}
