// File: internal/handlers/notes_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/launchkit/launchkit/internal/middleware"
	"github.com/launchkit/launchkit/internal/repository/note"
	"github.com/launchkit/launchkit/internal/services/notes"
)

type NotesHandler struct {
	notes *notes.Service
}

func NewNotesHandler(svc *notes.Service) *NotesHandler {
	return &NotesHandler{notes: svc}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.notes.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if term := r.URL.Query().Get("q"); term != "" {
		found, err := h.notes.Search(r.Context(), userID, term, limit)
		if err != nil {
			if errors.Is(err, note.ErrInvalidSearchTerm) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to search notes")
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}

	list, err := h.notes.List(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch notes")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note ID")
		return
	}

	if err := h.notes.Delete(r.Context(), uint(noteID), userID); err != nil {
		if errors.Is(err, note.ErrUnauthorizedNoteAccess) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
