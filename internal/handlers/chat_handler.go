// File: internal/handlers/chat_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/launchkit/launchkit/internal/middleware"
	"github.com/launchkit/launchkit/internal/services"
	"github.com/launchkit/launchkit/internal/services/assistant"
)

// ChatHandler serves the assistant chat API.
type ChatHandler struct {
	assistant assistant.Service
	logger    services.Logger
}

func NewChatHandler(svc assistant.Service, logger services.Logger) *ChatHandler {
	return &ChatHandler{assistant: svc, logger: logger}
}

// Chat runs one assistant exchange and streams the response as server-sent
// events. Validation failures are rejected before any event is written, so
// they arrive as plain JSON errors.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, err := assistant.DecodeChatRequest(r.Body)
	if err != nil {
		h.writeAssistantError(w, err)
		return
	}

	sink, err := assistant.NewSSESink(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	if err := h.assistant.Chat(r.Context(), userID, req, sink); err != nil {
		h.logger.Error("Chat request failed", "user_id", userID, "error", err)
		if sink.Started() {
			_ = sink.StreamError(publicMessage(err))
			return
		}
		h.writeAssistantError(w, err)
	}
}

func (h *ChatHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	threads, err := h.assistant.ListThreads(r.Context(), userID)
	if err != nil {
		h.writeAssistantError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, threads)
}

func (h *ChatHandler) ThreadMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	threadID := mux.Vars(r)["id"]
	messages, err := h.assistant.ThreadMessages(r.Context(), userID, threadID)
	if err != nil {
		h.writeAssistantError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	threadID := mux.Vars(r)["id"]
	if err := h.assistant.DeleteThread(r.Context(), userID, threadID); err != nil {
		h.writeAssistantError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeAssistantError maps the chat error taxonomy onto HTTP statuses.
func (h *ChatHandler) writeAssistantError(w http.ResponseWriter, err error) {
	ae, ok := err.(*assistant.AssistantError)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	switch ae.Type {
	case assistant.ErrTypeValidation:
		writeError(w, http.StatusBadRequest, ae.Message)
	case assistant.ErrTypeUnauthorized:
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case assistant.ErrTypeUpstream, assistant.ErrTypePersistence:
		writeError(w, http.StatusInternalServerError, publicMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// publicMessage is what clients see for server-side failures. Internals stay
// in the logs.
func publicMessage(err error) string {
	ae, ok := err.(*assistant.AssistantError)
	if !ok {
		return "internal error"
	}
	switch ae.Type {
	case assistant.ErrTypeUpstream:
		return "the model provider is unavailable, please retry"
	case assistant.ErrTypePersistence:
		return "failed to save the conversation"
	default:
		return ae.Message
	}
}
