package handler

import (
	"errors"
	"net/http"

	"github.com/Dan9191/budget-advisor/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type chatRequest struct {
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	Message        string     `json:"message"`
}

// Chat forwards a message to the advisor. When the advisor fails the
// fallback reply is returned with 502 so the client can still show it.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req chatRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.svc.Chat(r.Context(), userID, req.ConversationID, req.Message)
	if errors.Is(err, service.ErrAdvisorUnavailable) {
		h.writeJSON(w, http.StatusBadGateway, reply)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reply)
}

// Conversation returns the messages of one conversation
func (h *Handler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid conversation id"})
		return
	}
	messages, err := h.svc.Conversation(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, messages)
}
