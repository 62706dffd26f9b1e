package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carelane/carelane/backend/internal/model/chat"
	chatService "github.com/carelane/carelane/backend/internal/service/chat"
	"github.com/carelane/carelane/backend/internal/service/session"
	"github.com/carelane/carelane/backend/pkg/utils"
)

// Handler serves the session, chat and history endpoints.
type Handler struct {
	store   *session.Store
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(store *session.Store, chatSvc *chatService.Service) *Handler {
	return &Handler{store: store, chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat-related routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleSession)
	r.Post("/chat", h.handleChat)
	r.Get("/history", h.handleHistory)
}

// handleSession creates or restores a session and merges any supplied
// profile fields. Unknown JSON keys are dropped by the decoder; null
// fields leave stored values untouched.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		chat.Profile
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := h.store.Resolve(payload.SessionID)
	profile := h.store.MergeProfile(sessionID, payload.Profile)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"profile":    profile,
	})
}

// handleChat runs one chat turn against the model.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatSvc.HandleChat(r.Context(), payload.SessionID, payload.Message)
	if err != nil {
		if errors.Is(err, chatService.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "Empty message")
			return
		}
		// Upstream failure: the error text is already persisted as the
		// assistant turn; hand the session back so the client can retry.
		utils.RespondJSON(w, http.StatusInternalServerError, map[string]any{
			"session_id": result.SessionID,
			"reply":      result.Reply,
		})
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id": result.SessionID,
		"reply":      result.Reply,
		"timestamp":  result.Timestamp,
	})
}

// handleHistory returns the stored transcript and profile for a session.
// Unknown or absent identifiers yield an empty history.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	history, profile, ok := h.store.Snapshot(sessionID)
	if !ok {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"history": []chat.Turn{}})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"history": history,
		"profile": profile,
	})
}
