package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"stillpoint/internal/store"
)

type ConversationHandler struct {
	store *store.Store
}

func NewConversationHandler(st *store.Store) *ConversationHandler {
	return &ConversationHandler{store: st}
}

// Record notes that a coaching conversation took place. The transcript lives
// with the external conversation service; analytics only counts them.
func (h *ConversationHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.store.AddConversation(r.Context(), userID, time.Now().UTC()); err != nil {
		http.Error(w, "could not record conversation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"message": "conversation recorded"})
}
