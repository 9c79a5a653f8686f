package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"stillpoint/internal/services"
	"stillpoint/internal/store"
)

type UserHandler struct {
	store  *store.Store
	encSvc *services.EncryptionService
}

func NewUserHandler(st *store.Store, encSvc *services.EncryptionService) *UserHandler {
	return &UserHandler{store: st, encSvc: encSvc}
}

type userResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	CreatedAt string  `json:"created_at"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// GetMe returns the current user's profile.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	u, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if err := h.encSvc.DecryptUser(&u); err != nil {
		http.Error(w, "could not decrypt user data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}
