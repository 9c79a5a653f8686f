package handlers

import (
	"net/http"

	"stillpoint/internal/middleware"
)

// currentUserID pulls the authenticated user id the auth middleware stored on
// the request context, writing a 401 when it is absent.
func currentUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
	return id, ok
}
