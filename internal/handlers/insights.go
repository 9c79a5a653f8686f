package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stillpoint/internal/insights"
	"stillpoint/internal/models"
	"stillpoint/internal/store"
)

type InsightHandler struct {
	svc *insights.Service
}

func NewInsightHandler(svc *insights.Service) *InsightHandler {
	return &InsightHandler{svc: svc}
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	out, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "could not fetch insights", http.StatusInternalServerError)
		return
	}
	if out == nil {
		out = []models.Insight{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Get returns one insight. A mismatched owner gets the same 404 as a missing
// id.
func (h *InsightHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	in, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch insight", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(in)
}

type createInsightRequest struct {
	Content string `json:"content"`
}

// Create stores insight text produced by the external generator.
func (h *InsightHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req createInsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	in, err := h.svc.Create(r.Context(), userID, req.Content)
	if err != nil {
		http.Error(w, "could not save insight", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(in)
}
