package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"stillpoint/internal/models"
	"stillpoint/internal/services"
	"stillpoint/internal/store"
)

type JournalHandler struct {
	store  *store.Store
	encSvc *services.EncryptionService
}

func NewJournalHandler(st *store.Store, encSvc *services.EncryptionService) *JournalHandler {
	return &JournalHandler{store: st, encSvc: encSvc}
}

type journalRequest struct {
	Content   string `json:"content"`
	Mood      *int   `json:"mood"`
	Energy    *int   `json:"energy"`
	LocalDate string `json:"local_date"` // YYYY-MM-DD provided by frontend
}

func validRating(v *int) bool {
	return v == nil || (*v >= 0 && *v <= 10)
}

// UpsertEntry creates or replaces the entry for the user's local date.
func (h *JournalHandler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req journalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" || req.LocalDate == "" || !validRating(req.Mood) || !validRating(req.Energy) {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", req.LocalDate); err != nil {
		http.Error(w, "invalid local_date format; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	entry := models.JournalEntry{
		UserID:    userID,
		LocalDate: req.LocalDate,
		Content:   req.Content,
		Mood:      req.Mood,
		Energy:    req.Energy,
	}
	if err := h.encSvc.EncryptJournal(&entry); err != nil {
		http.Error(w, "could not encrypt content", http.StatusInternalServerError)
		return
	}

	inserted, err := h.store.UpsertJournalEntry(r.Context(), &entry)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message":    "entry saved",
		"local_date": req.LocalDate,
		"is_update":  !inserted,
	})
}

type journalEntryResponse struct {
	LocalDate string `json:"local_date"`
	Content   string `json:"content"`
	Mood      *int   `json:"mood"`
	Energy    *int   `json:"energy"`
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.store.JournalEntries(r.Context(), userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}

	out := make([]journalEntryResponse, 0, len(entries))
	// Newest first for display; the store returns ascending for the aggregator.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if err := h.encSvc.DecryptJournal(&e); err != nil {
			continue
		}
		out = append(out, journalEntryResponse{
			LocalDate: e.LocalDate,
			Content:   e.Content,
			Mood:      e.Mood,
			Energy:    e.Energy,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Delete removes the entry for one local date.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var body struct {
		LocalDate string `json:"local_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.LocalDate == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01-02", body.LocalDate); err != nil {
		http.Error(w, "invalid local_date format; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteJournalEntry(r.Context(), userID, body.LocalDate); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
