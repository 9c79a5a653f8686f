package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"stillpoint/internal/corpus"
	"stillpoint/internal/models"
	"stillpoint/internal/search"
	"stillpoint/internal/store"
)

type ExerciseHandler struct {
	engine *search.Engine
	corpus *corpus.Store
	store  *store.Store
}

func NewExerciseHandler(engine *search.Engine, c *corpus.Store, st *store.Store) *ExerciseHandler {
	return &ExerciseHandler{engine: engine, corpus: c, store: st}
}

type searchResponse struct {
	Exercises []models.Exercise `json:"exercises"`
	Count     int               `json:"count"`
}

// Search godoc
// @Summary Search the exercise corpus
// @Description Ranks exercises by keyword, topic, and framework relevance
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param keywords query string false "Comma-separated keywords"
// @Param topic query string false "Exact topic filter"
// @Param framework query string false "Exact framework filter"
// @Param limit query int false "Max results (default 3, max 50)"
// @Success 200 {object} searchResponse
// @Failure 400 {string} string "Bad request"
// @Router /exercises/search [get]
func (h *ExerciseHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var keywords []string
	for _, kw := range strings.Split(q.Get("keywords"), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	topic := strings.TrimSpace(q.Get("topic"))
	framework := strings.TrimSpace(q.Get("framework"))

	if len(keywords) == 0 && topic == "" && framework == "" {
		http.Error(w, "at least one of keywords, topic, framework is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if s := q.Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s) // non-positive values normalize inside the engine
	}

	results, err := h.engine.Search(search.Query{
		Keywords:  keywords,
		Topic:     topic,
		Framework: framework,
		Limit:     limit,
	})
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			http.Error(w, "empty query", http.StatusBadRequest)
			return
		}
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []models.Exercise{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(searchResponse{Exercises: results, Count: len(results)})
}

// GetByID returns one exercise together with its framework.
func (h *ExerciseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ex, ok := h.corpus.ExerciseByID(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	fw, _ := h.corpus.FrameworkByID(ex.Framework)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"exercise": ex, "framework": fw})
}

type exerciseEventRequest struct {
	Status string `json:"status"`
}

// AddEvent records an assigned/completed/declined event for an exercise.
// These events feed the analytics aggregator.
func (h *ExerciseHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	ex, ok := h.corpus.ExerciseByID(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var req exerciseEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case models.EventAssigned, models.EventCompleted, models.EventDeclined:
	default:
		http.Error(w, "status must be assigned, completed, or declined", http.StatusBadRequest)
		return
	}

	ev := models.ExerciseEvent{
		UserID:     userID,
		ExerciseID: ex.ID,
		Framework:  ex.Framework,
		Status:     req.Status,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.store.AddExerciseEvent(r.Context(), &ev); err != nil {
		http.Error(w, "could not save event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ev)
}
