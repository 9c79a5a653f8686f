package handlers

import (
	"encoding/json"
	"net/http"

	"stillpoint/internal/analytics"
)

type AnalyticsHandler struct {
	agg *analytics.Aggregator
}

func NewAnalyticsHandler(agg *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{agg: agg}
}

// Summary godoc
// @Summary Get the user's analytics summary
// @Description Mood trend, exercise stats, framework effectiveness, and streaks
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analytics.Summary
// @Failure 500 {string} string "Internal server error"
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.agg.Summarize(r.Context(), userID)
	if err != nil {
		http.Error(w, "could not compute summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
