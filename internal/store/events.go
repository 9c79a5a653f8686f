package store

import (
	"context"
	"fmt"

	"stillpoint/internal/models"
)

// AddExerciseEvent appends one assignment/completion/decline event.
func (s *Store) AddExerciseEvent(ctx context.Context, ev *models.ExerciseEvent) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO exercise_events (user_id, exercise_id, framework, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		ev.UserID, ev.ExerciseID, ev.Framework, ev.Status, ev.OccurredAt,
	).Scan(&ev.ID)
	if err != nil {
		return fmt.Errorf("store: add exercise event: %w", err)
	}
	return nil
}

// ExerciseEvents returns a user's events ordered by occurrence.
func (s *Store) ExerciseEvents(ctx context.Context, userID int) ([]models.ExerciseEvent, error) {
	var out []models.ExerciseEvent
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, user_id, exercise_id, framework, status, occurred_at
		FROM exercise_events WHERE user_id=$1
		ORDER BY occurred_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list exercise events: %w", err)
	}
	return out, nil
}
