package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stillpoint/internal/models"
)

// CreateInsight stores one generated insight. Content arrives encrypted.
func (s *Store) CreateInsight(ctx context.Context, in models.Insight) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO insights (id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4)`,
		in.ID, in.UserID, in.Content, in.CreatedAt); err != nil {
		return fmt.Errorf("store: create insight: %w", err)
	}
	return nil
}

// InsightByID returns one insight regardless of owner; the insights service
// performs the ownership check.
func (s *Store) InsightByID(ctx context.Context, id string) (models.Insight, error) {
	var in models.Insight
	err := s.db.GetContext(ctx, &in,
		`SELECT id, user_id, content, created_at FROM insights WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Insight{}, ErrNotFound
	}
	if err != nil {
		return models.Insight{}, fmt.Errorf("store: insight by id: %w", err)
	}
	return in, nil
}

// InsightsByUser returns a user's insights, newest first.
func (s *Store) InsightsByUser(ctx context.Context, userID int) ([]models.Insight, error) {
	var out []models.Insight
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, user_id, content, created_at
		FROM insights WHERE user_id=$1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: insights by user: %w", err)
	}
	return out, nil
}
