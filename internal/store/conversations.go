package store

import (
	"context"
	"fmt"
	"time"
)

// AddConversation records that a coaching conversation happened. Content is
// held by the conversation service; analytics only needs the count.
func (s *Store) AddConversation(ctx context.Context, userID int, startedAt time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (user_id, started_at) VALUES ($1, $2)`, userID, startedAt); err != nil {
		return fmt.Errorf("store: add conversation: %w", err)
	}
	return nil
}

// ConversationCount returns the user's total conversation count.
func (s *Store) ConversationCount(ctx context.Context, userID int) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM conversations WHERE user_id=$1`, userID); err != nil {
		return 0, fmt.Errorf("store: conversation count: %w", err)
	}
	return n, nil
}
