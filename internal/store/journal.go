package store

import (
	"context"
	"fmt"
	"time"

	"stillpoint/internal/models"
)

// UpsertJournalEntry inserts or replaces the entry for the user's local date.
// It returns true when a new row was created.
func (s *Store) UpsertJournalEntry(ctx context.Context, e *models.JournalEntry) (bool, error) {
	var inserted bool
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO journal_entries (user_id, local_date, content, mood, energy, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, local_date)
		DO UPDATE SET
			content = EXCLUDED.content,
			mood = EXCLUDED.mood,
			energy = EXCLUDED.energy,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0)`,
		e.UserID, e.LocalDate, e.Content, e.Mood, e.Energy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("store: upsert journal entry: %w", err)
	}
	return inserted, nil
}

// JournalEntries returns all of a user's entries ordered by date then
// created_at ascending. Content stays encrypted; the aggregator only reads
// dates and ratings.
func (s *Store) JournalEntries(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, user_id, local_date, content, mood, energy, created_at, updated_at
		FROM journal_entries WHERE user_id=$1
		ORDER BY local_date ASC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list journal entries: %w", err)
	}
	defer rows.Close()

	var out []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var d time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &d, &e.Content, &e.Mood, &e.Energy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan journal entry: %w", err)
		}
		e.LocalDate = d.Format("2006-01-02")
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteJournalEntry removes the user's entry for one local date.
func (s *Store) DeleteJournalEntry(ctx context.Context, userID int, localDate string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE user_id=$1 AND local_date=$2`, userID, localDate)
	if err != nil {
		return fmt.Errorf("store: delete journal entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
