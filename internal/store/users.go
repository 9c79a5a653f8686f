package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stillpoint/internal/models"
)

// CreateUser inserts a user row. Email arrives already encrypted with its
// blind index filled.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (email, email_blind_index, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		u.Email, u.EmailBlindIndex, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: create user: %w", err)
	}
	return nil
}

// UserByEmailIndex finds a user by the blind index of their email.
func (s *Store) UserByEmailIndex(ctx context.Context, blindIndex string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, email_blind_index, password_hash, created_at, first_name, last_name
		FROM users WHERE email_blind_index=$1`, blindIndex)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: user by email index: %w", err)
	}
	return u, nil
}

// UserByID returns a user row.
func (s *Store) UserByID(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, email_blind_index, password_hash, created_at, first_name, last_name
		FROM users WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("store: user by id: %w", err)
	}
	return u, nil
}

// MemberSince returns the account creation time, or ErrNotFound for an
// unknown user. The analytics aggregator keys its empty-summary policy off
// that sentinel.
func (s *Store) MemberSince(ctx context.Context, userID int) (time.Time, error) {
	var created time.Time
	err := s.db.GetContext(ctx, &created, `SELECT created_at FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("store: member since: %w", err)
	}
	return created, nil
}
