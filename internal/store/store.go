// Package store is the Postgres persistence layer. It implements the record
// sources the analytics aggregator and insight service read from, plus the
// write paths that feed them.
package store

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound reports a missing row: unknown user, insight, or journal entry.
var ErrNotFound = errors.New("store: not found")

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store { return &Store{db: db} }
