package models

import "time"

type User struct {
	ID              int       `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"` // Encrypted in DB
	EmailBlindIndex string    `db:"email_blind_index" json:"-"`
	PasswordHash    string    `db:"password_hash" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	FirstName       *string   `db:"first_name" json:"first_name,omitempty"`
	LastName        *string   `db:"last_name" json:"last_name,omitempty"`
}

// Exercise is a corpus-resident therapeutic exercise. The corpus is loaded
// once at startup and never mutated.
type Exercise struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Framework string `json:"framework"`
	Topic     string `json:"topic"`
	Aspect    string `json:"aspect"`
	AIPrompt  string `json:"ai_prompt,omitempty"`
}

// Framework is a named therapeutic methodology. Every exercise references
// exactly one.
type Framework struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type JournalEntry struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	LocalDate string    `db:"local_date" json:"local_date"` // YYYY-MM-DD
	Content   string    `db:"content" json:"content"`       // Encrypted in DB
	Mood      *int      `db:"mood" json:"mood,omitempty"`   // 0-10, nil when unrecorded
	Energy    *int      `db:"energy" json:"energy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Exercise event statuses as stored in exercise_events.status.
const (
	EventAssigned  = "assigned"
	EventCompleted = "completed"
	EventDeclined  = "declined"
)

// ExerciseEvent records one assignment of a corpus exercise to a user and its
// eventual outcome. Events are append-only; status transitions are recorded
// as new rows so completion timestamps survive.
type ExerciseEvent struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	ExerciseID string    `db:"exercise_id" json:"exercise_id"`
	Framework  string    `db:"framework" json:"framework"`
	Status     string    `db:"status" json:"status"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
}

type Insight struct {
	ID        string    `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"` // Encrypted in DB
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
