// Package analytics derives per-user longitudinal summaries from journal
// entries, exercise events, and conversation records. Summaries are computed
// fresh on every call and never persisted.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"stillpoint/internal/models"
	"stillpoint/internal/store"
)

// RecordSource supplies the per-user records the aggregator reads. The sqlx
// store satisfies it in production; tests use in-memory fakes.
type RecordSource interface {
	JournalEntries(ctx context.Context, userID int) ([]models.JournalEntry, error)
	ExerciseEvents(ctx context.Context, userID int) ([]models.ExerciseEvent, error)
	ConversationCount(ctx context.Context, userID int) (int, error)
	MemberSince(ctx context.Context, userID int) (time.Time, error)
}

// MoodDataPoint is one calendar day of mood/energy readings. Nil means the
// user recorded no value that day.
type MoodDataPoint struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Mood   *int   `json:"mood"`
	Energy *int   `json:"energy"`
}

type ExerciseStats struct {
	TotalAssigned  int     `json:"total_assigned"`
	Completed      int     `json:"completed"`
	Declined       int     `json:"declined"`
	CompletionRate float64 `json:"completion_rate"`
}

// FrameworkEffectiveness reports the mood delta around completed exercises of
// one framework. Averages are nil when no completion had a qualifying mood
// reading on its side.
type FrameworkEffectiveness struct {
	Framework          string   `json:"framework"`
	ExercisesCompleted int      `json:"exercises_completed"`
	AverageMoodBefore  *float64 `json:"average_mood_before"`
	AverageMoodAfter   *float64 `json:"average_mood_after"`
	MoodImprovement    *float64 `json:"mood_improvement"`
}

type StreakData struct {
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	LastActivityDate *string `json:"last_activity_date"`
}

type Summary struct {
	MoodTrend              []MoodDataPoint          `json:"mood_trend"`
	ExerciseStats          ExerciseStats            `json:"exercise_stats"`
	FrameworkEffectiveness []FrameworkEffectiveness `json:"framework_effectiveness"`
	Streaks                StreakData               `json:"streaks"`
	TotalJournalEntries    int                      `json:"total_journal_entries"`
	TotalConversations     int                      `json:"total_conversations"`
	MemberSince            *string                  `json:"member_since,omitempty"`
}

// Aggregator computes analytics summaries from a RecordSource.
type Aggregator struct {
	source RecordSource
	now    func() time.Time
}

func New(source RecordSource) *Aggregator {
	return &Aggregator{source: source, now: time.Now}
}

// Summarize builds the full analytics summary for one user.
//
// An unknown user yields an empty-but-valid summary, not an error. A failed
// journal, event, or conversation fetch degrades that facet to empty; only a
// failure to resolve the user record itself propagates.
func (a *Aggregator) Summarize(ctx context.Context, userID int) (Summary, error) {
	memberSince, err := a.source.MemberSince(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return emptySummary(), nil
		}
		return Summary{}, fmt.Errorf("analytics: resolve user %d: %w", userID, err)
	}

	// Journal entries, exercise events, and the conversation count are
	// independent reads; fetch them concurrently and join before deriving.
	var (
		wg      sync.WaitGroup
		entries []models.JournalEntry
		events  []models.ExerciseEvent
		convos  int
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		if got, err := a.source.JournalEntries(ctx, userID); err == nil {
			entries = got
		}
	}()
	go func() {
		defer wg.Done()
		if got, err := a.source.ExerciseEvents(ctx, userID); err == nil {
			events = got
		}
	}()
	go func() {
		defer wg.Done()
		if got, err := a.source.ConversationCount(ctx, userID); err == nil {
			convos = got
		}
	}()
	wg.Wait()

	today := dateOf(a.now())
	since := memberSince.Format("2006-01-02")

	return Summary{
		MoodTrend:              moodSeries(entries),
		ExerciseStats:          exerciseStats(events),
		FrameworkEffectiveness: frameworkEffectiveness(events, entries),
		Streaks:                streaks(activityDates(entries, events), today),
		TotalJournalEntries:    len(entries),
		TotalConversations:     convos,
		MemberSince:            &since,
	}, nil
}

func emptySummary() Summary {
	return Summary{
		MoodTrend:              []MoodDataPoint{},
		FrameworkEffectiveness: []FrameworkEffectiveness{},
	}
}

// moodSeries projects journal entries to one data point per calendar day,
// ascending. When a day holds several entries the one with the latest
// created_at wins.
func moodSeries(entries []models.JournalEntry) []MoodDataPoint {
	latest := make(map[string]models.JournalEntry)
	for _, e := range entries {
		if prev, ok := latest[e.LocalDate]; ok && !e.CreatedAt.After(prev.CreatedAt) {
			continue
		}
		latest[e.LocalDate] = e
	}

	dates := make([]string, 0, len(latest))
	for d := range latest {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]MoodDataPoint, 0, len(dates))
	for _, d := range dates {
		e := latest[d]
		out = append(out, MoodDataPoint{Date: d, Mood: e.Mood, Energy: e.Energy})
	}
	return out
}

func exerciseStats(events []models.ExerciseEvent) ExerciseStats {
	var s ExerciseStats
	for _, ev := range events {
		switch ev.Status {
		case models.EventAssigned:
			s.TotalAssigned++
		case models.EventCompleted:
			s.Completed++
		case models.EventDeclined:
			s.Declined++
		}
	}
	if s.TotalAssigned > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.TotalAssigned)
	}
	return s
}

// dateOf truncates a timestamp to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
