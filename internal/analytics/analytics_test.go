package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"stillpoint/internal/models"
	"stillpoint/internal/store"
)

// fakeSource implements RecordSource for tests.
type fakeSource struct {
	entries    []models.JournalEntry
	events     []models.ExerciseEvent
	convos     int
	member     time.Time
	entriesErr error
	eventsErr  error
	convosErr  error
	memberErr  error
}

func (f *fakeSource) JournalEntries(context.Context, int) ([]models.JournalEntry, error) {
	return f.entries, f.entriesErr
}

func (f *fakeSource) ExerciseEvents(context.Context, int) ([]models.ExerciseEvent, error) {
	return f.events, f.eventsErr
}

func (f *fakeSource) ConversationCount(context.Context, int) (int, error) {
	return f.convos, f.convosErr
}

func (f *fakeSource) MemberSince(context.Context, int) (time.Time, error) {
	return f.member, f.memberErr
}

func intPtr(v int) *int { return &v }

func ts(day string, hour int) time.Time {
	t, _ := time.Parse("2006-01-02", day)
	return t.Add(time.Duration(hour) * time.Hour)
}

func testAggregator(src RecordSource, today string) *Aggregator {
	a := New(src)
	a.now = func() time.Time { return ts(today, 12) }
	return a
}

func TestSummarizeUnknownUserYieldsEmptySummary(t *testing.T) {
	a := testAggregator(&fakeSource{memberErr: store.ErrNotFound}, "2026-08-31")
	got, err := a.Summarize(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalJournalEntries != 0 || got.TotalConversations != 0 {
		t.Errorf("expected zero counts, got %+v", got)
	}
	if len(got.MoodTrend) != 0 || len(got.FrameworkEffectiveness) != 0 {
		t.Errorf("expected empty series, got %+v", got)
	}
	if got.MemberSince != nil {
		t.Errorf("expected nil member_since, got %v", *got.MemberSince)
	}
	if got.Streaks.CurrentStreak != 0 || got.Streaks.LongestStreak != 0 {
		t.Errorf("expected zero streaks, got %+v", got.Streaks)
	}
}

func TestSummarizeStoreFailurePropagates(t *testing.T) {
	a := testAggregator(&fakeSource{memberErr: errors.New("connection refused")}, "2026-08-31")
	if _, err := a.Summarize(context.Background(), 42); err == nil {
		t.Fatal("expected error for store outage")
	}
}

func TestSummarizeFailedSubFetchDegradesFacet(t *testing.T) {
	src := &fakeSource{
		member:     ts("2026-01-01", 0),
		entriesErr: errors.New("timeout"),
		events: []models.ExerciseEvent{
			{Status: models.EventAssigned, Framework: "cbt", OccurredAt: ts("2026-08-30", 9)},
			{Status: models.EventCompleted, Framework: "cbt", OccurredAt: ts("2026-08-30", 10)},
		},
		convos: 7,
	}
	a := testAggregator(src, "2026-08-31")
	got, err := a.Summarize(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalJournalEntries != 0 || len(got.MoodTrend) != 0 {
		t.Errorf("journal facet should be empty after fetch failure, got %+v", got)
	}
	// The event facet still computes.
	if got.ExerciseStats.Completed != 1 {
		t.Errorf("expected 1 completion, got %+v", got.ExerciseStats)
	}
	if got.TotalConversations != 7 {
		t.Errorf("expected 7 conversations, got %d", got.TotalConversations)
	}
}

func TestSummarizeFullSummary(t *testing.T) {
	src := &fakeSource{
		member: ts("2026-01-15", 0),
		entries: []models.JournalEntry{
			{LocalDate: "2026-08-29", Mood: intPtr(4), Energy: intPtr(5), CreatedAt: ts("2026-08-29", 8)},
			{LocalDate: "2026-08-30", Mood: intPtr(6), Energy: nil, CreatedAt: ts("2026-08-30", 8)},
			{LocalDate: "2026-08-31", Mood: intPtr(7), Energy: intPtr(6), CreatedAt: ts("2026-08-31", 8)},
		},
		events: []models.ExerciseEvent{
			{Status: models.EventAssigned, Framework: "cbt", OccurredAt: ts("2026-08-30", 9)},
			{Status: models.EventCompleted, Framework: "cbt", OccurredAt: ts("2026-08-30", 10)},
			{Status: models.EventAssigned, Framework: "act", OccurredAt: ts("2026-08-31", 9)},
			{Status: models.EventDeclined, Framework: "act", OccurredAt: ts("2026-08-31", 10)},
		},
		convos: 3,
	}
	a := testAggregator(src, "2026-08-31")
	got, err := a.Summarize(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.MoodTrend) != 3 {
		t.Fatalf("expected 3 mood points, got %d", len(got.MoodTrend))
	}
	if got.MoodTrend[0].Date != "2026-08-29" || *got.MoodTrend[0].Mood != 4 {
		t.Errorf("unexpected first mood point: %+v", got.MoodTrend[0])
	}
	if got.MoodTrend[1].Energy != nil {
		t.Errorf("expected nil energy on day 2, got %v", *got.MoodTrend[1].Energy)
	}

	if got.ExerciseStats.TotalAssigned != 2 || got.ExerciseStats.Completed != 1 || got.ExerciseStats.Declined != 1 {
		t.Errorf("unexpected exercise stats: %+v", got.ExerciseStats)
	}
	if got.ExerciseStats.CompletionRate != 0.5 {
		t.Errorf("completion rate = %v, want 0.5", got.ExerciseStats.CompletionRate)
	}

	if got.Streaks.CurrentStreak != 3 || got.Streaks.LongestStreak != 3 {
		t.Errorf("unexpected streaks: %+v", got.Streaks)
	}
	if got.TotalJournalEntries != 3 || got.TotalConversations != 3 {
		t.Errorf("unexpected totals: %+v", got)
	}
	if got.MemberSince == nil || *got.MemberSince != "2026-01-15" {
		t.Errorf("unexpected member_since: %v", got.MemberSince)
	}
}

func TestMoodSeriesLastWriteWinsPerDay(t *testing.T) {
	entries := []models.JournalEntry{
		{LocalDate: "2026-08-30", Mood: intPtr(3), CreatedAt: ts("2026-08-30", 8)},
		{LocalDate: "2026-08-30", Mood: intPtr(8), CreatedAt: ts("2026-08-30", 20)},
		{LocalDate: "2026-08-29", Mood: intPtr(5), CreatedAt: ts("2026-08-29", 8)},
	}
	got := moodSeries(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Date != "2026-08-29" || got[1].Date != "2026-08-30" {
		t.Errorf("series not ordered by date: %+v", got)
	}
	if *got[1].Mood != 8 {
		t.Errorf("expected the later entry to win, got mood %d", *got[1].Mood)
	}
}

func TestExerciseStatsZeroTotal(t *testing.T) {
	s := exerciseStats(nil)
	if s.CompletionRate != 0 {
		t.Errorf("completion rate with no assignments = %v, want 0", s.CompletionRate)
	}
}
