package analytics

import (
	"sort"
	"time"

	"stillpoint/internal/models"
)

// activityDates collects the distinct calendar days with qualifying activity:
// any journal entry, or any completed exercise. Dates are YYYY-MM-DD strings.
func activityDates(entries []models.JournalEntry, events []models.ExerciseEvent) []string {
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.LocalDate != "" {
			seen[e.LocalDate] = true
		}
	}
	for _, ev := range events {
		if ev.Status == models.EventCompleted {
			seen[ev.OccurredAt.UTC().Format("2006-01-02")] = true
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// streaks computes the current and longest consecutive-day activity runs.
//
// The current streak is the run ending at today, or at yesterday when today
// has no activity yet: skipping a single day only breaks the streak once the
// day after has also passed without activity.
func streaks(dates []string, today time.Time) StreakData {
	var s StreakData
	if len(dates) == 0 {
		return s
	}

	last := dates[len(dates)-1]
	s.LastActivityDate = &last

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return s
	}

	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
	}
	if run > s.LongestStreak {
		s.LongestStreak = run
	}

	end := days[len(days)-1]
	gap := today.Sub(end)
	if gap == 0 || gap == 24*time.Hour {
		s.CurrentStreak = run
	}
	return s
}
