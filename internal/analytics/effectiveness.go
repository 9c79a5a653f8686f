package analytics

import (
	"sort"
	"time"

	"stillpoint/internal/models"
)

// moodReading is a timestamped mood sample taken from a journal entry.
type moodReading struct {
	at    time.Time
	value float64
}

// frameworkEffectiveness groups completed exercise events by framework and
// pairs each completion with the user's nearest mood readings before and
// after it. Frameworks with no completions are omitted; output is sorted by
// framework id so identical inputs produce identical summaries.
func frameworkEffectiveness(events []models.ExerciseEvent, entries []models.JournalEntry) []FrameworkEffectiveness {
	readings := moodReadings(entries)

	type accum struct {
		completed   int
		beforeSum   float64
		beforeCount int
		afterSum    float64
		afterCount  int
	}
	byFramework := make(map[string]*accum)

	for _, ev := range events {
		if ev.Status != models.EventCompleted {
			continue
		}
		acc := byFramework[ev.Framework]
		if acc == nil {
			acc = &accum{}
			byFramework[ev.Framework] = acc
		}
		acc.completed++
		if before, ok := nearestReading(readings, ev.OccurredAt, false); ok {
			acc.beforeSum += before
			acc.beforeCount++
		}
		if after, ok := nearestReading(readings, ev.OccurredAt, true); ok {
			acc.afterSum += after
			acc.afterCount++
		}
	}

	ids := make([]string, 0, len(byFramework))
	for id := range byFramework {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]FrameworkEffectiveness, 0, len(ids))
	for _, id := range ids {
		acc := byFramework[id]
		fe := FrameworkEffectiveness{Framework: id, ExercisesCompleted: acc.completed}
		if acc.beforeCount > 0 {
			avg := acc.beforeSum / float64(acc.beforeCount)
			fe.AverageMoodBefore = &avg
		}
		if acc.afterCount > 0 {
			avg := acc.afterSum / float64(acc.afterCount)
			fe.AverageMoodAfter = &avg
		}
		// Improvement is undefined unless both sides have samples.
		if fe.AverageMoodBefore != nil && fe.AverageMoodAfter != nil {
			diff := *fe.AverageMoodAfter - *fe.AverageMoodBefore
			fe.MoodImprovement = &diff
		}
		out = append(out, fe)
	}
	return out
}

func moodReadings(entries []models.JournalEntry) []moodReading {
	readings := make([]moodReading, 0, len(entries))
	for _, e := range entries {
		if e.Mood == nil {
			continue
		}
		readings = append(readings, moodReading{at: e.CreatedAt, value: float64(*e.Mood)})
	}
	sort.SliceStable(readings, func(i, j int) bool { return readings[i].at.Before(readings[j].at) })
	return readings
}

// nearestReading finds the mood reading closest in time to at, restricted to
// the same calendar day. With after=false it considers readings at or before
// at; with after=true, readings strictly after. When two readings are equally
// distant the earlier one wins.
func nearestReading(readings []moodReading, at time.Time, after bool) (float64, bool) {
	day := dateOf(at)
	// First reading strictly after at.
	split := sort.Search(len(readings), func(i int) bool { return readings[i].at.After(at) })

	if after {
		// readings is sorted, so the first same-day hit past the split is the
		// nearest after; a stable sort keeps the earlier of equal timestamps
		// first.
		if split < len(readings) && dateOf(readings[split].at).Equal(day) {
			return readings[split].value, true
		}
		return 0, false
	}

	i := split - 1
	if i < 0 || !dateOf(readings[i].at).Equal(day) {
		return 0, false
	}
	// Nearest at-or-before is the latest such reading; walk back through an
	// equal-timestamp run so the earlier reading wins the tie.
	for i > 0 && readings[i-1].at.Equal(readings[i].at) {
		i--
	}
	return readings[i].value, true
}
