// Package algo holds the pure reflection analytics: streaks, aggregate progress,
// trend charts and recommendations. Nothing here touches storage or identity.
package algo

import (
	"slices"
	"time"

	"github.com/huangsam/uli/schema"
)

// SortHistory returns a copy of history sorted ascending by timestamp.
// Stored order carries no meaning, so every consumer goes through here.
func SortHistory(history []schema.HistoryPoint) []schema.HistoryPoint {
	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b schema.HistoryPoint) int {
		return a.Timestamp.Compare(b.Timestamp.Time)
	})
	return sorted
}

// PrincipleHistory returns the chronological scores recorded for p.
func PrincipleHistory(history []schema.HistoryPoint, p schema.Principle) []int {
	sorted := SortHistory(history)
	scores := make([]int, 0, len(sorted))
	for _, h := range sorted {
		scores = append(scores, h.Scores.Get(p))
	}
	return scores
}

// dayNumber maps the calendar date of t in loc to a day count. Using the date
// rather than elapsed hours keeps DST transitions from skewing day differences.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
