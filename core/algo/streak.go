package algo

import (
	"slices"
	"time"

	"github.com/huangsam/uli/schema"
)

// ComputeStreak counts consecutive calendar days with at least one history point,
// anchored at today or yesterday. Days are taken in now's location.
// A zero timestamp is reported as a malformed record rather than skipped.
func ComputeStreak(history []schema.HistoryPoint, now time.Time) (int, error) {
	if len(history) == 0 {
		return 0, nil
	}

	loc := now.Location()
	days := make([]int64, 0, len(history))
	for i, h := range history {
		if h.Timestamp.IsZero() {
			return 0, &schema.MalformedRecordError{Collection: "history", Index: i, Reason: "timestamp is missing"}
		}
		days = append(days, dayNumber(h.Timestamp.Time, loc))
	}

	// Most recent first, one entry per day.
	slices.Sort(days)
	slices.Reverse(days)
	days = slices.Compact(days)

	today := dayNumber(now, loc)
	if days[0] != today && days[0] != today-1 {
		return 0, nil
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		streak++
	}
	return streak, nil
}
