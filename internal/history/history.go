// Package history turns saved activity summaries into chartable weekly
// calorie buckets and a display list. Entries live in the remote store;
// the local mirror only serves reads when the network is down.
package history

import (
	"sort"
	"time"

	"fitcoach/internal/plan"
	"fitcoach/internal/session"
)

// Entry is one saved summary.
type Entry struct {
	ID       string
	Date     time.Time
	Title    string
	Calories float64
	Diet     *plan.Record
	Workout  *plan.Record
	Advice   string
	Chat     []session.Message
}

// DisplayTitle returns the entry's title, or a date-derived default.
func (e Entry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return "Summary " + e.Date.Format("Jan 02, 2006")
}

// WeeklyBuckets maps entries onto Monday-indexed weekday buckets
// (Sunday folds to index 6) with the entry's calorie value as the
// bucket value. When several entries land on the same weekday, the last
// one processed wins; values are not summed. Entries with a zero date
// are skipped.
func WeeklyBuckets(entries []Entry) [7]float64 {
	var buckets [7]float64
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		idx := int(e.Date.Weekday()) // Sunday = 0
		if idx == 0 {
			idx = 6
		} else {
			idx--
		}
		buckets[idx] = e.Calories
	}
	return buckets
}

// SummaryList orders entries for display, newest first. Ties keep their
// incoming order.
func SummaryList(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
