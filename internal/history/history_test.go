package history

import (
	"testing"
	"time"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("parsing %q: %v", date, err)
	}
	return d
}

func TestWeeklyBucketsMondayIndexed(t *testing.T) {
	entries := []Entry{
		{Date: day(t, "2026-08-24"), Calories: 1800}, // Monday
		{Date: day(t, "2026-08-26"), Calories: 2100}, // Wednesday
		{Date: day(t, "2026-08-30"), Calories: 1500}, // Sunday
	}

	buckets := WeeklyBuckets(entries)

	if buckets[0] != 1800 {
		t.Errorf("Monday bucket = %v, want 1800", buckets[0])
	}
	if buckets[2] != 2100 {
		t.Errorf("Wednesday bucket = %v, want 2100", buckets[2])
	}
	if buckets[6] != 1500 {
		t.Errorf("Sunday should fold to index 6, got %v", buckets[6])
	}
	for _, i := range []int{1, 3, 4, 5} {
		if buckets[i] != 0 {
			t.Errorf("bucket[%d] = %v, want 0", i, buckets[i])
		}
	}
}

func TestWeeklyBucketsLastWriteWins(t *testing.T) {
	entries := []Entry{
		{Date: day(t, "2026-08-24"), Calories: 500}, // Monday
		{Date: day(t, "2026-08-24"), Calories: 800}, // same Monday
	}

	buckets := WeeklyBuckets(entries)
	if buckets[0] != 800 {
		t.Errorf("bucket[0] = %v, want 800 (last write wins, no summing)", buckets[0])
	}
}

func TestWeeklyBucketsSkipsZeroDates(t *testing.T) {
	buckets := WeeklyBuckets([]Entry{{Calories: 900}})
	for i, v := range buckets {
		if v != 0 {
			t.Errorf("bucket[%d] = %v, want 0 for undated entry", i, v)
		}
	}
}

func TestSummaryListNewestFirst(t *testing.T) {
	entries := []Entry{
		{ID: "old", Date: day(t, "2026-08-20")},
		{ID: "new", Date: day(t, "2026-08-28")},
		{ID: "mid", Date: day(t, "2026-08-24")},
	}

	got := SummaryList(entries)
	wantOrder := []string{"new", "mid", "old"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("SummaryList[%d] = %s, want %s", i, got[i].ID, want)
		}
	}

	// Input slice untouched
	if entries[0].ID != "old" {
		t.Error("SummaryList should not mutate its input")
	}
}

func TestDisplayTitle(t *testing.T) {
	titled := Entry{Title: "Leg day week", Date: day(t, "2026-08-24")}
	if got := titled.DisplayTitle(); got != "Leg day week" {
		t.Errorf("DisplayTitle = %q", got)
	}

	untitled := Entry{Date: day(t, "2026-08-24")}
	if got := untitled.DisplayTitle(); got != "Summary Aug 24, 2026" {
		t.Errorf("DisplayTitle = %q, want date-derived default", got)
	}
}
