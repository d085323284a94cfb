package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAuthRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetAuth(); !errors.Is(err, ErrNoAuth) {
		t.Errorf("GetAuth on empty store = %v, want ErrNoAuth", err)
	}

	if err := s.SaveAuth(&Auth{Token: "tok-1", UserID: "u-1"}); err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}

	auth, err := s.GetAuth()
	if err != nil {
		t.Fatalf("GetAuth: %v", err)
	}
	if auth.Token != "tok-1" || auth.UserID != "u-1" {
		t.Errorf("GetAuth = %+v", auth)
	}

	// Saving again replaces the singleton row
	if err := s.SaveAuth(&Auth{Token: "tok-2", UserID: "u-1"}); err != nil {
		t.Fatalf("SaveAuth (update): %v", err)
	}
	auth, _ = s.GetAuth()
	if auth.Token != "tok-2" {
		t.Errorf("token after update = %q, want tok-2", auth.Token)
	}

	if err := s.DeleteAuth(); err != nil {
		t.Fatalf("DeleteAuth: %v", err)
	}
	if _, err := s.GetAuth(); !errors.Is(err, ErrNoAuth) {
		t.Errorf("GetAuth after delete = %v, want ErrNoAuth", err)
	}
}

func TestSessionValues(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSessionValue("profile")
	if err != nil || v != "" {
		t.Errorf("missing key = %q, %v, want empty and nil", v, err)
	}

	if err := s.SetSessionValue("profile", `{"name":"Asha"}`); err != nil {
		t.Fatalf("SetSessionValue: %v", err)
	}
	if err := s.SetSessionValue("profile", `{"name":"Asha","age":30}`); err != nil {
		t.Fatalf("SetSessionValue (update): %v", err)
	}

	v, err = s.GetSessionValue("profile")
	if err != nil {
		t.Fatalf("GetSessionValue: %v", err)
	}
	if v != `{"name":"Asha","age":30}` {
		t.Errorf("GetSessionValue = %q", v)
	}

	if err := s.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if v, _ := s.GetSessionValue("profile"); v != "" {
		t.Errorf("value after clear = %q, want empty", v)
	}
}

func TestHistoryMirror(t *testing.T) {
	s := newTestStore(t)

	entries := []HistoryEntry{
		{ID: "a", Date: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), Title: "Week start", Calories: 1800},
		{ID: "b", Date: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC), Calories: 2100, DietPlan: `{"Breakfast":"Oats"}`},
	}
	if err := s.ReplaceHistory(entries); err != nil {
		t.Fatalf("ReplaceHistory: %v", err)
	}

	got, err := s.ListHistory()
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].ID != "b" {
		t.Errorf("first entry = %s, want newest first", got[0].ID)
	}
	if got[0].DietPlan != `{"Breakfast":"Oats"}` {
		t.Errorf("DietPlan = %q", got[0].DietPlan)
	}

	// Replacing swaps wholesale
	if err := s.ReplaceHistory([]HistoryEntry{{ID: "c", Date: time.Now().UTC()}}); err != nil {
		t.Fatalf("ReplaceHistory (swap): %v", err)
	}
	got, _ = s.ListHistory()
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("mirror after swap = %+v, want only c", got)
	}

	if err := s.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	got, _ = s.ListHistory()
	if len(got) != 0 {
		t.Errorf("mirror after clear = %+v, want empty", got)
	}
}
