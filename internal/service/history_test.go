package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"fitcoach/internal/api"
	"fitcoach/internal/auth"
	"fitcoach/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenPath(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func newTestAPI(t *testing.T, handler http.Handler) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, auth.NewTokenSource("tok"), zerolog.Nop()), srv
}

const historyBody = `{"history":[
	{"_id":"h1","date":"2026-08-24T08:00:00Z","title":"Leg day","calories":1800,
	 "diet_plan":{"Breakfast":"Oats"},"workout_plan":null,"ai_advice":"","chat_history":null},
	{"_id":"h2","date":"2026-08-28T08:00:00Z","title":"","calories":2100,
	 "diet_plan":null,"workout_plan":null,"ai_advice":"rest more","chat_history":null}
]}`

func TestHistoryListMirrorsAndSorts(t *testing.T) {
	client, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(historyBody))
	}))
	st := newTestStore(t)
	svc := NewHistoryService(client, st, zerolog.Nop())

	entries, fromCache, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("fromCache = true on a live fetch")
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d", len(entries))
	}
	if entries[0].ID != "h2" {
		t.Errorf("entries[0].ID = %s, want newest first", entries[0].ID)
	}
	if entries[1].Diet == nil {
		t.Error("h1 diet plan should decode")
	}

	// Mirror was written
	rows, err := st.ListHistory()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("mirror rows = %d, want 2", len(rows))
	}
}

func TestHistoryListFallsBackToMirror(t *testing.T) {
	// Seed the mirror with a live fetch, then kill the server.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(historyBody))
	})
	client, srv := newTestAPI(t, handler)
	st := newTestStore(t)
	svc := NewHistoryService(client, st, zerolog.Nop())

	if _, _, err := svc.List(context.Background()); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	entries, fromCache, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("offline listing should fall back, got %v", err)
	}
	if !fromCache {
		t.Error("fromCache = false, want true when serving the mirror")
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2 from mirror", len(entries))
	}
	if entries[0].ID != "h2" {
		t.Errorf("entries[0].ID = %s, want newest first from mirror", entries[0].ID)
	}
}

func TestHistoryListUnauthorizedIsNotMasked(t *testing.T) {
	client, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	}))
	st := newTestStore(t)
	svc := NewHistoryService(client, st, zerolog.Nop())

	_, _, err := svc.List(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized to propagate past the mirror", err)
	}
}

func TestHistoryWeeklyFallsBackToLocalBuckets(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(historyBody))
	})
	client, srv := newTestAPI(t, handler)
	st := newTestStore(t)
	svc := NewHistoryService(client, st, zerolog.Nop())

	if _, _, err := svc.List(context.Background()); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	buckets, err := svc.Weekly(context.Background())
	if err != nil {
		t.Fatalf("offline weekly should fall back, got %v", err)
	}
	// 2026-08-24 is a Monday, 2026-08-28 a Friday.
	if buckets[0] != 1800 {
		t.Errorf("buckets[0] = %v, want 1800", buckets[0])
	}
	if buckets[4] != 2100 {
		t.Errorf("buckets[4] = %v, want 2100", buckets[4])
	}
}
