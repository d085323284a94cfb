package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"fitcoach/internal/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, auth.NewTokenSource("test-token"), zerolog.Nop())
}

func TestLoginSendsCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("login should not carry Authorization, got %q", auth)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["email"] != "a@b.com" || body["password"] != "secret" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok123", "user_id": "u1"})
	})

	resp, err := client.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token != "tok123" || resp.UserID != "u1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAuthedRequestCarriesBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"history": []any{}})
	})

	if _, err := client.HistoryList(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	})

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("want error")
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized match", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.Detail != "token expired" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
}

func TestServerErrorIsNotUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("want error")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("500 should not match ErrUnauthorized")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Errorf("err = %v", err)
	}
}

func TestGenerateDietExtractsPlanUnderAnyKey(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"diet_plan key", `{"diet_plan":{"Breakfast":"Oats"}}`},
		{"plan key", `{"plan":{"Breakfast":"Oats"}}`},
		{"diet key", `{"diet":{"Breakfast":"Oats"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			resp, err := client.GenerateDiet(context.Background(), PlanRequest{})
			if err != nil {
				t.Fatal(err)
			}
			if resp.Record == nil {
				t.Fatal("Record = nil")
			}
			if v, ok := resp.Record.Get("Breakfast"); !ok || v != "Oats" {
				t.Errorf("Breakfast = %v, %v", v, ok)
			}
		})
	}
}

func TestGenerateDietTextFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plan_text":"Eat more greens"}`))
	})

	resp, err := client.GenerateDiet(context.Background(), PlanRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Record != nil {
		t.Errorf("Record = %v, want nil", resp.Record)
	}
	if resp.Text != "Eat more greens" {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestGenerateAdvancedPlanSplitsHalves(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"workout_json":{"Day 1":{"exercises":[]}},"diet_json":{"Breakfast":"Eggs"}}`))
	})

	resp, err := client.GenerateAdvancedPlan(context.Background(), PlanRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Workout == nil || resp.Diet == nil {
		t.Fatalf("Workout = %v, Diet = %v", resp.Workout, resp.Diet)
	}
	if v, ok := resp.Diet.Get("Breakfast"); !ok || v != "Eggs" {
		t.Errorf("diet Breakfast = %v, %v", v, ok)
	}
}

func TestHistoryWeeklyTruncatesToSevenDays(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weekly_calories":[1,2,3,4,5,6,7,8,9]}`))
	})

	buckets, err := client.HistoryWeekly(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := [7]float64{1, 2, 3, 4, 5, 6, 7}
	if buckets != want {
		t.Errorf("buckets = %v, want %v", buckets, want)
	}
}

func TestErrorDetailFallsBackToBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gone"))
	})

	_, err := client.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v", err)
	}
	if apiErr.Detail != "upstream gone" {
		t.Errorf("Detail = %q", apiErr.Detail)
	}
}

func TestDecodePlanUnwrapsStringEncoded(t *testing.T) {
	rec := DecodePlan(json.RawMessage(`"{\"Breakfast\":\"Oats\"}"`))
	if rec == nil {
		t.Fatal("rec = nil")
	}
	if v, ok := rec.Get("Breakfast"); !ok || v != "Oats" {
		t.Errorf("Breakfast = %v, %v", v, ok)
	}

	if rec := DecodePlan(json.RawMessage(`"not json"`)); rec != nil {
		t.Errorf("rec = %v, want nil for unparsable string", rec)
	}
	if rec := DecodePlan(nil); rec != nil {
		t.Errorf("rec = %v, want nil for empty input", rec)
	}
}

func TestHistoryEntryParsedDate(t *testing.T) {
	tests := []struct {
		date string
		ok   bool
	}{
		{"2026-08-24T10:30:00Z", true},
		{"2026-08-24 10:30:00.123456", true},
		{"2026-08-24", true},
		{"yesterday", false},
		{"", false},
	}
	for _, tt := range tests {
		e := HistoryEntry{Date: tt.date}
		got := e.ParsedDate()
		if got.IsZero() == tt.ok {
			t.Errorf("ParsedDate(%q).IsZero() = %v, want %v", tt.date, got.IsZero(), !tt.ok)
		}
	}
}
