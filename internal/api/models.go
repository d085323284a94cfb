package api

import (
	"encoding/json"
	"time"

	"fitcoach/internal/plan"
	"fitcoach/internal/session"
)

// RegisterRequest creates an account. The backend stores height/weight
// without units.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Goal     string  `json:"goal"`
}

// LoginResponse carries the opaque bearer token.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// MeResponse is the authoritative post-login snapshot: profile, today's
// progress and the last saved session. The user object is kept loose
// because the backend mixes field spellings (height vs height_cm)
// depending on which endpoint last wrote the profile.
type MeResponse struct {
	User          *plan.Record  `json:"user"`
	TodayProgress TodayProgress `json:"today_progress"`
	LastSession   LastSession   `json:"last_session"`
}

// TodayProgress is the running calorie count for the current day.
type TodayProgress struct {
	Calories  float64 `json:"calories"`
	DailyGoal float64 `json:"daily_goal"`
}

// LastSession is the snapshot saved by the most recent export-summary.
type LastSession struct {
	Calories    float64           `json:"calories"`
	DietPlan    json.RawMessage   `json:"diet_plan"`
	WorkoutPlan json.RawMessage   `json:"workout_plan"`
	AIAdvice    string            `json:"ai_advice"`
	ChatHistory []session.Message `json:"chat_history"`
}

// PlanRequest is the shared payload for diet/workout/advanced plan
// generation: the profile plus endpoint-specific extras.
type PlanRequest struct {
	session.Profile
	DietType     string  `json:"diet_type,omitempty"`
	Experience   string  `json:"experience,omitempty"`
	Equipment    string  `json:"equipment,omitempty"`
	DaysPerWeek  int     `json:"days_per_week,omitempty"`
	Location     string  `json:"location,omitempty"`
	LastCalories float64 `json:"last_calories,omitempty"`
}

// PlanResponse is a generated plan. Record is the structured plan when
// the backend returned one under any of its known keys; Text is the
// pretty-printed fallback.
type PlanResponse struct {
	Record *plan.Record
	Text   string
}

// AdvancedPlanResponse carries both halves of a combined plan.
type AdvancedPlanResponse struct {
	Workout *plan.Record
	Diet    *plan.Record
}

// CaloriesResponse is the server-computed running total after logging a
// food item, plus the model's itemized estimate.
type CaloriesResponse struct {
	Total   float64 `json:"total"`
	Details string  `json:"details"`
}

// SummaryRequest saves the current session as a history entry and asks
// for a PDF export.
type SummaryRequest struct {
	Username    string            `json:"username"`
	Calories    float64           `json:"calories"`
	DietPlan    *plan.Record      `json:"diet_plan"`
	WorkoutPlan *plan.Record      `json:"workout_plan"`
	AIAdvice    string            `json:"ai_advice"`
	ChatHistory []session.Message `json:"chat_history"`
}

// SummaryResponse acknowledges a saved summary.
type SummaryResponse struct {
	Success bool           `json:"success"`
	PDFURL  string         `json:"pdf_url"`
	History []HistoryEntry `json:"history"`
}

// HistoryEntry is one saved summary as listed by the backend.
type HistoryEntry struct {
	ID          string            `json:"_id"`
	Date        string            `json:"date"`
	Title       string            `json:"title"`
	Calories    float64           `json:"calories"`
	DietPlan    json.RawMessage   `json:"diet_plan"`
	WorkoutPlan json.RawMessage   `json:"workout_plan"`
	AIAdvice    string            `json:"ai_advice"`
	ChatHistory []session.Message `json:"chat_history"`
}

// historyDateLayouts covers the date spellings the backend has emitted.
var historyDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsedDate parses the entry's date, returning the zero time when it
// doesn't parse. Undated entries are skipped by the aggregator rather
// than failing the listing.
func (e HistoryEntry) ParsedDate() time.Time {
	for _, layout := range historyDateLayouts {
		if d, err := time.Parse(layout, e.Date); err == nil {
			return d
		}
	}
	return time.Time{}
}

// DecodePlan tolerantly decodes a raw plan snapshot. Strings containing
// JSON objects are unwrapped (older clients posted plans pre-encoded);
// anything unparsable yields nil.
func DecodePlan(raw json.RawMessage) *plan.Record {
	if len(raw) == 0 {
		return nil
	}
	if rec, err := plan.DecodeRecord(raw); err == nil {
		return rec
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if rec, err := plan.DecodeRecord([]byte(s)); err == nil {
			return rec
		}
	}
	return nil
}
