package session

import "fitcoach/internal/plan"

// Profile is the user profile as the backend understands it. It is
// owned by the session cache, replaced wholesale on every successful
// fetch or save, and never partially mutated by renderers.
type Profile struct {
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	HeightCm       float64 `json:"height_cm"`
	WeightKg       float64 `json:"weight_kg"`
	Goal           string  `json:"goal"`
	ActivityLevel  string  `json:"activity_level"`
	FoodPreference string  `json:"food_preference"`
}

// Message is one chat transcript entry.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// State is the whole client-side session: everything the UI needs to
// repopulate itself on startup before (and in place of) a network round
// trip. Only successful gateway responses and explicit profile edits
// mutate it.
type State struct {
	Profile     Profile
	DietPlan    *plan.Record
	WorkoutPlan *plan.Record
	Advice      string
	Chat        []Message
	Calories    float64
	DailyGoal   float64
}
