package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"fitcoach/internal/plan"
	"fitcoach/internal/store"
)

func newTestCache(t *testing.T) (*Cache, *store.Store) {
	t.Helper()
	st, err := store.OpenPath(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewCache(st, zerolog.Nop()), st
}

func testState(t *testing.T) *State {
	t.Helper()
	diet, err := plan.DecodeRecord([]byte(`{"Calories": 2200, "Breakfast": "Oats"}`))
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	return &State{
		Profile: Profile{
			Name: "Asha", Age: 30, Gender: "female",
			HeightCm: 165, WeightKg: 60,
			Goal: "lose weight", ActivityLevel: "moderately-active",
			FoodPreference: "veg",
		},
		DietPlan: diet,
		Advice:   "Sleep more.",
		Chat: []Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
		Calories:  1450,
		DailyGoal: 2000,
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)

	c.Save(testState(t))
	got := c.Restore()

	if got.Profile.Name != "Asha" || got.Profile.HeightCm != 165 {
		t.Errorf("profile = %+v", got.Profile)
	}
	if got.DietPlan == nil {
		t.Fatal("diet plan missing after restore")
	}
	if v, ok := plan.Lookup(got.DietPlan, "calories"); !ok {
		t.Error("restored diet plan lost its fields")
	} else if n, _ := plan.Number(v); n != 2200 {
		t.Errorf("restored calories = %v", v)
	}
	if got.WorkoutPlan != nil {
		t.Error("absent workout plan should restore as nil")
	}
	if len(got.Chat) != 2 || got.Chat[1].Role != "assistant" {
		t.Errorf("chat = %+v", got.Chat)
	}
	if got.Calories != 1450 || got.DailyGoal != 2000 {
		t.Errorf("calories = %v, goal = %v", got.Calories, got.DailyGoal)
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	c, _ := newTestCache(t)

	got := c.Restore()
	if got.Profile.Name != "" || got.DietPlan != nil || got.Chat != nil || got.Calories != 0 {
		t.Errorf("restore from empty store = %+v, want zero values", got)
	}
}

// A corrupt stored value degrades that one field to empty; the rest of
// the session restores normally.
func TestRestoreCorruptFieldDegradesAlone(t *testing.T) {
	c, st := newTestCache(t)

	c.Save(testState(t))
	if err := st.SetSessionValue("chat_history", `{not json`); err != nil {
		t.Fatalf("SetSessionValue: %v", err)
	}

	got := c.Restore()
	if got.Chat != nil {
		t.Errorf("corrupt chat = %+v, want empty transcript", got.Chat)
	}
	if got.Profile.Name != "Asha" {
		t.Error("valid fields should survive a corrupt neighbour")
	}
	if got.Calories != 1450 {
		t.Errorf("calories = %v, want 1450", got.Calories)
	}
}

func TestClearLeavesNoResidue(t *testing.T) {
	c, st := newTestCache(t)

	c.Save(testState(t))
	if err := st.SaveAuth(&store.Auth{Token: "tok", UserID: "u1"}); err != nil {
		t.Fatalf("SaveAuth: %v", err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got := c.Restore()
	if got.Profile.Name != "" || got.DietPlan != nil || len(got.Chat) != 0 || got.Calories != 0 {
		t.Errorf("restore after clear = %+v, want defaults", got)
	}
	if _, err := st.GetAuth(); !errors.Is(err, store.ErrNoAuth) {
		t.Errorf("auth after clear = %v, want ErrNoAuth", err)
	}
}
