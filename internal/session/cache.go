package session

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"fitcoach/internal/plan"
	"fitcoach/internal/store"
)

// Session field keys in the store. One row per field so a single
// corrupt value degrades alone.
const (
	keyProfile  = "profile"
	keyDiet     = "diet_plan"
	keyWorkout  = "workout_plan"
	keyAdvice   = "ai_advice"
	keyChat     = "chat_history"
	keyCalories = "calorie_total"
	keyGoal     = "daily_goal"
)

// Cache persists SessionState across restarts. It is strictly
// best-effort: save failures are logged and never fail the action that
// triggered them, and corrupt stored values restore as empty rather
// than as errors. Remote data is authoritative; whatever is in here is
// a placeholder until the post-login fetch replaces it.
type Cache struct {
	store *store.Store
	log   zerolog.Logger
}

// NewCache creates a session cache over the local store.
func NewCache(st *store.Store, log zerolog.Logger) *Cache {
	return &Cache{store: st, log: log}
}

// Save persists each session field individually.
func (c *Cache) Save(s *State) {
	c.saveJSON(keyProfile, s.Profile)
	c.saveJSON(keyDiet, s.DietPlan)
	c.saveJSON(keyWorkout, s.WorkoutPlan)
	c.saveJSON(keyAdvice, s.Advice)
	c.saveJSON(keyChat, s.Chat)
	c.saveRaw(keyCalories, strconv.FormatFloat(s.Calories, 'f', -1, 64))
	c.saveRaw(keyGoal, strconv.FormatFloat(s.DailyGoal, 'f', -1, 64))
}

func (c *Cache) saveJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("encoding session field failed")
		return
	}
	c.saveRaw(key, string(data))
}

func (c *Cache) saveRaw(key, value string) {
	if err := c.store.SetSessionValue(key, value); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("persisting session field failed")
	}
}

// Restore reads whatever session fields exist. Missing or corrupt
// fields come back as their zero values; restore never fails as a
// whole.
func (c *Cache) Restore() *State {
	s := &State{}

	restoreJSON(c, keyProfile, &s.Profile)

	var diet plan.Record
	if restoreJSON(c, keyDiet, &diet) && diet.Len() > 0 {
		s.DietPlan = &diet
	}
	var workout plan.Record
	if restoreJSON(c, keyWorkout, &workout) && workout.Len() > 0 {
		s.WorkoutPlan = &workout
	}

	restoreJSON(c, keyAdvice, &s.Advice)
	restoreJSON(c, keyChat, &s.Chat)

	s.Calories = c.restoreNumber(keyCalories)
	s.DailyGoal = c.restoreNumber(keyGoal)

	return s
}

func restoreJSON[T any](c *Cache, key string, out *T) bool {
	raw, err := c.store.GetSessionValue(key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("reading session field failed")
		return false
	}
	if raw == "" || raw == "null" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("corrupt session field, using empty value")
		var zero T
		*out = zero
		return false
	}
	return true
}

func (c *Cache) restoreNumber(key string) float64 {
	raw, err := c.store.GetSessionValue(key)
	if err != nil || raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return n
}

// Clear drops every session field and the auth token. Nothing may
// survive into another user's session.
func (c *Cache) Clear() error {
	if err := c.store.ClearSession(); err != nil {
		return err
	}
	if err := c.store.ClearHistory(); err != nil {
		return err
	}
	return c.store.DeleteAuth()
}
