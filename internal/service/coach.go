package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"fitcoach/internal/api"
	"fitcoach/internal/auth"
	"fitcoach/internal/plan"
	"fitcoach/internal/session"
	"fitcoach/internal/store"
)

// Coach orchestrates the coaching session: it calls the backend, keeps
// the in-memory session state current and mirrors it to the local cache
// after every successful mutation.
type Coach struct {
	api   *api.Client
	cache *session.Cache
	token *auth.TokenSource
	store *store.Store
	log   zerolog.Logger

	mu    sync.Mutex
	state *session.State
}

// NewCoach creates a coach service. state is the session restored from
// the local cache, or a fresh one.
func NewCoach(client *api.Client, cache *session.Cache, token *auth.TokenSource, st *store.Store, state *session.State, log zerolog.Logger) *Coach {
	if state == nil {
		state = &session.State{}
	}
	return &Coach{
		api:   client,
		cache: cache,
		token: token,
		store: st,
		log:   log,
		state: state,
	}
}

// Snapshot returns a copy of the current session state. Plans are
// shared pointers; renderers treat them as read-only.
func (c *Coach) Snapshot() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state
}

// Register creates an account and logs in with the new credentials.
func (c *Coach) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := c.api.Register(ctx, req); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	return c.Login(ctx, req.Email, req.Password)
}

// Login authenticates, stores the token and pulls the authoritative
// session snapshot from the backend.
func (c *Coach) Login(ctx context.Context, email, password string) error {
	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	c.token.Set(resp.Token)
	if err := c.store.SaveAuth(&store.Auth{Token: resp.Token, UserID: resp.UserID}); err != nil {
		c.log.Warn().Err(err).Msg("saving auth token")
	}

	return c.RefreshMe(ctx)
}

// RefreshMe pulls the profile, today's progress and the last saved
// session from the backend and replaces the local state with it. The
// server wins every field.
func (c *Coach) RefreshMe(ctx context.Context) error {
	me, err := c.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}

	c.mu.Lock()
	c.applyMe(me)
	state := *c.state
	c.mu.Unlock()

	c.cache.Save(&state)
	return nil
}

// applyMe maps the /auth/me response onto session state. Profile fields
// are looked up under both spellings the backend has used. Caller holds
// the lock.
func (c *Coach) applyMe(me *api.MeResponse) {
	p := &c.state.Profile
	if u := me.User; u != nil {
		if v, ok := plan.Lookup(u, "name", "username"); ok {
			p.Name, _ = plan.Text(v)
		}
		if v, ok := plan.Lookup(u, "age"); ok {
			if n, ok := plan.Number(v); ok {
				p.Age = int(n)
			}
		}
		if v, ok := plan.Lookup(u, "gender"); ok {
			p.Gender, _ = plan.Text(v)
		}
		if v, ok := plan.Lookup(u, "height_cm", "height"); ok {
			p.HeightCm, _ = plan.Number(v)
		}
		if v, ok := plan.Lookup(u, "weight_kg", "weight"); ok {
			p.WeightKg, _ = plan.Number(v)
		}
		if v, ok := plan.Lookup(u, "goal"); ok {
			p.Goal, _ = plan.Text(v)
		}
		if v, ok := plan.Lookup(u, "activity_level"); ok {
			p.ActivityLevel, _ = plan.Text(v)
		}
		if v, ok := plan.Lookup(u, "food_preference", "diet_type"); ok {
			p.FoodPreference, _ = plan.Text(v)
		}
	}

	c.state.Calories = me.TodayProgress.Calories
	c.state.DailyGoal = me.TodayProgress.DailyGoal

	last := me.LastSession
	if rec := api.DecodePlan(last.DietPlan); rec != nil {
		c.state.DietPlan = rec
	}
	if rec := api.DecodePlan(last.WorkoutPlan); rec != nil {
		c.state.WorkoutPlan = rec
	}
	if last.AIAdvice != "" {
		c.state.Advice = last.AIAdvice
	}
	if len(last.ChatHistory) > 0 {
		c.state.Chat = last.ChatHistory
	}
}

// SaveProfile pushes edits to the backend, then updates local state.
func (c *Coach) SaveProfile(ctx context.Context, profile session.Profile) error {
	if err := c.api.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	c.mu.Lock()
	c.state.Profile = profile
	state := *c.state
	c.mu.Unlock()

	c.cache.Save(&state)
	return nil
}

// GenerateDiet requests a new diet plan for the current profile.
func (c *Coach) GenerateDiet(ctx context.Context, dietType string) (*api.PlanResponse, error) {
	req := c.planRequest()
	req.DietType = dietType

	resp, err := c.api.GenerateDiet(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating diet plan: %w", err)
	}

	if resp.Record != nil {
		c.mu.Lock()
		c.state.DietPlan = resp.Record
		state := *c.state
		c.mu.Unlock()
		c.cache.Save(&state)
	}
	return resp, nil
}

// GenerateWorkout requests a new workout plan.
func (c *Coach) GenerateWorkout(ctx context.Context, experience, equipment string, daysPerWeek int) (*api.PlanResponse, error) {
	req := c.planRequest()
	req.Experience = experience
	req.Equipment = equipment
	req.DaysPerWeek = daysPerWeek

	resp, err := c.api.GenerateWorkout(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating workout plan: %w", err)
	}

	if resp.Record != nil {
		c.mu.Lock()
		c.state.WorkoutPlan = resp.Record
		state := *c.state
		c.mu.Unlock()
		c.cache.Save(&state)
	}
	return resp, nil
}

// GenerateAdvancedPlan requests the combined plan and replaces both
// halves that come back non-empty.
func (c *Coach) GenerateAdvancedPlan(ctx context.Context, experience, location string, daysPerWeek int) (*api.AdvancedPlanResponse, error) {
	req := c.planRequest()
	req.Experience = experience
	req.Location = location
	req.DaysPerWeek = daysPerWeek

	resp, err := c.api.GenerateAdvancedPlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating advanced plan: %w", err)
	}

	c.mu.Lock()
	if resp.Workout != nil {
		c.state.WorkoutPlan = resp.Workout
	}
	if resp.Diet != nil {
		c.state.DietPlan = resp.Diet
	}
	state := *c.state
	c.mu.Unlock()

	c.cache.Save(&state)
	return resp, nil
}

// AddFood logs a food description and adopts the server's new total.
func (c *Coach) AddFood(ctx context.Context, foodText string) (*api.CaloriesResponse, error) {
	foodText = strings.TrimSpace(foodText)
	if foodText == "" {
		return nil, fmt.Errorf("food description is empty")
	}

	resp, err := c.api.EstimateCalories(ctx, foodText)
	if err != nil {
		return nil, fmt.Errorf("estimating calories: %w", err)
	}

	c.mu.Lock()
	c.state.Calories = resp.Total
	state := *c.state
	c.mu.Unlock()

	c.cache.Save(&state)
	return resp, nil
}

// Recommend fetches personalized advice based on the profile and the
// most recent calorie total.
func (c *Coach) Recommend(ctx context.Context) (string, error) {
	req := c.planRequest()
	req.LastCalories = c.Snapshot().Calories

	advice, err := c.api.Recommend(ctx, req)
	if err != nil {
		return "", fmt.Errorf("fetching recommendation: %w", err)
	}

	c.mu.Lock()
	c.state.Advice = advice
	state := *c.state
	c.mu.Unlock()

	c.cache.Save(&state)
	return advice, nil
}

// Chat sends a message with the transcript so far and appends both the
// message and the reply to the session.
func (c *Coach) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message is empty")
	}

	history := c.Snapshot().Chat

	reply, err := c.api.Chat(ctx, message, history)
	if err != nil {
		return "", fmt.Errorf("sending chat message: %w", err)
	}

	c.mu.Lock()
	c.state.Chat = append(c.state.Chat,
		session.Message{Role: "user", Content: message},
		session.Message{Role: "assistant", Content: reply},
	)
	state := *c.state
	c.mu.Unlock()

	c.cache.Save(&state)
	return reply, nil
}

// SaveSummary posts the whole session as a history entry and triggers
// the PDF export.
func (c *Coach) SaveSummary(ctx context.Context) (*api.SummaryResponse, error) {
	state := c.Snapshot()

	req := api.SummaryRequest{
		Username:    state.Profile.Name,
		Calories:    state.Calories,
		DietPlan:    state.DietPlan,
		WorkoutPlan: state.WorkoutPlan,
		AIAdvice:    state.Advice,
		ChatHistory: state.Chat,
	}

	resp, err := c.api.ExportSummary(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("exporting summary: %w", err)
	}
	return resp, nil
}

// Logout clears the token and wipes all local state. Also used when the
// backend rejects the token.
func (c *Coach) Logout() {
	c.token.Clear()

	c.mu.Lock()
	c.state = &session.State{}
	c.mu.Unlock()

	if err := c.cache.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("clearing local cache")
	}
}

// planRequest builds the shared plan payload from the current profile.
func (c *Coach) planRequest() api.PlanRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return api.PlanRequest{Profile: c.state.Profile}
}
