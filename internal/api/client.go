package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"fitcoach/internal/auth"
	"fitcoach/internal/plan"
	"fitcoach/internal/session"
)

// Client is the gateway to the coaching backend. Transport failures,
// non-2xx statuses and malformed JSON are all caught here and come back
// as ordinary errors. Nothing in this package retries: plan generation
// consumes upstream model quota, so retries stay user-initiated.
type Client struct {
	baseURL string
	authed  *http.Client
	plain   *http.Client
	log     zerolog.Logger
}

// NewClient creates a gateway client. Authenticated requests are made
// through an oauth2 client over ts; register/login go out bare.
func NewClient(baseURL string, ts *auth.TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authed:  oauth2.NewClient(context.Background(), ts),
		plain:   &http.Client{},
		log:     log,
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.post(ctx, "/auth/register", req, nil, false)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", body, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the authoritative profile, today's progress and the last
// session snapshot.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var resp MeResponse
	if err := c.get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveProfile pushes profile edits to the backend.
func (c *Client) SaveProfile(ctx context.Context, profile session.Profile) error {
	return c.post(ctx, "/save-profile", profile, nil, true)
}

// GenerateDiet requests a diet plan.
func (c *Client) GenerateDiet(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	return c.generatePlan(ctx, "/diet", req, []string{"diet_plan", "plan", "diet"})
}

// GenerateWorkout requests a workout plan.
func (c *Client) GenerateWorkout(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	return c.generatePlan(ctx, "/workout", req, []string{"workout_plan", "plan", "workout"})
}

// generatePlan posts a plan request and extracts the structured plan
// from whichever key the backend used this time.
func (c *Client) generatePlan(ctx context.Context, path string, req PlanRequest, keys []string) (*PlanResponse, error) {
	raw, err := c.postRaw(ctx, path, req, true)
	if err != nil {
		return nil, err
	}

	envelope, err := plan.DecodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", path, err)
	}

	resp := &PlanResponse{}
	if v, ok := plan.Lookup(envelope, keys...); ok {
		if rec, ok := v.(*plan.Record); ok {
			resp.Record = rec
		}
	}
	if v, ok := plan.Lookup(envelope, "plan_text"); ok {
		resp.Text, _ = plan.Text(v)
	}
	return resp, nil
}

// GenerateAdvancedPlan requests the combined workout+diet plan.
func (c *Client) GenerateAdvancedPlan(ctx context.Context, req PlanRequest) (*AdvancedPlanResponse, error) {
	raw, err := c.postRaw(ctx, "/advanced-plan", req, true)
	if err != nil {
		return nil, err
	}

	envelope, err := plan.DecodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding /advanced-plan response: %w", err)
	}

	resp := &AdvancedPlanResponse{}
	if v, ok := plan.Lookup(envelope, "workout_json", "workout_plan", "workout"); ok {
		if rec, ok := v.(*plan.Record); ok {
			resp.Workout = rec
		}
	}
	if v, ok := plan.Lookup(envelope, "diet_json", "diet_plan", "diet"); ok {
		if rec, ok := v.(*plan.Record); ok {
			resp.Diet = rec
		}
	}
	return resp, nil
}

// EstimateCalories logs a food description; the server estimates it and
// returns the updated daily total.
func (c *Client) EstimateCalories(ctx context.Context, foodText string) (*CaloriesResponse, error) {
	body := map[string]string{"food_text": foodText}
	var resp CaloriesResponse
	if err := c.post(ctx, "/calories", body, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recommend fetches personalized advice.
func (c *Client) Recommend(ctx context.Context, req PlanRequest) (string, error) {
	var resp struct {
		Advice string `json:"advice"`
	}
	if err := c.post(ctx, "/recommendation", req, &resp, true); err != nil {
		return "", err
	}
	return resp.Advice, nil
}

// Chat sends a message plus the transcript so far and returns the reply.
func (c *Client) Chat(ctx context.Context, message string, history []session.Message) (string, error) {
	body := struct {
		Message string            `json:"message"`
		History []session.Message `json:"history"`
	}{Message: message, History: history}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "/chat", body, &resp, true); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// ExportSummary saves the session snapshot remotely and triggers the
// PDF export.
func (c *Client) ExportSummary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	var resp SummaryResponse
	if err := c.post(ctx, "/export-summary", req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HistoryList fetches all saved summaries.
func (c *Client) HistoryList(ctx context.Context) ([]HistoryEntry, error) {
	var resp struct {
		History []HistoryEntry `json:"history"`
	}
	if err := c.get(ctx, "/history/list", &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// HistoryWeekly fetches the server-computed Monday-indexed buckets.
func (c *Client) HistoryWeekly(ctx context.Context) ([7]float64, error) {
	var resp struct {
		WeeklyCalories []float64 `json:"weekly_calories"`
	}
	var buckets [7]float64
	if err := c.get(ctx, "/history/weekly", &resp); err != nil {
		return buckets, err
	}
	copy(buckets[:], resp.WeeklyCalories)
	return buckets, nil
}

// RenameHistory updates one entry's title.
func (c *Client) RenameHistory(ctx context.Context, historyID, title string) error {
	body := map[string]string{"history_id": historyID, "title": title}
	return c.post(ctx, "/history/rename", body, nil, true)
}

// DeleteHistory removes one entry.
func (c *Client) DeleteHistory(ctx context.Context, historyID string) error {
	body := map[string]string{"history_id": historyID}
	return c.post(ctx, "/history/delete", body, nil, true)
}

// --- transport ---

func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return err
	}
	return c.decode(path, raw, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any, authed bool) error {
	raw, err := c.postRaw(ctx, path, payload, authed)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return c.decode(path, raw, out)
}

func (c *Client) postRaw(ctx context.Context, path string, payload any, authed bool) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, body, authed)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, authed bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.plain
	if authed {
		client = c.authed
	}

	resp, err := client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("reading response failed")
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: errorDetail(raw)}
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).
			Str("detail", apiErr.Detail).Msg("API error")
		return nil, apiErr
	}

	return raw, nil
}

func (c *Client) decode(path string, raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("malformed response")
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// errorDetail pulls the human-readable message out of a FastAPI-style
// {"detail": ...} error body, falling back to the raw body.
func errorDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	detail := strings.TrimSpace(string(raw))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return detail
}
