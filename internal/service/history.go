package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"fitcoach/internal/api"
	"fitcoach/internal/history"
	"fitcoach/internal/plan"
	"fitcoach/internal/session"
	"fitcoach/internal/store"
)

// HistoryService serves the history screen. The backend is the source
// of truth; every successful listing is mirrored into the local store
// so the screen still works offline.
type HistoryService struct {
	api   *api.Client
	store *store.Store
	log   zerolog.Logger
}

// NewHistoryService creates a history service.
func NewHistoryService(client *api.Client, st *store.Store, log zerolog.Logger) *HistoryService {
	return &HistoryService{api: client, store: st, log: log}
}

// List fetches saved summaries, newest first. On transport failure it
// falls back to the local mirror and reports fromCache=true. A 401 is
// never masked by the fallback.
func (h *HistoryService) List(ctx context.Context) (entries []history.Entry, fromCache bool, err error) {
	wire, err := h.api.HistoryList(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return nil, false, err
		}
		h.log.Warn().Err(err).Msg("history fetch failed, serving local mirror")
		local, localErr := h.loadMirror()
		if localErr != nil {
			return nil, false, fmt.Errorf("listing history: %w", err)
		}
		return history.SummaryList(local), true, nil
	}

	entries = make([]history.Entry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, fromWire(w))
	}

	h.saveMirror(entries)
	return history.SummaryList(entries), false, nil
}

// Weekly returns the Monday-indexed calorie buckets for the current
// week, preferring the server's computation and falling back to
// aggregating the local mirror.
func (h *HistoryService) Weekly(ctx context.Context) ([7]float64, error) {
	buckets, err := h.api.HistoryWeekly(ctx)
	if err == nil {
		return buckets, nil
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return buckets, err
	}

	h.log.Warn().Err(err).Msg("weekly fetch failed, aggregating local mirror")
	local, localErr := h.loadMirror()
	if localErr != nil {
		return buckets, fmt.Errorf("fetching weekly calories: %w", err)
	}
	return history.WeeklyBuckets(local), nil
}

// Rename updates one entry's title on the backend. The caller refreshes
// the listing afterwards.
func (h *HistoryService) Rename(ctx context.Context, id, title string) error {
	if err := h.api.RenameHistory(ctx, id, title); err != nil {
		return fmt.Errorf("renaming history entry: %w", err)
	}
	return nil
}

// Delete removes one entry on the backend.
func (h *HistoryService) Delete(ctx context.Context, id string) error {
	if err := h.api.DeleteHistory(ctx, id); err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return nil
}

// fromWire converts a backend listing entry to the domain form.
func fromWire(w api.HistoryEntry) history.Entry {
	return history.Entry{
		ID:       w.ID,
		Date:     w.ParsedDate(),
		Title:    w.Title,
		Calories: w.Calories,
		Diet:     api.DecodePlan(w.DietPlan),
		Workout:  api.DecodePlan(w.WorkoutPlan),
		Advice:   w.AIAdvice,
		Chat:     w.ChatHistory,
	}
}

// saveMirror replaces the local mirror with the fresh listing. Mirror
// failures are logged, never surfaced.
func (h *HistoryService) saveMirror(entries []history.Entry) {
	rows := make([]store.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, store.HistoryEntry{
			ID:          e.ID,
			Date:        e.Date,
			Title:       e.Title,
			Calories:    e.Calories,
			DietPlan:    encodePlanJSON(e.Diet),
			WorkoutPlan: encodePlanJSON(e.Workout),
			AIAdvice:    e.Advice,
			ChatHistory: encodeChat(e.Chat),
		})
	}
	if err := h.store.ReplaceHistory(rows); err != nil {
		h.log.Warn().Err(err).Msg("updating history mirror")
	}
}

// loadMirror reads the local mirror back into domain entries.
func (h *HistoryService) loadMirror() ([]history.Entry, error) {
	rows, err := h.store.ListHistory()
	if err != nil {
		return nil, err
	}

	entries := make([]history.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, history.Entry{
			ID:       r.ID,
			Date:     r.Date,
			Title:    r.Title,
			Calories: r.Calories,
			Diet:     api.DecodePlan([]byte(r.DietPlan)),
			Workout:  api.DecodePlan([]byte(r.WorkoutPlan)),
			Advice:   r.AIAdvice,
			Chat:     decodeChat(r.ChatHistory),
		})
	}
	return entries, nil
}

func encodePlanJSON(rec *plan.Record) string {
	if rec == nil {
		return ""
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(data)
}

func encodeChat(chat []session.Message) string {
	if len(chat) == 0 {
		return ""
	}
	data, err := json.Marshal(chat)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeChat(raw string) []session.Message {
	if raw == "" {
		return nil
	}
	var chat []session.Message
	if err := json.Unmarshal([]byte(raw), &chat); err != nil {
		return nil
	}
	return chat
}
