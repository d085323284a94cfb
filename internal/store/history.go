package store

import (
	"fmt"
	"time"
)

// HistoryEntry mirrors one saved summary from the remote store. The
// diet/workout/chat snapshots are kept as raw JSON; the remote copy is
// authoritative and this one only serves reads when the network is down.
type HistoryEntry struct {
	ID          string
	Date        time.Time
	Title       string
	Calories    float64
	DietPlan    string
	WorkoutPlan string
	AIAdvice    string
	ChatHistory string
}

// ReplaceHistory swaps the local mirror for a fresh remote listing.
func (s *Store) ReplaceHistory(entries []HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history_entries`); err != nil {
		return fmt.Errorf("clearing history mirror: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(`
			INSERT INTO history_entries
				(id, date, title, calories, diet_plan, workout_plan, ai_advice, chat_history, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		`, e.ID, e.Date.Format(time.RFC3339), e.Title, e.Calories,
			e.DietPlan, e.WorkoutPlan, e.AIAdvice, e.ChatHistory)
		if err != nil {
			return fmt.Errorf("inserting history entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// ListHistory returns the mirrored entries, newest first.
func (s *Store) ListHistory() ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, date, title, calories, diet_plan, workout_plan, ai_advice, chat_history
		FROM history_entries
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var date string
		if err := rows.Scan(&e.ID, &date, &e.Title, &e.Calories,
			&e.DietPlan, &e.WorkoutPlan, &e.AIAdvice, &e.ChatHistory); err != nil {
			return nil, err
		}
		e.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("parsing history date %q: %w", date, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ClearHistory empties the mirror.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec(`DELETE FROM history_entries`)
	return err
}
