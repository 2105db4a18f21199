package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// SaveWorkout inserts a finished workout entry. The full entry is stored as a
// JSONB document; date, week, and day name are duplicated into columns for
// ordering and filtering.
func (g *Gateway) SaveWorkout(ctx context.Context, entry models.WorkoutEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding workout: %w", err)
	}

	workoutID, err := uuid.Parse(entry.ID)
	if err != nil {
		return fmt.Errorf("parsing workout id: %w", err)
	}

	_, err = g.Pool.Exec(ctx,
		`INSERT INTO workouts (id, user_id, date, completed_at, week, day_key, day_name, workout_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT DO NOTHING`,
		workoutID, g.userID, entry.Date, entry.CompletedAt, entry.Week, entry.DayID, entry.DayName, raw)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

// WorkoutHistory returns up to limit entries, newest first. limit <= 0 means
// no limit.
func (g *Gateway) WorkoutHistory(ctx context.Context, limit int) ([]models.WorkoutEntry, error) {
	query := `SELECT workout_data FROM workouts WHERE user_id = $1 ORDER BY date DESC`
	args := []any{g.userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := g.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var history []models.WorkoutEntry
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		var entry models.WorkoutEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("decoding workout: %w", err)
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

// DeleteWorkout removes a workout by ID. Unknown IDs are a silent no-op.
func (g *Gateway) DeleteWorkout(ctx context.Context, id string) error {
	workoutID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing workout id: %w", err)
	}
	if _, err := g.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, g.userID); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

// SaveCurrentWeek upserts the week counter on the user profile.
func (g *Gateway) SaveCurrentWeek(ctx context.Context, week int) error {
	_, err := g.Pool.Exec(ctx,
		`INSERT INTO user_profiles (id, current_week)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET current_week = $2`,
		g.userID, week)
	if err != nil {
		return fmt.Errorf("saving current week: %w", err)
	}
	return nil
}

// CurrentWeek returns the persisted week counter, defaulting to 1 when no
// profile row exists yet.
func (g *Gateway) CurrentWeek(ctx context.Context) (int, error) {
	var week int
	err := g.Pool.QueryRow(ctx,
		`SELECT COALESCE(
			(SELECT current_week FROM user_profiles WHERE id = $1), 1)`,
		g.userID).Scan(&week)
	if err != nil {
		return 0, fmt.Errorf("querying current week: %w", err)
	}
	if week < 1 {
		week = 1
	}
	return week, nil
}

// Theme returns the persisted UI theme, defaulting to "light" when no
// profile row exists yet.
func (g *Gateway) Theme(ctx context.Context) (string, error) {
	var theme string
	err := g.Pool.QueryRow(ctx,
		`SELECT COALESCE(
			(SELECT theme FROM user_profiles WHERE id = $1), 'light')`,
		g.userID).Scan(&theme)
	if err != nil {
		return "", fmt.Errorf("querying theme: %w", err)
	}
	if theme == "" {
		theme = "light"
	}
	return theme, nil
}

// SetTheme upserts the UI theme on the user profile.
func (g *Gateway) SetTheme(ctx context.Context, theme string) error {
	_, err := g.Pool.Exec(ctx,
		`INSERT INTO user_profiles (id, theme)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET theme = $2`,
		g.userID, theme)
	if err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}
