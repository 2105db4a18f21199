// Package local is the demo-mode persistence gateway: a single-file SQLite
// database, created on first open, holding the same records a signed-in user
// would keep server-side. No network, no account.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const currentWeekKey = "current_week"

// Gateway stores all user data in dir/liftlog.db.
type Gateway struct {
	db *sql.DB
}

var _ storage.Gateway = (*Gateway)(nil)

// Open opens (or creates) the demo database under dir.
func Open(dir string) (*Gateway, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "liftlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening demo db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			program_data TEXT NOT NULL,
			is_active    INTEGER NOT NULL DEFAULT 0,
			created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS workouts (
			id           TEXT PRIMARY KEY,
			date         TIMESTAMP NOT NULL,
			completed_at TIMESTAMP NOT NULL,
			week         INTEGER NOT NULL,
			day_name     TEXT NOT NULL,
			workout_data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS custom_exercises (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			category    TEXT NOT NULL,
			equipment   TEXT NOT NULL,
			is_compound INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating demo schema: %w", err)
		}
	}

	return &Gateway{db: db}, nil
}

// Close closes the database.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// ActiveProgram returns the active program, or storage.ErrNotFound if none
// has been saved yet.
func (g *Gateway) ActiveProgram(ctx context.Context) (*models.Program, error) {
	var id string
	var raw []byte
	err := g.db.QueryRowContext(ctx,
		`SELECT id, program_data FROM programs WHERE is_active = 1 LIMIT 1`,
	).Scan(&id, &raw)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying active program: %w", err)
	}

	var data models.ProgramData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	p := models.NormalizeProgram(data)
	p.ID = id
	return p, nil
}

// SaveProgram deactivates any active program and stores the new one active.
func (g *Gateway) SaveProgram(ctx context.Context, data models.ProgramData) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding program: %w", err)
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE programs SET is_active = 0 WHERE is_active = 1`); err != nil {
		return "", fmt.Errorf("deactivating program: %w", err)
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO programs (id, name, program_data, is_active) VALUES (?, ?, ?, 1)`,
		id, data.Name, raw); err != nil {
		return "", fmt.Errorf("inserting program: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing program: %w", err)
	}
	return id, nil
}

// UpdateProgram rewrites an existing program record in place.
func (g *Gateway) UpdateProgram(ctx context.Context, id string, data models.ProgramData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}
	res, err := g.db.ExecContext(ctx,
		`UPDATE programs SET name = ?, program_data = ? WHERE id = ?`,
		data.Name, raw, id)
	if err != nil {
		return fmt.Errorf("updating program: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SaveWorkout inserts a finished workout entry.
func (g *Gateway) SaveWorkout(ctx context.Context, entry models.WorkoutEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding workout: %w", err)
	}
	_, err = g.db.ExecContext(ctx,
		`INSERT INTO workouts (id, date, completed_at, week, day_name, workout_data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.CompletedAt, entry.Week, entry.DayName, raw)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

// WorkoutHistory returns entries newest first.
func (g *Gateway) WorkoutHistory(ctx context.Context, limit int) ([]models.WorkoutEntry, error) {
	query := `SELECT workout_data FROM workouts ORDER BY date DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := g.db.QueryContext(ctx, query, args...)
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

// DeleteWorkout removes an entry by ID. Deleting an unknown ID is not an
// error; the store treats it as a silent no-op.
func (g *Gateway) DeleteWorkout(ctx context.Context, id string) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}

// SaveCurrentWeek persists only the week counter.
func (g *Gateway) SaveCurrentWeek(ctx context.Context, week int) error {
	return g.setSetting(ctx, currentWeekKey, strconv.Itoa(week))
}

// CurrentWeek returns the persisted week counter, defaulting to 1.
func (g *Gateway) CurrentWeek(ctx context.Context) (int, error) {
	value, err := g.setting(ctx, currentWeekKey)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 1, nil
	}
	week, err := strconv.Atoi(value)
	if err != nil || week < 1 {
		return 1, nil
	}
	return week, nil
}

// CustomExercises returns user-added catalog entries.
func (g *Gateway) CustomExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT id, name, category, equipment, is_compound, description
		 FROM custom_exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying custom exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var ex models.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Category, &ex.Equipment, &ex.IsCompound, &ex.Description); err != nil {
			return nil, fmt.Errorf("scanning custom exercise: %w", err)
		}
		ex.IsCustom = true
		out = append(out, ex)
	}
	return out, rows.Err()
}

// AddCustomExercise stores a user-added exercise, assigning it an ID.
func (g *Gateway) AddCustomExercise(ctx context.Context, ex models.Exercise) (models.Exercise, error) {
	ex.ID = fmt.Sprintf("custom-%d", time.Now().UnixMilli())
	ex.IsCustom = true
	_, err := g.db.ExecContext(ctx,
		`INSERT INTO custom_exercises (id, name, category, equipment, is_compound, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.Name, ex.Category, ex.Equipment, ex.IsCompound, ex.Description)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting custom exercise: %w", err)
	}
	return ex, nil
}

// DeleteCustomExercise removes a user-added exercise by ID.
func (g *Gateway) DeleteCustomExercise(ctx context.Context, id string) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM custom_exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting custom exercise: %w", err)
	}
	return nil
}

// Theme returns the persisted UI theme, defaulting to "light".
func (g *Gateway) Theme(ctx context.Context) (string, error) {
	value, err := g.setting(ctx, "theme")
	if err != nil {
		return "", err
	}
	if value == "" {
		return "light", nil
	}
	return value, nil
}

// SetTheme persists the UI theme ("light" or "dark").
func (g *Gateway) SetTheme(ctx context.Context, theme string) error {
	return g.setSetting(ctx, "theme", theme)
}

func (g *Gateway) setting(ctx context.Context, key string) (string, error) {
	var value string
	err := g.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

func (g *Gateway) setSetting(ctx context.Context, key, value string) error {
	_, err := g.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}
