// Package storage defines the persistence gateway the store depends on.
// Two implementations exist: a SQLite-backed demo mode (storage/local) and a
// Postgres-backed remote mode (storage/postgres). The store treats both as
// opaque async operations and never branches on which one it holds.
package storage

import (
	"context"
	"errors"

	"github.com/claude/liftlog/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Gateway is the capability set the application store needs from persistence.
type Gateway interface {
	// ActiveProgram returns the active program, or ErrNotFound when the user
	// has never saved one.
	ActiveProgram(ctx context.Context) (*models.Program, error)
	// SaveProgram stores a new program and marks it active, replacing any
	// previously active program. Returns the stored program's ID.
	SaveProgram(ctx context.Context, data models.ProgramData) (string, error)
	// UpdateProgram rewrites an existing program in place, preserving its ID.
	UpdateProgram(ctx context.Context, id string, data models.ProgramData) error

	SaveWorkout(ctx context.Context, entry models.WorkoutEntry) error
	// WorkoutHistory returns up to limit entries, newest first. limit <= 0
	// means no limit.
	WorkoutHistory(ctx context.Context, limit int) ([]models.WorkoutEntry, error)
	DeleteWorkout(ctx context.Context, id string) error

	SaveCurrentWeek(ctx context.Context, week int) error
	CurrentWeek(ctx context.Context) (int, error)

	// Theme returns the persisted UI theme, defaulting to "light".
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error

	// CustomExercises returns user-added catalog entries only; built-ins live
	// in code and are merged by the store.
	CustomExercises(ctx context.Context) ([]models.Exercise, error)
	AddCustomExercise(ctx context.Context, ex models.Exercise) (models.Exercise, error)
	DeleteCustomExercise(ctx context.Context, id string) error

	Close() error
}
