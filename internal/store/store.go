// Package store holds the single source of truth for application state.
// Every mutation flows through the Store, which persists through the gateway
// and notifies subscribers synchronously. Views never mutate state directly.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// View route tags.
const (
	ViewHome            = "home"
	ViewWorkout         = "workout"
	ViewProgress        = "progress"
	ViewProgramBuilder  = "program-builder"
	ViewExerciseLibrary = "exercise-library"
)

// ErrNoActiveWorkout is returned by set mutators when no session is live.
var ErrNoActiveWorkout = errors.New("no active workout")

// ErrNotFound is returned when an index or ID does not resolve to an
// existing exercise, set, or day.
var ErrNotFound = errors.New("not found")

// ErrInvalidTheme is returned by SetTheme for values other than "light" and
// "dark".
var ErrInvalidTheme = errors.New("invalid theme")

// minRestSeconds is the floor for the rest timer duration.
const minRestSeconds = 10

// Store owns all runtime state: the active program, the in-progress workout,
// history, the week counter, the builder draft, and the current view. It is
// constructed once at startup and guarded by a mutex so handler goroutines
// see a consistent snapshot.
type Store struct {
	mu sync.Mutex

	gw  storage.Gateway
	log *slog.Logger

	currentWeek     int
	theme           string
	program         *models.Program
	activeWorkout   *models.ActiveWorkout
	workoutHistory  []models.WorkoutEntry
	exerciseLibrary []models.Exercise
	view            string
	builder         *ProgramBuilder

	restRemaining int
	restStop      chan struct{}

	listeners []func()
}

// New creates a Store bound to a persistence gateway. Call Load before use.
func New(gw storage.Gateway, log *slog.Logger) *Store {
	return &Store{
		gw:          gw,
		log:         log,
		currentWeek: 1,
		theme:       "light",
		view:        ViewHome,
		builder:     newProgramBuilder(),
	}
}

// Load pulls the program, history, week counter, and exercise catalog from
// the gateway. A missing program falls back to the built-in default, which
// is written back so the next load finds it.
func (s *Store) Load(ctx context.Context) error {
	program, err := s.gw.ActiveProgram(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		program = models.DefaultProgram()
		if id, saveErr := s.gw.SaveProgram(ctx, program.Data()); saveErr != nil {
			s.log.Warn("seeding default program failed", "error", saveErr)
		} else {
			program.ID = id
		}
	} else if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	history, err := s.gw.WorkoutHistory(ctx, 0)
	if err != nil {
		return fmt.Errorf("loading workout history: %w", err)
	}

	week, err := s.gw.CurrentWeek(ctx)
	if err != nil {
		return fmt.Errorf("loading current week: %w", err)
	}

	theme, err := s.gw.Theme(ctx)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	s.mu.Lock()
	s.program = program
	s.workoutHistory = history
	s.currentWeek = clampWeek(week)
	s.theme = theme
	s.mu.Unlock()

	if err := s.LoadExerciseLibrary(ctx); err != nil {
		return err
	}

	s.notify()
	return nil
}

// Subscribe registers a listener invoked synchronously, in registration
// order, after every state-affecting mutation.
func (s *Store) Subscribe(listener func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}

// --- Week ---

func clampWeek(week int) int {
	if week < 1 {
		return 1
	}
	if week > models.MaxWeek {
		return models.MaxWeek
	}
	return week
}

// CurrentWeek returns the clamped week counter.
func (s *Store) CurrentWeek() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentWeek
}

// SetWeek clamps the week to [1, MaxWeek], persists only the week counter,
// and notifies. A failed save rolls the in-memory week back, unless a newer
// value landed while the save was in flight.
func (s *Store) SetWeek(ctx context.Context, week int) error {
	week = clampWeek(week)

	s.mu.Lock()
	prev := s.currentWeek
	s.currentWeek = week
	s.mu.Unlock()

	if err := s.gw.SaveCurrentWeek(ctx, week); err != nil {
		s.mu.Lock()
		if s.currentWeek == week {
			s.currentWeek = prev
		}
		s.mu.Unlock()
		return fmt.Errorf("saving current week: %w", err)
	}
	s.notify()
	return nil
}

// --- Theme ---

// Theme returns the current UI theme.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme persists the UI theme and notifies. Only "light" and "dark" are
// accepted.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("theme %q: %w", theme, ErrInvalidTheme)
	}

	s.mu.Lock()
	prev := s.theme
	s.theme = theme
	s.mu.Unlock()

	if err := s.gw.SetTheme(ctx, theme); err != nil {
		s.mu.Lock()
		if s.theme == theme {
			s.theme = prev
		}
		s.mu.Unlock()
		return fmt.Errorf("saving theme: %w", err)
	}
	s.notify()
	return nil
}

// --- View ---

// View returns the current UI route tag.
func (s *Store) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView switches the current view and notifies.
func (s *Store) SetView(view string) {
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	s.notify()
}

// --- Program ---

// Program returns the active program. Nil until Load has run.
func (s *Store) Program() *models.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

// UpdateProgram replaces the active program wholesale and persists it.
func (s *Store) UpdateProgram(ctx context.Context, data models.ProgramData) error {
	program := models.NormalizeProgram(data)

	id, err := s.gw.SaveProgram(ctx, program.Data())
	if err != nil {
		return fmt.Errorf("saving program: %w", err)
	}
	program.ID = id

	s.mu.Lock()
	s.program = program
	s.mu.Unlock()
	s.notify()
	return nil
}

// --- Active workout ---

// ActiveWorkout returns the in-progress session, or nil.
func (s *Store) ActiveWorkout() *models.ActiveWorkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeWorkout
}

// StartWorkout snapshots the given program day into a live session. Each
// main lift's prescription is resolved against the current week's rotation
// slot; accessories get their fixed sets/RPE string. Exercise order is
// frozen here; only sets change afterward.
func (s *Store) StartWorkout(ctx context.Context, dayID string) error {
	s.mu.Lock()

	if s.program == nil {
		s.mu.Unlock()
		return fmt.Errorf("starting workout: no program loaded")
	}
	day := s.program.Day(dayID)
	if day == nil {
		s.mu.Unlock()
		return fmt.Errorf("starting workout: day %s: %w", dayID, ErrNotFound)
	}

	slot := models.ResolveRotationIndex(s.currentWeek, s.program.DayOrdinal(dayID))

	exercises := make([]models.SessionExercise, len(day.Exercises))
	for i, p := range day.Exercises {
		exercises[i] = models.SessionExercise{
			Name:        p.Name,
			IsMain:      p.IsMain,
			SessionType: p.SessionType(slot),
			Sets:        []models.SetEntry{},
		}
	}

	s.activeWorkout = &models.ActiveWorkout{
		Date:      time.Now(),
		Week:      s.currentWeek,
		DayID:     dayID,
		DayName:   day.Name,
		Exercises: exercises,
	}
	s.view = ViewWorkout
	s.mu.Unlock()

	s.notify()
	return nil
}

// sessionExercise resolves an exercise index in the live session. Callers
// must hold s.mu.
func (s *Store) sessionExercise(exerciseIndex int) (*models.SessionExercise, error) {
	if s.activeWorkout == nil {
		return nil, ErrNoActiveWorkout
	}
	if exerciseIndex < 0 || exerciseIndex >= len(s.activeWorkout.Exercises) {
		return nil, fmt.Errorf("exercise %d: %w", exerciseIndex, ErrNotFound)
	}
	return &s.activeWorkout.Exercises[exerciseIndex], nil
}

// AddSet appends a fully-specified set to an exercise in the live session.
func (s *Store) AddSet(exerciseIndex int, weight float64, reps int, rpe float64) error {
	s.mu.Lock()
	ex, err := s.sessionExercise(exerciseIndex)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	ex.Sets = append(ex.Sets, models.SetEntry{Weight: weight, Reps: reps, RPE: rpe})
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteSet removes a set by position.
func (s *Store) DeleteSet(exerciseIndex, setIndex int) error {
	return s.RemoveWorkoutSet(exerciseIndex, setIndex)
}

// AddWorkoutSet appends an empty set for the tracking view to fill in field
// by field.
func (s *Store) AddWorkoutSet(exerciseIndex int) error {
	return s.AddSet(exerciseIndex, 0, 0, 0)
}

// UpdateWorkoutSet edits one field ("weight", "reps", or "rpe") of a set in
// place.
func (s *Store) UpdateWorkoutSet(exerciseIndex, setIndex int, field string, value float64) error {
	s.mu.Lock()
	ex, err := s.sessionExercise(exerciseIndex)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		s.mu.Unlock()
		return fmt.Errorf("set %d: %w", setIndex, ErrNotFound)
	}

	set := &ex.Sets[setIndex]
	switch field {
	case "weight":
		set.Weight = value
	case "reps":
		set.Reps = int(value)
	case "rpe":
		set.RPE = value
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown set field %q", field)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveWorkoutSet deletes a set by position. Set numbers are positional, so
// the remaining sets renumber automatically.
func (s *Store) RemoveWorkoutSet(exerciseIndex, setIndex int) error {
	s.mu.Lock()
	ex, err := s.sessionExercise(exerciseIndex)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		s.mu.Unlock()
		return fmt.Errorf("set %d: %w", setIndex, ErrNotFound)
	}
	ex.Sets = append(ex.Sets[:setIndex], ex.Sets[setIndex+1:]...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// ToggleWorkoutSetCompleted flips a set's completion flag.
func (s *Store) ToggleWorkoutSetCompleted(exerciseIndex, setIndex int) error {
	s.mu.Lock()
	ex, err := s.sessionExercise(exerciseIndex)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		s.mu.Unlock()
		return fmt.Errorf("set %d: %w", setIndex, ErrNotFound)
	}
	ex.Sets[setIndex].Completed = !ex.Sets[setIndex].Completed
	s.mu.Unlock()

	s.notify()
	return nil
}

// FinishWorkout converts the live session into an immutable history entry,
// persists it, and returns to the home view. Calling with no active workout
// is a no-op. The session is claimed under the lock, so two concurrent
// finishes produce one entry; a failed save puts the session back for retry.
func (s *Store) FinishWorkout(ctx context.Context) error {
	s.mu.Lock()
	w := s.activeWorkout
	if w == nil {
		s.mu.Unlock()
		return nil
	}
	s.activeWorkout = nil
	programName := ""
	if s.program != nil {
		programName = s.program.Name
	}
	exercises := copySessionExercises(w.Exercises)
	s.mu.Unlock()

	entry := models.WorkoutEntry{
		ID:          uuid.NewString(),
		Date:        w.Date,
		CompletedAt: time.Now(),
		Week:        w.Week,
		DayID:       w.DayID,
		DayName:     w.DayName,
		ProgramName: programName,
		Exercises:   exercises,
	}

	if err := s.gw.SaveWorkout(ctx, entry); err != nil {
		s.mu.Lock()
		if s.activeWorkout == nil {
			s.activeWorkout = w
		}
		s.mu.Unlock()
		return fmt.Errorf("saving workout: %w", err)
	}

	s.mu.Lock()
	s.workoutHistory = append([]models.WorkoutEntry{entry}, s.workoutHistory...)
	s.view = ViewHome
	s.stopRestTimerLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// copySessionExercises snapshots the per-exercise set slices. The history
// entry must not alias sets a restored session could still mutate.
func copySessionExercises(src []models.SessionExercise) []models.SessionExercise {
	out := make([]models.SessionExercise, len(src))
	copy(out, src)
	for i := range out {
		sets := make([]models.SetEntry, len(out[i].Sets))
		copy(sets, out[i].Sets)
		out[i].Sets = sets
	}
	return out
}

// CancelWorkout discards the live session unconditionally. Nothing is
// written to history.
func (s *Store) CancelWorkout() {
	s.mu.Lock()
	s.activeWorkout = nil
	s.view = ViewHome
	s.stopRestTimerLocked()
	s.mu.Unlock()

	s.notify()
}

// --- History ---

// WorkoutHistory returns the finished workouts, newest first.
func (s *Store) WorkoutHistory() []models.WorkoutEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]models.WorkoutEntry, len(s.workoutHistory))
	copy(history, s.workoutHistory)
	return history
}

// DeleteWorkoutEntry removes a history entry by ID and persists the
// deletion. An unknown ID is a silent no-op.
func (s *Store) DeleteWorkoutEntry(ctx context.Context, id string) error {
	if err := s.gw.DeleteWorkout(ctx, id); err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}

	s.mu.Lock()
	for i, entry := range s.workoutHistory {
		if entry.ID == id {
			s.workoutHistory = append(s.workoutHistory[:i], s.workoutHistory[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// --- Statistics delegations ---

// GetSessionType resolves which rotation slot applies for a week and day
// ordinal.
func (s *Store) GetSessionType(week, dayOrdinal int) int {
	return models.ResolveRotationIndex(week, dayOrdinal)
}

// GetExerciseHistory returns per-workout set history for one exercise.
func (s *Store) GetExerciseHistory(exerciseName string) []models.ExerciseSession {
	return stats.ExerciseHistory(s.WorkoutHistory(), exerciseName)
}

// GetBig3Stats summarizes the squat, bench, and deadlift.
func (s *Store) GetBig3Stats() models.BigThree {
	return stats.BigThreeSummary(s.WorkoutHistory())
}

// GetAllPersonalRecords returns per-exercise PRs sorted by max weight.
func (s *Store) GetAllPersonalRecords() []models.PersonalRecord {
	return stats.PersonalRecords(s.WorkoutHistory())
}

// GetVolumeTrend returns per-workout volume for the most recent workouts.
func (s *Store) GetVolumeTrend(limit int) []models.VolumePoint {
	return stats.VolumeTrend(s.WorkoutHistory(), limit)
}

// --- Exercise library ---

// ExerciseLibrary returns the cached catalog (built-ins plus custom).
func (s *Store) ExerciseLibrary() []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Exercise, len(s.exerciseLibrary))
	copy(out, s.exerciseLibrary)
	return out
}

// LoadExerciseLibrary refreshes the catalog cache from the gateway.
func (s *Store) LoadExerciseLibrary(ctx context.Context) error {
	custom, err := s.gw.CustomExercises(ctx)
	if err != nil {
		return fmt.Errorf("loading exercise library: %w", err)
	}

	s.mu.Lock()
	s.exerciseLibrary = append(models.BuiltinExercises(), custom...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// AddCustomExercise persists a custom catalog entry and refreshes the cache.
func (s *Store) AddCustomExercise(ctx context.Context, ex models.Exercise) (models.Exercise, error) {
	saved, err := s.gw.AddCustomExercise(ctx, ex)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("adding exercise: %w", err)
	}
	if err := s.LoadExerciseLibrary(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// DeleteCustomExercise removes a custom catalog entry and refreshes the
// cache.
func (s *Store) DeleteCustomExercise(ctx context.Context, id string) error {
	if err := s.gw.DeleteCustomExercise(ctx, id); err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	return s.LoadExerciseLibrary(ctx)
}

// --- Rest timer ---

// RestRemaining returns the seconds left on the rest timer, 0 when idle.
func (s *Store) RestRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restRemaining
}

// StartRestTimer starts (or restarts) a countdown of the given duration,
// floored at 10 seconds. Each tick updates RestRemaining and notifies
// subscribers. The timer stops on its own at zero and is cancelled by
// StopRestTimer, FinishWorkout, and CancelWorkout so it cannot leak across
// view transitions.
func (s *Store) StartRestTimer(seconds int) {
	if seconds < minRestSeconds {
		seconds = minRestSeconds
	}

	s.mu.Lock()
	s.stopRestTimerLocked()
	s.restRemaining = seconds
	stop := make(chan struct{})
	s.restStop = stop
	s.mu.Unlock()

	s.notify()

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.restRemaining--
				done := s.restRemaining <= 0
				if done {
					s.restRemaining = 0
					if s.restStop == stop {
						s.restStop = nil
					}
				}
				s.mu.Unlock()
				s.notify()
				if done {
					return
				}
			}
		}
	}()
}

// StopRestTimer cancels the countdown and resets the display to zero.
func (s *Store) StopRestTimer() {
	s.mu.Lock()
	s.stopRestTimerLocked()
	s.mu.Unlock()
	s.notify()
}

// stopRestTimerLocked cancels any running timer. Callers must hold s.mu.
func (s *Store) stopRestTimerLocked() {
	if s.restStop != nil {
		close(s.restStop)
		s.restStop = nil
	}
	s.restRemaining = 0
}
