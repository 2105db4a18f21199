package store

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// ProgramBuilder is the three-step program wizard's draft. It lives outside
// the active program so an abandoned edit never leaks into live state: the
// draft only becomes real through SaveCurrentProgram, and ResetBuilder
// discards it wholesale.
//
// Step 1 names the program and picks the day count, step 2 names the days,
// step 3 fills in each day's exercises.
type ProgramBuilder struct {
	// Step runs 1..3.
	Step int
	// SourceProgramID is set when editing an existing program; empty for a
	// new one. It decides create-vs-update on save.
	SourceProgramID string
	Name            string
	Days            []models.ProgramDay
}

func newProgramBuilder() *ProgramBuilder {
	return &ProgramBuilder{Step: 1}
}

// Builder returns a copy of the current draft.
func (s *Store) Builder() ProgramBuilder {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := *s.builder
	b.Days = make([]models.ProgramDay, len(s.builder.Days))
	copy(b.Days, s.builder.Days)
	return b
}

// StartBuilder opens a fresh draft and switches to the builder view.
func (s *Store) StartBuilder() {
	s.mu.Lock()
	s.builder = newProgramBuilder()
	s.view = ViewProgramBuilder
	s.mu.Unlock()
	s.notify()
}

// EditProgram seeds the draft from the active program so saving rewrites it
// in place instead of creating a new one.
func (s *Store) EditProgram() error {
	s.mu.Lock()
	if s.program == nil {
		s.mu.Unlock()
		return fmt.Errorf("editing program: no program loaded")
	}
	days := make([]models.ProgramDay, len(s.program.Days))
	copy(days, s.program.Days)
	s.builder = &ProgramBuilder{
		Step:            1,
		SourceProgramID: s.program.ID,
		Name:            s.program.Name,
		Days:            days,
	}
	s.view = ViewProgramBuilder
	s.mu.Unlock()
	s.notify()
	return nil
}

// ResetBuilder discards the draft.
func (s *Store) ResetBuilder() {
	s.mu.Lock()
	s.builder = newProgramBuilder()
	s.mu.Unlock()
	s.notify()
}

// SetBuilderBasics records step 1: program name and day count. Existing day
// entries beyond the new count are dropped; new slots get placeholder names.
func (s *Store) SetBuilderBasics(name string, dayCount int) error {
	if dayCount < 1 || dayCount > 7 {
		return fmt.Errorf("day count %d out of range", dayCount)
	}

	s.mu.Lock()
	s.builder.Name = name
	if dayCount < len(s.builder.Days) {
		s.builder.Days = s.builder.Days[:dayCount]
	}
	for len(s.builder.Days) < dayCount {
		s.builder.Days = append(s.builder.Days, models.ProgramDay{
			Name: fmt.Sprintf("Day %d", len(s.builder.Days)+1),
		})
	}
	s.builder.Step = 2
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetBuilderDayName records step 2: renames one draft day.
func (s *Store) SetBuilderDayName(dayIndex int, name string) error {
	s.mu.Lock()
	if dayIndex < 0 || dayIndex >= len(s.builder.Days) {
		s.mu.Unlock()
		return fmt.Errorf("day %d: %w", dayIndex, ErrNotFound)
	}
	s.builder.Days[dayIndex].Name = name
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetBuilderDays replaces the draft's name and day list in one shot and
// jumps to the exercise step. Days keep whatever IDs they carry; empty IDs
// are assigned on save. Callers editing a whole program at once use this
// instead of walking the wizard.
func (s *Store) SetBuilderDays(name string, days []models.ProgramDay) error {
	if name == "" {
		return fmt.Errorf("draft needs a name")
	}
	if len(days) < 1 || len(days) > 7 {
		return fmt.Errorf("day count %d out of range", len(days))
	}

	s.mu.Lock()
	s.builder.Name = name
	s.builder.Days = make([]models.ProgramDay, len(days))
	copy(s.builder.Days, days)
	s.builder.Step = 3
	s.mu.Unlock()

	s.notify()
	return nil
}

// AdvanceBuilder moves the wizard to the next step, capped at 3.
func (s *Store) AdvanceBuilder() {
	s.mu.Lock()
	if s.builder.Step < 3 {
		s.builder.Step++
	}
	s.mu.Unlock()
	s.notify()
}

// AddBuilderExercise appends a prescription to a draft day (step 3).
func (s *Store) AddBuilderExercise(dayIndex int, p models.ExercisePrescription) error {
	s.mu.Lock()
	if dayIndex < 0 || dayIndex >= len(s.builder.Days) {
		s.mu.Unlock()
		return fmt.Errorf("day %d: %w", dayIndex, ErrNotFound)
	}
	s.builder.Days[dayIndex].Exercises = append(s.builder.Days[dayIndex].Exercises, p)
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveBuilderExercise deletes a prescription from a draft day.
func (s *Store) RemoveBuilderExercise(dayIndex, exerciseIndex int) error {
	s.mu.Lock()
	if dayIndex < 0 || dayIndex >= len(s.builder.Days) {
		s.mu.Unlock()
		return fmt.Errorf("day %d: %w", dayIndex, ErrNotFound)
	}
	day := &s.builder.Days[dayIndex]
	if exerciseIndex < 0 || exerciseIndex >= len(day.Exercises) {
		s.mu.Unlock()
		return fmt.Errorf("exercise %d: %w", exerciseIndex, ErrNotFound)
	}
	day.Exercises = append(day.Exercises[:exerciseIndex], day.Exercises[exerciseIndex+1:]...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// SaveCurrentProgram commits the draft. A draft seeded by EditProgram
// rewrites the source program in place, preserving its identity and day IDs;
// otherwise a new program is created and becomes active. The draft is
// claimed up front, so a concurrent save cannot commit it twice; a failed
// write puts it back. On success the view returns home.
func (s *Store) SaveCurrentProgram(ctx context.Context) error {
	s.mu.Lock()
	b := s.builder
	if b.Name == "" {
		s.mu.Unlock()
		return fmt.Errorf("saving program: draft has no name")
	}
	if len(b.Days) == 0 {
		s.mu.Unlock()
		return fmt.Errorf("saving program: draft has no days")
	}
	fresh := newProgramBuilder()
	s.builder = fresh
	days := make([]models.ProgramDay, len(b.Days))
	copy(days, b.Days)
	sourceID := b.SourceProgramID
	data := models.ProgramData{Name: b.Name, Days: days}
	s.mu.Unlock()

	program := models.NormalizeProgram(data)

	var saveErr error
	if sourceID != "" {
		saveErr = s.gw.UpdateProgram(ctx, sourceID, program.Data())
		program.ID = sourceID
	} else {
		program.ID, saveErr = s.gw.SaveProgram(ctx, program.Data())
	}
	if saveErr != nil {
		s.mu.Lock()
		if s.builder == fresh {
			s.builder = b
		}
		s.mu.Unlock()
		if sourceID != "" {
			return fmt.Errorf("updating program: %w", saveErr)
		}
		return fmt.Errorf("saving program: %w", saveErr)
	}

	s.mu.Lock()
	s.program = program
	s.view = ViewHome
	s.mu.Unlock()

	s.notify()
	return nil
}
