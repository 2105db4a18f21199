package models

import (
	"fmt"

	"github.com/google/uuid"
)

// RotationLength is the number of week-slots in a DUP rotation for a main lift.
const RotationLength = 3

// MaxWeek is the last week of a training block. The store clamps the current
// week to [1, MaxWeek] before it reaches the rotation resolver.
const MaxWeek = 12

// ExercisePrescription is one exercise slot within a program day. A main lift
// carries a 3-slot DUP rotation; anything else carries fixed sets and RPE.
// Exactly one of the two is populated, selected by IsMain.
type ExercisePrescription struct {
	ExerciseID string   `json:"exercise_id,omitempty"`
	Name       string   `json:"exercise_name"`
	IsMain     bool     `json:"is_main"`
	Rotation   []string `json:"rotation,omitempty"`
	Sets       string   `json:"sets,omitempty"`
	RPE        string   `json:"rpe,omitempty"`
}

// SessionType returns the textual prescription for the given rotation slot:
// the rotation entry for a main lift, or "sets @ rpe" for everything else.
// Main lifts whose rotation is shorter than RotationLength (the built-in
// deadlift day has only two slots) wrap the index.
func (p ExercisePrescription) SessionType(slot int) string {
	if p.IsMain && len(p.Rotation) > 0 {
		return p.Rotation[slot%len(p.Rotation)]
	}
	return fmt.Sprintf("%s @ %s", p.Sets, p.RPE)
}

// ProgramDay is a named, ordered list of prescriptions.
type ProgramDay struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Exercises []ExercisePrescription `json:"exercises"`
}

// Program is the active training program: a named, ordered list of days.
// Days carry stable IDs so that editing or reordering days never silently
// reassigns another day's rotation state.
type Program struct {
	ID   string       `json:"id,omitempty"`
	Name string       `json:"name"`
	Days []ProgramDay `json:"days"`
}

// Day returns the day with the given ID, or nil if absent.
func (p *Program) Day(dayID string) *ProgramDay {
	for i := range p.Days {
		if p.Days[i].ID == dayID {
			return &p.Days[i]
		}
	}
	return nil
}

// DayOrdinal returns the 1-based position of the day in the program, or 0 if
// the day is not part of the program. The ordinal feeds the rotation
// resolver; it is display order, not identity.
func (p *Program) DayOrdinal(dayID string) int {
	for i := range p.Days {
		if p.Days[i].ID == dayID {
			return i + 1
		}
	}
	return 0
}

// ProgramData is the builder-shaped record exchanged with the persistence
// gateway and the program builder: {name, days:[...]}.
type ProgramData struct {
	Name string       `json:"name"`
	Days []ProgramDay `json:"days"`
}

// NormalizeProgram converts a builder-shaped record into a Program, assigning
// a fresh UUID to any day that arrives without one. Day order is preserved.
func NormalizeProgram(data ProgramData) *Program {
	p := &Program{Name: data.Name, Days: make([]ProgramDay, len(data.Days))}
	copy(p.Days, data.Days)
	for i := range p.Days {
		if p.Days[i].ID == "" {
			p.Days[i].ID = uuid.NewString()
		}
	}
	return p
}

// Data converts the program back into the builder shape. It is the inverse of
// NormalizeProgram for any program whose days already carry IDs.
func (p *Program) Data() ProgramData {
	days := make([]ProgramDay, len(p.Days))
	copy(days, p.Days)
	return ProgramData{Name: p.Name, Days: days}
}

// ResolveRotationIndex maps (week, dayOrdinal) to a rotation slot in [0,2].
//
// Day 3 of the built-in 4-day template alternates between only two of its
// slots: odd weeks use slot 0, even weeks slot 1. Every other day cycles
// through all three slots, week 1 starting at slot 0.
//
// Week numbers are clamped to [1, MaxWeek] by the store before use; this
// function does not validate range. dayOrdinal must be the day's 1-based
// position within the program.
func ResolveRotationIndex(week, dayOrdinal int) int {
	if dayOrdinal == 3 {
		if week%2 == 1 {
			return 0
		}
		return 1
	}
	return (week - 1) % RotationLength
}

// DefaultProgram returns the built-in 4-day DUP template. Day IDs are stable
// across calls so that history recorded against the default program keeps
// resolving to the same days.
func DefaultProgram() *Program {
	mainRotation := []string{"4x4 @ RPE 8-8.5", "4x8 @ RPE 8", "5x3 @ RPE 7-7.5"}
	return &Program{
		Name: "4-Day DUP",
		Days: []ProgramDay{
			{
				ID:   "default-day-1",
				Name: "Lower (Squat)",
				Exercises: []ExercisePrescription{
					{Name: "Back Squat", IsMain: true, Rotation: mainRotation},
					{Name: "Romanian Deadlift", Sets: "4x8-10", RPE: "RPE 7-8"},
					{Name: "Leg Press", Sets: "3x12-15", RPE: "RPE 7-8"},
					{Name: "Lying Leg Curl", Sets: "3x10-12", RPE: "RPE 7-8"},
					{Name: "Standing Calf Raise", Sets: "4x15-20", RPE: "RPE 7-8"},
				},
			},
			{
				ID:   "default-day-2",
				Name: "Upper (Horizontal)",
				Exercises: []ExercisePrescription{
					{Name: "Barbell Bench Press", IsMain: true, Rotation: mainRotation},
					{Name: "Chest Row Machine", Sets: "4x8-10", RPE: "RPE 7-8"},
					{Name: "Plate-Loaded Incline Press", Sets: "3x10-12", RPE: "RPE 7-8"},
					{Name: "Single-Arm DB Row", Sets: "3x10-12/arm", RPE: "RPE 7-8"},
					{Name: "Cable Chest Fly", Sets: "3x12-15", RPE: "RPE 7-8"},
					{Name: "Face Pulls", Sets: "3x15-20", RPE: "RPE 7-8"},
				},
			},
			{
				ID:   "default-day-3",
				Name: "Lower (Deadlift)",
				Exercises: []ExercisePrescription{
					// Deadlifts skip the volume slot: only two rotation entries,
					// paired with the odd/even alternation for day ordinal 3.
					{Name: "Conventional Deadlift", IsMain: true, Rotation: []string{"4x4 @ RPE 8-8.5", "5x3 @ RPE 7-7.5"}},
					{Name: "Front Squat", Sets: "3x8-10", RPE: "RPE 7-8"},
					{Name: "Walking Lunges", Sets: "3x10/leg", RPE: "RPE 7-8"},
					{Name: "Leg Extension", Sets: "3x12-15", RPE: "RPE 7-8"},
					{Name: "Seated Calf Raise", Sets: "4x15-20", RPE: "RPE 7-8"},
				},
			},
			{
				ID:   "default-day-4",
				Name: "Upper (Vertical + Arms)",
				Exercises: []ExercisePrescription{
					{Name: "Seated Barbell OHP", IsMain: true, Rotation: mainRotation},
					{Name: "Pull-Ups/Lat Pulldown", Sets: "4x6-8", RPE: "RPE 7-8"},
					{Name: "DB Lateral Raise", Sets: "3x12-15", RPE: "RPE 7-8"},
					{Name: "Barbell Curl", Sets: "3x8-10", RPE: "RPE 7-8"},
					{Name: "Rope Pushdown", Sets: "3x10-12", RPE: "RPE 7-8"},
					{Name: "Hammer Curl", Sets: "3x10-12", RPE: "RPE 7-8"},
					{Name: "Overhead Tricep Ext", Sets: "3x10-12", RPE: "RPE 7-8"},
				},
			},
		},
	}
}
