package models

import "time"

// SetEntry is a single logged set. Zero weight/reps mean the field has not
// been filled in yet; the statistics engine treats those as absent.
type SetEntry struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	RPE       float64 `json:"rpe"`
	Completed bool    `json:"completed"`
}

// Volume returns weight times reps for this set.
func (s SetEntry) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// SessionExercise is one exercise within an active or completed workout. The
// exercise list and order are frozen at session start; only Sets change.
type SessionExercise struct {
	Name        string     `json:"name"`
	IsMain      bool       `json:"is_main"`
	SessionType string     `json:"session_type"`
	Sets        []SetEntry `json:"sets"`
}

// ActiveWorkout is the in-progress session. At most one exists at a time,
// owned by the store. Finishing converts it into a WorkoutEntry; cancelling
// discards it without trace.
type ActiveWorkout struct {
	Date      time.Time         `json:"date"`
	Week      int               `json:"week"`
	DayID     string            `json:"day_id"`
	DayName   string            `json:"day_name"`
	Exercises []SessionExercise `json:"exercises"`
}

// WorkoutEntry is an immutable snapshot of a finished workout. Entries are
// only ever created by finishing a workout and deleted by ID.
type WorkoutEntry struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	CompletedAt time.Time         `json:"completed_at"`
	Week        int               `json:"week"`
	DayID       string            `json:"day_id"`
	DayName     string            `json:"day_name"`
	ProgramName string            `json:"program_name,omitempty"`
	Exercises   []SessionExercise `json:"exercises"`
}

// ExerciseSession is one workout's worth of sets for a single exercise, as
// returned by the exercise-history query.
type ExerciseSession struct {
	Date time.Time  `json:"date"`
	Week int        `json:"week"`
	Sets []SetEntry `json:"sets"`
}

// PersonalRecord holds the best-ever value in each tracked dimension for one
// exercise. The four maxima are independent: a weight PR does not imply a
// volume PR. Derived on demand from history, never persisted.
type PersonalRecord struct {
	Name             string    `json:"name"`
	MaxWeight        float64   `json:"max_weight"`
	MaxWeightDate    time.Time `json:"max_weight_date"`
	MaxReps          int       `json:"max_reps"`
	MaxRepsDate      time.Time `json:"max_reps_date"`
	MaxVolume        float64   `json:"max_volume"`
	MaxVolumeDate    time.Time `json:"max_volume_date"`
	Estimated1RM     int       `json:"estimated_1rm"`
	Estimated1RMDate time.Time `json:"estimated_1rm_date"`
}

// LiftSummary is the per-lift slice of the big-three summary.
type LiftSummary struct {
	Max          float64 `json:"max"`
	Estimated1RM int     `json:"estimated_1rm"`
	SessionCount int     `json:"session_count"`
}

// BigThree summarizes the three competition lifts.
type BigThree struct {
	Squat    LiftSummary `json:"squat"`
	Bench    LiftSummary `json:"bench"`
	Deadlift LiftSummary `json:"deadlift"`
}

// VolumePoint is one workout's total volume, used for the volume trend.
type VolumePoint struct {
	Date    time.Time `json:"date"`
	DayName string    `json:"day_name"`
	Volume  float64   `json:"volume"`
	Week    int       `json:"week"`
}
