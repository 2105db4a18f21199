package stats

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
}

func workout(date time.Time, week int, dayName string, exercises ...models.SessionExercise) models.WorkoutEntry {
	return models.WorkoutEntry{Date: date, Week: week, DayName: dayName, Exercises: exercises}
}

func lift(name string, sets ...models.SetEntry) models.SessionExercise {
	return models.SessionExercise{Name: name, Sets: sets}
}

// newestFirst history: two squat sessions and one bench session.
func squatHistory() []models.WorkoutEntry {
	return []models.WorkoutEntry{
		workout(day(10), 2, "Lower (Squat)",
			lift("Back Squat", models.SetEntry{Weight: 290, Reps: 4, RPE: 8.5}),
		),
		workout(day(8), 2, "Upper (Horizontal)",
			lift("Barbell Bench Press", models.SetEntry{Weight: 200, Reps: 10, RPE: 9}),
		),
		workout(day(3), 1, "Lower (Squat)",
			lift("Back Squat",
				models.SetEntry{Weight: 275, Reps: 8, RPE: 8},
				models.SetEntry{Weight: 275, Reps: 7, RPE: 8.5},
			),
			lift("Leg Press"),
		),
	}
}

// TestExerciseHistoryOrderAndFilter verifies sessions come back most recent
// first and that set-less appearances are skipped.
func TestExerciseHistoryOrderAndFilter(t *testing.T) {
	sessions := ExerciseHistory(squatHistory(), "Back Squat")
	if len(sessions) != 2 {
		t.Fatalf("session count = %d, want 2", len(sessions))
	}
	if !sessions[0].Date.After(sessions[1].Date) {
		t.Errorf("sessions not most-recent-first: %v then %v", sessions[0].Date, sessions[1].Date)
	}

	if got := ExerciseHistory(squatHistory(), "Leg Press"); len(got) != 0 {
		t.Errorf("set-less exercise produced %d sessions", len(got))
	}
	if got := ExerciseHistory(squatHistory(), "Nonexistent"); len(got) != 0 {
		t.Errorf("unknown exercise produced %d sessions", len(got))
	}
}

// TestMaxWeight verifies the running maximum and the empty case.
func TestMaxWeight(t *testing.T) {
	sessions := ExerciseHistory(squatHistory(), "Back Squat")
	if got := MaxWeight(sessions); got != 290 {
		t.Errorf("MaxWeight = %v, want 290", got)
	}
	if got := MaxWeight(nil); got != 0 {
		t.Errorf("MaxWeight(nil) = %v, want 0", got)
	}
}

// TestEstimate1RM verifies the Brzycki formula and its guard conditions.
func TestEstimate1RM(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{100, 1, 100}, // 100*36/36
		{200, 10, 200 * 36 / 27.0},
		{0, 5, 0},   // no weight
		{100, 0, 0}, // no reps
		{100, 37, 0},
		{100, 40, 0},
		{-50, 5, 0},
	}
	for _, tt := range tests {
		if got := Estimate1RM(tt.weight, tt.reps); got != tt.want {
			t.Errorf("Estimate1RM(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
		}
	}
}

// TestEstimatedOneRepMaxRounds verifies the best estimate is rounded to the
// nearest integer.
func TestEstimatedOneRepMaxRounds(t *testing.T) {
	sessions := []models.ExerciseSession{
		{Sets: []models.SetEntry{{Weight: 200, Reps: 10}}}, // 266.67
	}
	if got := EstimatedOneRepMax(sessions); got != 267 {
		t.Errorf("EstimatedOneRepMax = %d, want 267", got)
	}
	if got := EstimatedOneRepMax(nil); got != 0 {
		t.Errorf("EstimatedOneRepMax(nil) = %d, want 0", got)
	}
}

// TestBigThreeSummary verifies exact-name matching and per-lift aggregation.
func TestBigThreeSummary(t *testing.T) {
	summary := BigThreeSummary(squatHistory())

	if summary.Squat.Max != 290 || summary.Squat.SessionCount != 2 {
		t.Errorf("squat = %+v", summary.Squat)
	}
	if summary.Bench.Max != 200 || summary.Bench.SessionCount != 1 {
		t.Errorf("bench = %+v", summary.Bench)
	}
	if summary.Bench.Estimated1RM != 267 {
		t.Errorf("bench e1RM = %d, want 267", summary.Bench.Estimated1RM)
	}
	if summary.Deadlift.SessionCount != 0 || summary.Deadlift.Max != 0 {
		t.Errorf("deadlift = %+v, want empty", summary.Deadlift)
	}
}

// TestPersonalRecordsIndependentMaxima verifies the four maxima track
// independently: a heavy low-rep set and a light high-rep set split the
// records.
func TestPersonalRecordsIndependentMaxima(t *testing.T) {
	history := []models.WorkoutEntry{
		workout(day(9), 2, "B", lift("Barbell Curl", models.SetEntry{Weight: 60, Reps: 10})),
		workout(day(2), 1, "A", lift("Barbell Curl", models.SetEntry{Weight: 100, Reps: 5})),
	}
	records := PersonalRecords(history)
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	rec := records[0]

	if rec.MaxWeight != 100 || !rec.MaxWeightDate.Equal(day(2)) {
		t.Errorf("max weight = %v on %v", rec.MaxWeight, rec.MaxWeightDate)
	}
	if rec.MaxReps != 10 || !rec.MaxRepsDate.Equal(day(9)) {
		t.Errorf("max reps = %d on %v", rec.MaxReps, rec.MaxRepsDate)
	}
	// Volume: 60*10=600 beats 100*5=500, so the high-rep set holds it.
	if rec.MaxVolume != 600 || !rec.MaxVolumeDate.Equal(day(9)) {
		t.Errorf("max volume = %v on %v", rec.MaxVolume, rec.MaxVolumeDate)
	}
	// e1RM: 100*36/32=112.5 -> 113 beats 60*36/27=80.
	if rec.Estimated1RM != 113 || !rec.Estimated1RMDate.Equal(day(2)) {
		t.Errorf("e1RM = %d on %v", rec.Estimated1RM, rec.Estimated1RMDate)
	}
}

// TestPersonalRecordsSortedByMaxWeight verifies descending max-weight order.
func TestPersonalRecordsSortedByMaxWeight(t *testing.T) {
	history := []models.WorkoutEntry{
		workout(day(1), 1, "A",
			lift("Barbell Curl", models.SetEntry{Weight: 60, Reps: 10}),
			lift("Back Squat", models.SetEntry{Weight: 300, Reps: 3}),
			lift("Barbell Bench Press", models.SetEntry{Weight: 185, Reps: 8}),
		),
	}
	records := PersonalRecords(history)
	if len(records) != 3 {
		t.Fatalf("record count = %d, want 3", len(records))
	}
	want := []string{"Back Squat", "Barbell Bench Press", "Barbell Curl"}
	for i, name := range want {
		if records[i].Name != name {
			t.Errorf("records[%d] = %q, want %q", i, records[i].Name, name)
		}
	}
}

// TestVolumeTrendWindowAndOrder verifies the window takes the most recent
// workouts and returns them chronologically.
func TestVolumeTrendWindowAndOrder(t *testing.T) {
	var history []models.WorkoutEntry
	// Newest first: days 15, 14, ..., 1.
	for d := 15; d >= 1; d-- {
		history = append(history, workout(day(d), 1, "A",
			lift("Back Squat", models.SetEntry{Weight: float64(d), Reps: 10}),
		))
	}

	points := VolumeTrend(history, 0)
	if len(points) != DefaultVolumeTrendLimit {
		t.Fatalf("point count = %d, want %d", len(points), DefaultVolumeTrendLimit)
	}
	// Default window: days 6..15, chronological.
	if !points[0].Date.Equal(day(6)) || !points[9].Date.Equal(day(15)) {
		t.Errorf("window = %v .. %v, want day 6 .. day 15", points[0].Date, points[9].Date)
	}
	if points[0].Volume != 60 { // 6 * 10 reps
		t.Errorf("volume = %v, want 60", points[0].Volume)
	}

	points = VolumeTrend(history, 3)
	if len(points) != 3 || !points[0].Date.Equal(day(13)) {
		t.Errorf("limit 3 window starts at %v", points[0].Date)
	}

	if got := VolumeTrend(nil, 5); len(got) != 0 {
		t.Errorf("empty history produced %d points", len(got))
	}
}

// TestVolumeTrendMalformedSets verifies zero-field sets contribute zero
// volume instead of failing.
func TestVolumeTrendMalformedSets(t *testing.T) {
	history := []models.WorkoutEntry{
		workout(day(1), 1, "A", lift("Back Squat",
			models.SetEntry{Weight: 100}, // no reps
			models.SetEntry{Reps: 10},    // no weight
		)),
	}
	points := VolumeTrend(history, 1)
	if len(points) != 1 || points[0].Volume != 0 {
		t.Errorf("points = %+v, want single zero-volume point", points)
	}
}
