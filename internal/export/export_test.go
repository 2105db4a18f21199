package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleHistory() []models.WorkoutEntry {
	return []models.WorkoutEntry{
		{
			ID: "w2", Date: day(2026, 3, 10), Week: 2, DayName: "Upper (Horizontal)",
			Exercises: []models.SessionExercise{
				{Name: "Barbell Bench Press", Sets: []models.SetEntry{
					{Weight: 185, Reps: 8, RPE: 8, Completed: true},
					{Weight: 185, Reps: 7, RPE: 8.5},
				}},
			},
		},
		{
			ID: "w1", Date: day(2026, 3, 8), Week: 2, DayName: "Lower (Squat)",
			Exercises: []models.SessionExercise{
				{Name: "Back Squat", Sets: []models.SetEntry{
					{Weight: 275, Reps: 4, RPE: 8, Completed: true},
				}},
				{Name: "Leg Press", Sets: nil},
			},
		},
	}
}

// TestFilterDateRange verifies inclusive from/to bounds.
func TestFilterDateRange(t *testing.T) {
	history := sampleHistory()

	got := Filter{From: day(2026, 3, 9)}.Apply(history)
	if len(got) != 1 || got[0].ID != "w2" {
		t.Errorf("from filter kept %d entries", len(got))
	}

	got = Filter{To: day(2026, 3, 8)}.Apply(history)
	if len(got) != 1 || got[0].ID != "w1" {
		t.Errorf("to filter kept %d entries", len(got))
	}

	got = Filter{From: day(2026, 3, 8), To: day(2026, 3, 10)}.Apply(history)
	if len(got) != 2 {
		t.Errorf("inclusive range kept %d entries, want 2", len(got))
	}
}

// TestFilterExerciseSubstring verifies case-insensitive name matching.
func TestFilterExerciseSubstring(t *testing.T) {
	history := sampleHistory()

	got := Filter{Exercise: "bench"}.Apply(history)
	if len(got) != 1 || got[0].ID != "w2" {
		t.Errorf("bench filter kept %v", got)
	}

	got = Filter{Exercise: "SQUAT"}.Apply(history)
	if len(got) != 1 || got[0].ID != "w1" {
		t.Errorf("squat filter kept %v", got)
	}

	if got = (Filter{Exercise: "deadlift"}).Apply(history); len(got) != 0 {
		t.Errorf("deadlift filter kept %d entries", len(got))
	}
}

// TestWriteJSONRoundTrips verifies the JSON output decodes back to the
// filtered entries.
func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleHistory(), Filter{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded []models.WorkoutEntry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d entries, want 2", len(decoded))
	}
	if decoded[0].DayName != "Upper (Horizontal)" {
		t.Errorf("day name = %q", decoded[0].DayName)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output is not indented")
	}
}

// TestWriteCSVRows verifies one row per set with the expected columns and
// that set-less exercises contribute nothing.
func TestWriteCSVRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleHistory(), Filter{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// Header + 2 bench sets + 1 squat set. Leg Press has no sets.
	if len(rows) != 4 {
		t.Fatalf("row count = %d, want 4", len(rows))
	}

	wantHeader := []string{"Date", "Day Name", "Week", "Exercise", "Set", "Weight (lbs)", "Reps", "RPE", "Completed"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	want := []string{"2026-03-10", "Upper (Horizontal)", "2", "Barbell Bench Press", "1", "185", "8", "8", "true"}
	for i, col := range want {
		if rows[1][i] != col {
			t.Errorf("row[1][%d] = %q, want %q", i, rows[1][i], col)
		}
	}
	if rows[2][4] != "2" || rows[2][7] != "8.5" || rows[2][8] != "false" {
		t.Errorf("row[2] = %v", rows[2])
	}
	if rows[3][3] != "Back Squat" {
		t.Errorf("row[3] = %v", rows[3])
	}
}
