// Package export renders workout history as JSON or CSV for download and
// offline analysis.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Filter narrows the history before rendering. Zero values mean "no
// constraint".
type Filter struct {
	// From and To bound the workout date, inclusive.
	From time.Time
	To   time.Time
	// Exercise keeps only workouts containing an exercise whose name
	// matches this case-insensitive substring.
	Exercise string
}

// Apply returns the entries passing the filter, preserving input order.
func (f Filter) Apply(history []models.WorkoutEntry) []models.WorkoutEntry {
	out := make([]models.WorkoutEntry, 0, len(history))
	for _, entry := range history {
		if !f.From.IsZero() && entry.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && entry.Date.After(f.To) {
			continue
		}
		if f.Exercise != "" && !containsExercise(entry, f.Exercise) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func containsExercise(entry models.WorkoutEntry, term string) bool {
	term = strings.ToLower(term)
	for _, ex := range entry.Exercises {
		if strings.Contains(strings.ToLower(ex.Name), term) {
			return true
		}
	}
	return false
}

// WriteJSON writes the filtered history as an indented JSON array.
func WriteJSON(w io.Writer, history []models.WorkoutEntry, f Filter) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.Apply(history)); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return nil
}

var csvHeader = []string{"Date", "Day Name", "Week", "Exercise", "Set", "Weight (lbs)", "Reps", "RPE", "Completed"}

// WriteCSV writes one row per logged set. Exercises with no sets contribute
// no rows.
func WriteCSV(w io.Writer, history []models.WorkoutEntry, f Filter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, entry := range f.Apply(history) {
		date := entry.Date.Format("2006-01-02")
		for _, ex := range entry.Exercises {
			for i, set := range ex.Sets {
				row := []string{
					date,
					entry.DayName,
					strconv.Itoa(entry.Week),
					ex.Name,
					strconv.Itoa(i + 1),
					formatFloat(set.Weight),
					strconv.Itoa(set.Reps),
					formatFloat(set.RPE),
					strconv.FormatBool(set.Completed),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
