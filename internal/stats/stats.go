// Package stats derives aggregate training metrics from workout history.
// Every function is a pure aggregation over the history slice: no state, no
// side effects, and malformed or empty fields are treated as zero rather
// than reported as errors.
package stats

import (
	"math"
	"sort"

	"github.com/claude/liftlog/internal/models"
)

// Exact catalog names for the three competition lifts. Matching is exact
// string equality; a renamed exercise starts a fresh history.
const (
	SquatName    = "Back Squat"
	BenchName    = "Barbell Bench Press"
	DeadliftName = "Conventional Deadlift"
)

// DefaultVolumeTrendLimit is the number of workouts a volume trend covers
// when the caller does not specify one.
const DefaultVolumeTrendLimit = 10

// brzyckiRepCap bounds the rep count for which the Brzycki estimate is
// defined: the 36/(37-reps) multiplier blows up at 37 reps.
const brzyckiRepCap = 37

// ExerciseHistory returns every workout containing at least one logged set of
// the named exercise, most recent first. The store hands history over
// newest-first, so sessions come out in input order.
func ExerciseHistory(history []models.WorkoutEntry, exerciseName string) []models.ExerciseSession {
	var sessions []models.ExerciseSession
	for _, workout := range history {
		for _, ex := range workout.Exercises {
			if ex.Name == exerciseName && len(ex.Sets) > 0 {
				sessions = append(sessions, models.ExerciseSession{
					Date: workout.Date,
					Week: workout.Week,
					Sets: ex.Sets,
				})
				break
			}
		}
	}
	return sessions
}

// MaxWeight returns the heaviest set weight across the sessions, 0 if none.
func MaxWeight(sessions []models.ExerciseSession) float64 {
	var max float64
	for _, session := range sessions {
		for _, set := range session.Sets {
			if set.Weight > max {
				max = set.Weight
			}
		}
	}
	return max
}

// Estimate1RM computes the Brzycki one-rep-max estimate for a single set:
// weight * 36 / (37 - reps). Returns 0 when the set does not qualify
// (no weight, no reps, or reps at or beyond the formula's pole).
func Estimate1RM(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 || reps >= brzyckiRepCap {
		return 0
	}
	return weight * 36 / float64(brzyckiRepCap-reps)
}

// EstimatedOneRepMax returns the rounded best Brzycki estimate across all
// sets in the sessions, 0 if no set qualifies.
func EstimatedOneRepMax(sessions []models.ExerciseSession) int {
	var best float64
	for _, session := range sessions {
		for _, set := range session.Sets {
			if est := Estimate1RM(set.Weight, set.Reps); est > best {
				best = est
			}
		}
	}
	return int(math.Round(best))
}

// BigThreeSummary computes max weight, estimated 1RM, and session count for
// the squat, bench and deadlift.
func BigThreeSummary(history []models.WorkoutEntry) models.BigThree {
	summarize := func(name string) models.LiftSummary {
		sessions := ExerciseHistory(history, name)
		return models.LiftSummary{
			Max:          MaxWeight(sessions),
			Estimated1RM: EstimatedOneRepMax(sessions),
			SessionCount: len(sessions),
		}
	}
	return models.BigThree{
		Squat:    summarize(SquatName),
		Bench:    summarize(BenchName),
		Deadlift: summarize(DeadliftName),
	}
}

// PersonalRecords returns one record per distinct exercise name in the
// history, sorted by max weight descending. Each of the four tracked maxima
// (weight, reps, single-set volume, estimated 1RM) runs independently with
// its own achievement date.
func PersonalRecords(history []models.WorkoutEntry) []models.PersonalRecord {
	byName := make(map[string]*models.PersonalRecord)
	var order []string

	for _, workout := range history {
		for _, ex := range workout.Exercises {
			if ex.Name == "" {
				continue
			}
			rec, ok := byName[ex.Name]
			if !ok {
				rec = &models.PersonalRecord{Name: ex.Name}
				byName[ex.Name] = rec
				order = append(order, ex.Name)
			}
			for _, set := range ex.Sets {
				if set.Weight > rec.MaxWeight {
					rec.MaxWeight = set.Weight
					rec.MaxWeightDate = workout.Date
				}
				if set.Reps > rec.MaxReps {
					rec.MaxReps = set.Reps
					rec.MaxRepsDate = workout.Date
				}
				if v := set.Volume(); v > rec.MaxVolume {
					rec.MaxVolume = v
					rec.MaxVolumeDate = workout.Date
				}
				if est := int(math.Round(Estimate1RM(set.Weight, set.Reps))); est > rec.Estimated1RM {
					rec.Estimated1RM = est
					rec.Estimated1RMDate = workout.Date
				}
			}
		}
	}

	records := make([]models.PersonalRecord, 0, len(order))
	for _, name := range order {
		records = append(records, *byName[name])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MaxWeight > records[j].MaxWeight
	})
	return records
}

// VolumeTrend returns per-workout total volume for the most recent limit
// workouts, oldest of the selected window first. History is newest-first in
// the store, so the window is the head of the slice, reversed. A limit of 0
// or less falls back to DefaultVolumeTrendLimit.
func VolumeTrend(history []models.WorkoutEntry, limit int) []models.VolumePoint {
	if limit <= 0 {
		limit = DefaultVolumeTrendLimit
	}
	n := len(history)
	if limit > n {
		limit = n
	}

	points := make([]models.VolumePoint, 0, limit)
	for i := limit - 1; i >= 0; i-- {
		workout := history[i]
		var volume float64
		for _, ex := range workout.Exercises {
			for _, set := range ex.Sets {
				volume += set.Volume()
			}
		}
		points = append(points, models.VolumePoint{
			Date:    workout.Date,
			DayName: workout.DayName,
			Volume:  volume,
			Week:    workout.Week,
		})
	}
	return points
}
