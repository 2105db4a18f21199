package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Retrieve completed workouts, newest first. Each entry includes the day name, training week, and every logged set (weight, reps, RPE, completed)."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts to return. Defaults to all.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Per-workout set history for one exercise, newest first. Matching is exact on the exercise name."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Back Squat')")),
)

var toolGetBig3Summary = mcp.NewTool("get_big3_summary",
	mcp.WithDescription("Summary for the three competition lifts (Back Squat, Barbell Bench Press, Conventional Deadlift): heaviest weight lifted, estimated 1RM (Brzycki), and session count."),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Per-exercise personal records: max weight, max reps, max single-set volume, and best estimated 1RM, each with the date it was set. Sorted by max weight descending."),
)

var toolGetVolumeTrend = mcp.NewTool("get_volume_trend",
	mcp.WithDescription("Total volume (weight x reps summed over all sets) per workout for the most recent workouts, in chronological order."),
	mcp.WithNumber("limit", mcp.Description("Number of recent workouts to include. Defaults to 10.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog (built-in plus custom entries) with category, equipment, and compound flag."),
	mcp.WithString("category", mcp.Description("Filter by category (e.g. 'legs', 'chest', 'back')")),
	mcp.WithString("q", mcp.Description("Case-insensitive substring match on the exercise name")),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history := h.ds.WorkoutHistory()
	if limit := req.GetInt("limit", 0); limit > 0 && limit < len(history) {
		history = history[:limit]
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(h.ds.GetExerciseHistory(exercise))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBig3Summary(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ds.GetBig3Stats())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ds.GetAllPersonalRecords())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeTrend(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", stats.DefaultVolumeTrendLimit)

	result, err := mcp.NewToolResultJSON(h.ds.GetVolumeTrend(limit))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	library := h.ds.ExerciseLibrary()
	if category := req.GetString("category", ""); category != "" {
		library = models.FilterExercisesByCategory(library, category)
	}
	if term := req.GetString("q", ""); term != "" {
		library = models.SearchExercises(library, term)
	}

	result, err := mcp.NewToolResultJSON(library)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
