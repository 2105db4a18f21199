package mcp

import (
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

// DataSource abstracts the application state for MCP tools. The Store
// satisfies it directly; tools never reach past it to the gateway.
type DataSource interface {
	Program() *models.Program
	CurrentWeek() int
	WorkoutHistory() []models.WorkoutEntry
	ExerciseLibrary() []models.Exercise
	GetExerciseHistory(name string) []models.ExerciseSession
	GetBig3Stats() models.BigThree
	GetAllPersonalRecords() []models.PersonalRecord
	GetVolumeTrend(limit int) []models.VolumePoint
}

// Compile-time check: *store.Store satisfies DataSource.
var _ DataSource = (*store.Store)(nil)
