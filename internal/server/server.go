package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers. All state flows through the
// application store; handlers never touch the gateway directly.
type Server struct {
	store  *store.Store
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(st *store.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  st,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/week", s.handleGetWeek)
	s.router.Get("/api/v1/program", s.handleGetProgram)
	s.router.Get("/api/v1/session", s.handleGetSession)
	s.router.Get("/api/v1/workouts", s.handleWorkoutHistory)
	s.router.Get("/api/v1/stats/big3", s.handleBig3)
	s.router.Get("/api/v1/stats/records", s.handlePersonalRecords)
	s.router.Get("/api/v1/stats/volume", s.handleVolumeTrend)
	s.router.Get("/api/v1/stats/exercise", s.handleExerciseHistory)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/export", s.handleExport)
	s.router.Get("/api/v1/settings/theme", s.handleGetTheme)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Put("/api/v1/week", s.handleSetWeek)
		r.Put("/api/v1/settings/theme", s.handleSetTheme)
		r.Post("/api/v1/program", s.handleSaveProgram)
		r.Put("/api/v1/program", s.handleUpdateProgram)
		r.Post("/api/v1/session/start", s.handleStartSession)
		r.Post("/api/v1/session/sets", s.handleAddSet)
		r.Patch("/api/v1/session/sets", s.handleUpdateSet)
		r.Delete("/api/v1/session/sets", s.handleRemoveSet)
		r.Post("/api/v1/session/sets/toggle", s.handleToggleSet)
		r.Post("/api/v1/session/finish", s.handleFinishSession)
		r.Post("/api/v1/session/cancel", s.handleCancelSession)
		r.Post("/api/v1/session/rest", s.handleStartRest)
		r.Delete("/api/v1/session/rest", s.handleStopRest)
		r.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/api/v1/exercises", s.handleAddExercise)
		r.Delete("/api/v1/exercises/{id}", s.handleDeleteExercise)
	})
}
