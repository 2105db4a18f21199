package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
)

// --- Week ---

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"week": s.store.CurrentWeek()})
}

func (s *Server) handleSetWeek(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Week int `json:"week"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.SetWeek(r.Context(), body.Week); err != nil {
		s.log.Error("set week error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"week": s.store.CurrentWeek()})
}

// --- Settings ---

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"theme": s.store.Theme()})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.SetTheme(r.Context(), body.Theme); err != nil {
		if errors.Is(err, store.ErrInvalidTheme) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("set theme error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": s.store.Theme()})
}

// --- Program ---

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	p := s.store.Program()
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no program loaded"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSaveProgram(w http.ResponseWriter, r *http.Request) {
	var data models.ProgramData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if data.Name == "" || len(data.Days) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "program needs a name and at least one day"})
		return
	}
	if err := s.store.UpdateProgram(r.Context(), data); err != nil {
		s.log.Error("save program error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Program())
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	// Program edits run through the builder draft so identity survives.
	var data models.ProgramData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.EditProgram(); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err := s.applyProgramEdit(data); err != nil {
		s.store.ResetBuilder()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.store.SaveCurrentProgram(r.Context()); err != nil {
		s.store.ResetBuilder()
		s.log.Error("update program error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Program())
}

// applyProgramEdit rewrites the seeded draft with the submitted name and
// days, keeping the source program ID intact. Submitted days keep the IDs
// they carry, so reordering never reassigns identities; an ID-less day
// inherits the draft day ID at its position only when no submitted day
// claims it, and otherwise gets a fresh ID on save.
func (s *Server) applyProgramEdit(data models.ProgramData) error {
	if data.Name == "" || len(data.Days) == 0 {
		return fmt.Errorf("program needs a name and at least one day")
	}

	draft := s.store.Builder()
	claimed := make(map[string]bool, len(data.Days))
	for _, day := range data.Days {
		if day.ID != "" {
			claimed[day.ID] = true
		}
	}

	days := make([]models.ProgramDay, len(data.Days))
	copy(days, data.Days)
	for i := range days {
		if days[i].ID == "" && i < len(draft.Days) && !claimed[draft.Days[i].ID] {
			days[i].ID = draft.Days[i].ID
		}
	}
	return s.store.SetBuilderDays(data.Name, days)
}

// --- Active session ---

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	active := s.store.ActiveWorkout()
	writeJSON(w, http.StatusOK, map[string]any{
		"active":         active,
		"rest_remaining": s.store.RestRemaining(),
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DayID string `json:"day_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.StartWorkout(r.Context(), body.DayID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.ActiveWorkout())
}

// setRef addresses a set within the live session.
type setRef struct {
	ExerciseIndex int `json:"exercise_index"`
	SetIndex      int `json:"set_index"`
}

func setMutationStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNoActiveWorkout):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ExerciseIndex int     `json:"exercise_index"`
		Weight        float64 `json:"weight"`
		Reps          int     `json:"reps"`
		RPE           float64 `json:"rpe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.AddSet(body.ExerciseIndex, body.Weight, body.Reps, body.RPE); err != nil {
		writeJSON(w, setMutationStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.ActiveWorkout())
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		setRef
		Field string  `json:"field"`
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.UpdateWorkoutSet(body.ExerciseIndex, body.SetIndex, body.Field, body.Value); err != nil {
		writeJSON(w, setMutationStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.ActiveWorkout())
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	var body setRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.RemoveWorkoutSet(body.ExerciseIndex, body.SetIndex); err != nil {
		writeJSON(w, setMutationStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.ActiveWorkout())
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	var body setRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.store.ToggleWorkoutSetCompleted(body.ExerciseIndex, body.SetIndex); err != nil {
		writeJSON(w, setMutationStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.ActiveWorkout())
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.FinishWorkout(r.Context()); err != nil {
		s.log.Error("finish workout error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.store.CancelWorkout()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartRest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds int `json:"seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.store.StartRestTimer(body.Seconds)
	writeJSON(w, http.StatusOK, map[string]int{"rest_remaining": s.store.RestRemaining()})
}

func (s *Server) handleStopRest(w http.ResponseWriter, r *http.Request) {
	s.store.StopRestTimer()
	writeJSON(w, http.StatusOK, map[string]int{"rest_remaining": 0})
}

// --- History ---

func (s *Server) handleWorkoutHistory(w http.ResponseWriter, r *http.Request) {
	history := s.store.WorkoutHistory()
	if limit := queryInt(r, "limit"); limit > 0 && limit < len(history) {
		history = history[:limit]
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteWorkoutEntry(r.Context(), id); err != nil {
		s.log.Error("delete workout error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Stats ---

func (s *Server) handleBig3(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetBig3Stats())
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetAllPersonalRecords())
}

func (s *Server) handleVolumeTrend(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	if limit <= 0 {
		limit = stats.DefaultVolumeTrendLimit
	}
	writeJSON(w, http.StatusOK, s.store.GetVolumeTrend(limit))
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}
	writeJSON(w, http.StatusOK, s.store.GetExerciseHistory(name))
}

// --- Exercise catalog ---

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	library := s.store.ExerciseLibrary()
	if category := r.URL.Query().Get("category"); category != "" {
		library = models.FilterExercisesByCategory(library, category)
	}
	if term := r.URL.Query().Get("q"); term != "" {
		library = models.SearchExercises(library, term)
	}
	writeJSON(w, http.StatusOK, library)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ex.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise name required"})
		return
	}
	saved, err := s.store.AddCustomExercise(r.Context(), ex)
	if err != nil {
		s.log.Error("add exercise error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteCustomExercise(r.Context(), id); err != nil {
		s.log.Error("delete exercise error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Export ---

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseExportFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	history := s.store.WorkoutHistory()

	switch format := r.URL.Query().Get("format"); format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="liftlog-export.csv"`)
		if err := export.WriteCSV(w, history, filter); err != nil {
			s.log.Error("csv export error", "error", err)
		}
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="liftlog-export.json"`)
		if err := export.WriteJSON(w, history, filter); err != nil {
			s.log.Error("json export error", "error", err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be json or csv"})
	}
}

func parseExportFilter(r *http.Request) (export.Filter, error) {
	var f export.Filter
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid from date %q", v)
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid to date %q", v)
		}
		f.To = t
	}
	f.Exercise = q.Get("exercise")
	return f, nil
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
