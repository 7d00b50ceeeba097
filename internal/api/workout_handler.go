package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bdimitrov/fittrack-api/internal/api/shared"
	"github.com/bdimitrov/fittrack-api/internal/service"
	"github.com/bdimitrov/fittrack-api/internal/session"
)

// WorkoutHandler handles the selection, session and workout lifecycle
// endpoints.
type WorkoutHandler struct {
	workouts  service.WorkoutService
	selector  *session.Selector
	validator *validator.Validate
}

// NewWorkoutHandler creates a new WorkoutHandler with the given dependencies.
func NewWorkoutHandler(workouts service.WorkoutService, selector *session.Selector) *WorkoutHandler {
	return &WorkoutHandler{
		workouts:  workouts,
		selector:  selector,
		validator: validator.New(),
	}
}

// StoreSelection handles POST /workout/selection. An empty selection is
// rejected; the stored selection replaces any previous one.
func (h *WorkoutHandler) StoreSelection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SelectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		HandleAPIError(w, r, service.ErrInvalidSelection, "")
		return
	}

	h.selector.StoreSelection(userID, req.ExerciseIDs)
	shared.RespondWithJSON(w, r, http.StatusOK, SelectionResponse{ExerciseIDs: req.ExerciseIDs})
}

// GetSelection handles GET /workout/selection.
func (h *WorkoutHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SelectionResponse{
		ExerciseIDs: h.selector.GetSelection(userID),
	})
}

// StartSession handles POST /workout/session. Starting while a session
// is active silently replaces it with a fresh id.
func (h *WorkoutHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sessionID := h.selector.StartSession(userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{SessionID: sessionID})
}

// CreateWorkout handles POST /workouts. The exercise list falls back to
// the user's stored selection; the selection is cleared only after a
// successful save.
func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	exerciseIDs := req.ExerciseIDs
	if len(exerciseIDs) == 0 {
		exerciseIDs = h.selector.GetSelection(userID)
	}
	if len(exerciseIDs) == 0 {
		HandleAPIError(w, r, service.ErrInvalidSelection, "")
		return
	}

	workout, err := h.workouts.CreateWorkout(r.Context(), req.Name, userID, exerciseIDs, req.Completed)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.selector.ClearSelection(userID)
	shared.RespondWithJSON(w, r, http.StatusCreated, toWorkoutResponse(workout))
}

// Complete handles POST /workouts/{id}/complete. It marks the workout
// completed and records a workout-level progress entry.
func (h *WorkoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.workouts.MarkCompleted(r.Context(), workoutID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	progress, err := h.workouts.RecordCompletion(r.Context(), userID, workoutID, nil)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toProgressResponse(progress))
}

// Repeat handles POST /workouts/{id}/repeat.
func (h *WorkoutHandler) Repeat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	clone, err := h.workouts.RepeatWorkout(r.Context(), workoutID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toWorkoutResponse(clone))
}

// Delete handles DELETE /workouts/{id}. The workout's progress rows go
// with it.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	workoutID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.workouts.DeleteWorkoutAndProgress(r.Context(), workoutID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateExercises handles PUT /exercises, the batch sets/reps update.
// The batch is all-or-nothing.
func (h *WorkoutHandler) UpdateExercises(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req UpdateExercisesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	updates := make([]service.ExercisePrescription, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, service.ExercisePrescription{
			ExerciseID: u.ExerciseID,
			Sets:       u.Sets,
			Reps:       u.Reps,
		})
	}

	if err := h.workouts.UpdateExerciseSetsReps(r.Context(), updates); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordProgress handles POST /progress. ExerciseID is optional; an
// unknown exercise id is recorded as a workout-level completion.
func (h *WorkoutHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RecordProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	progress, err := h.workouts.RecordCompletion(r.Context(), userID, req.WorkoutID, req.ExerciseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toProgressResponse(progress))
}
