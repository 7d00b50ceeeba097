package api

import (
	"net/http"

	"github.com/bdimitrov/fittrack-api/internal/api/shared"
	"github.com/bdimitrov/fittrack-api/internal/service"
)

// StatsHandler serves the progress metrics endpoints.
type StatsHandler struct {
	progress   service.ProgressService
	categories service.CategoryService
}

// NewStatsHandler creates a new StatsHandler with the given dependencies.
func NewStatsHandler(progress service.ProgressService, categories service.CategoryService) *StatsHandler {
	return &StatsHandler{
		progress:   progress,
		categories: categories,
	}
}

// Stats handles GET /stats, aggregating the user's training metrics.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	total, err := h.progress.TotalWorkouts(ctx, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute workout totals")
		return
	}
	monthly, err := h.progress.MonthlyWorkoutCount(ctx, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute monthly workouts")
		return
	}
	current, err := h.progress.CurrentStreak(ctx, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute current streak")
		return
	}
	longest, err := h.progress.LongestStreak(ctx, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute longest streak")
		return
	}
	weeklySets, err := h.progress.SetsDoneThisWeek(ctx, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute weekly sets")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		TotalWorkouts:   total,
		MonthlyWorkouts: monthly,
		CurrentStreak:   current,
		LongestStreak:   longest,
		SetsThisWeek:    weeklySets,
	})
}

// LastWorkout handles GET /stats/last-workout.
func (h *StatsHandler) LastWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.progress.LastWorkoutSummary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load last workout")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LastWorkoutResponse{
		Date:          summary.Date,
		MuscleGroup:   summary.MuscleGroup,
		ExerciseNames: summary.ExerciseNames,
	})
}

// NextMuscleGroup handles GET /stats/next-muscle-group.
func (h *StatsHandler) NextMuscleGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.NextMuscleGroup(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCategoryResponse(category))
}
