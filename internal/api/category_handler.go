package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bdimitrov/fittrack-api/internal/api/shared"
	"github.com/bdimitrov/fittrack-api/internal/service"
)

// CategoryHandler serves the muscle-group catalog.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Exercises handles GET /categories/{name}/exercises. An unknown
// category name yields an empty list, not a 404.
func (h *CategoryHandler) Exercises(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing category name")
		return
	}

	exercises, err := h.categories.ExercisesByCategory(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list exercises")
		return
	}

	resp := make([]ExerciseResponse, 0, len(exercises))
	for _, ex := range exercises {
		resp = append(resp, toExerciseResponse(ex))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
