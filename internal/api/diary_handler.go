package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bdimitrov/fittrack-api/internal/api/shared"
	"github.com/bdimitrov/fittrack-api/internal/service"
)

// DiaryHandler handles the diary entry CRUD endpoints.
type DiaryHandler struct {
	diaries   service.DiaryService
	validator *validator.Validate
}

// NewDiaryHandler creates a new DiaryHandler with the given dependencies.
func NewDiaryHandler(diaries service.DiaryService) *DiaryHandler {
	return &DiaryHandler{
		diaries:   diaries,
		validator: validator.New(),
	}
}

// CreateDiary handles POST /diaries.
func (h *DiaryHandler) CreateDiary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req DiaryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	diary, err := h.diaries.CreateDiary(r.Context(), userID, req.EntryDate, req.Content, req.PhotoURL)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toDiaryResponse(diary))
}

// GetDiary handles GET /diaries/{id}.
func (h *DiaryHandler) GetDiary(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	diaryID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	diary, err := h.diaries.GetDiary(r.Context(), diaryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toDiaryResponse(diary))
}

// ListDiaries handles GET /diaries, returning the authenticated user's
// entries as summaries ordered by entry date, newest first.
func (h *DiaryHandler) ListDiaries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	diaries, err := h.diaries.ListDiaries(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load diary entries")
		return
	}

	summaries := make([]DiarySummaryResponse, 0, len(diaries))
	for _, d := range diaries {
		summaries = append(summaries, toDiarySummaryResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// UpdateDiary handles PUT /diaries/{id}.
func (h *DiaryHandler) UpdateDiary(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	diaryID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req DiaryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	diary, err := h.diaries.UpdateDiary(r.Context(), diaryID, req.EntryDate, req.Content, req.PhotoURL)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toDiaryResponse(diary))
}

// DeleteDiary handles DELETE /diaries/{id}.
func (h *DiaryHandler) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	diaryID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.diaries.DeleteDiary(r.Context(), diaryID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
