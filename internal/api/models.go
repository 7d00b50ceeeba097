package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/domain"
)

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the response for successful authentication.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// SelectionRequest defines the payload for storing an exercise selection.
type SelectionRequest struct {
	ExerciseIDs []uuid.UUID `json:"exercise_ids" validate:"required,min=1"`
}

// SelectionResponse returns the user's current exercise selection.
type SelectionResponse struct {
	ExerciseIDs []uuid.UUID `json:"exercise_ids"`
}

// SessionResponse returns the opaque id of a freshly started session.
type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

// CreateWorkoutRequest defines the payload for saving a workout. When
// ExerciseIDs is empty the user's stored selection is used.
type CreateWorkoutRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=100"`
	ExerciseIDs []uuid.UUID `json:"exercise_ids,omitempty"`
	Completed   bool        `json:"completed"`
}

// ExerciseUpdate is one entry of a batch prescription update.
type ExerciseUpdate struct {
	ExerciseID uuid.UUID `json:"exercise_id" validate:"required"`
	Sets       int       `json:"sets"        validate:"required,gt=0"`
	Reps       int       `json:"reps"        validate:"required,gt=0"`
}

// UpdateExercisesRequest defines the payload for a batch sets/reps update.
type UpdateExercisesRequest struct {
	Updates []ExerciseUpdate `json:"updates" validate:"required,min=1,dive"`
}

// RecordProgressRequest defines the payload for recording a completion.
type RecordProgressRequest struct {
	WorkoutID  uuid.UUID  `json:"workout_id" validate:"required"`
	ExerciseID *uuid.UUID `json:"exercise_id,omitempty"`
}

// ExerciseResponse is the client representation of an exercise.
type ExerciseResponse struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	GifURL      string    `json:"gif_url,omitempty"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
}

// WorkoutResponse is the client representation of a workout.
type WorkoutResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Name      string             `json:"name"`
	Completed bool               `json:"completed"`
	CreatedAt time.Time          `json:"created_at"`
	Exercises []ExerciseResponse `json:"exercises"`
}

// CategoryResponse is the client representation of a category.
type CategoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
}

// ProgressResponse is the client representation of a progress entry.
type ProgressResponse struct {
	ID         uuid.UUID  `json:"id"`
	WorkoutID  uuid.UUID  `json:"workout_id"`
	ExerciseID *uuid.UUID `json:"exercise_id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// StatsResponse aggregates the user's training metrics.
type StatsResponse struct {
	TotalWorkouts   int `json:"total_workouts"`
	MonthlyWorkouts int `json:"monthly_workouts"`
	CurrentStreak   int `json:"current_streak"`
	LongestStreak   int `json:"longest_streak"`
	SetsThisWeek    int `json:"sets_this_week"`
}

// NotificationPreferenceResponse is the client view of a delivery
// preference held by the notification service.
type NotificationPreferenceResponse struct {
	Enabled     bool   `json:"enabled"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// UpdatePreferenceRequest defines the payload for toggling delivery.
type UpdatePreferenceRequest struct {
	Enabled bool `json:"enabled"`
}

// NotificationHistoryEntry is one previously delivered notification.
type NotificationHistoryEntry struct {
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
}

// DiaryRequest defines the payload for creating or updating a diary
// entry. Content and the photo URL are optional.
type DiaryRequest struct {
	EntryDate time.Time `json:"entry_date" validate:"required"`
	Content   string    `json:"content"    validate:"max=10000"`
	PhotoURL  string    `json:"photo_url"  validate:"omitempty,url,max=2048"`
}

// DiaryResponse is the client representation of a full diary entry.
type DiaryResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EntryDate time.Time `json:"entry_date"`
	Content   string    `json:"content"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiarySummaryResponse is the trimmed list representation of an entry.
type DiarySummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	EntryDate time.Time `json:"entry_date"`
	PhotoURL  string    `json:"photo_url,omitempty"`
}

// LastWorkoutResponse describes the user's most recent workout.
type LastWorkoutResponse struct {
	Date          string   `json:"date"`
	MuscleGroup   string   `json:"muscle_group"`
	ExerciseNames []string `json:"exercise_names"`
}

func toExerciseResponse(ex *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          ex.ID,
		CategoryID:  ex.CategoryID,
		Name:        ex.Name,
		Description: ex.Description,
		GifURL:      ex.GifURL,
		Sets:        ex.Sets,
		Reps:        ex.Reps,
	}
}

func toWorkoutResponse(w *domain.Workout) WorkoutResponse {
	exercises := make([]ExerciseResponse, 0, len(w.Exercises))
	for _, ex := range w.Exercises {
		exercises = append(exercises, toExerciseResponse(ex))
	}
	return WorkoutResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Name:      w.Name,
		Completed: w.Completed,
		CreatedAt: w.CreatedAt,
		Exercises: exercises,
	}
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		ImageURL: c.ImageURL,
	}
}

func toDiaryResponse(d *domain.Diary) DiaryResponse {
	return DiaryResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		EntryDate: d.EntryDate,
		Content:   d.Content,
		PhotoURL:  d.PhotoURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDiarySummaryResponse(d *domain.Diary) DiarySummaryResponse {
	return DiarySummaryResponse{
		ID:        d.ID,
		EntryDate: d.EntryDate,
		PhotoURL:  d.PhotoURL,
	}
}

func toProgressResponse(p *domain.Progress) ProgressResponse {
	return ProgressResponse{
		ID:         p.ID,
		WorkoutID:  p.WorkoutID,
		ExerciseID: p.ExerciseID,
		Timestamp:  p.Timestamp,
	}
}
