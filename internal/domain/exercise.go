package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common exercise validation errors
var (
	ErrEmptyExerciseID       = errors.New("exercise ID cannot be empty")
	ErrEmptyExerciseName     = errors.New("exercise name cannot be empty")
	ErrEmptyExerciseCategory = errors.New("exercise category cannot be empty")
	ErrNonPositiveSets       = errors.New("sets must be greater than zero")
	ErrNonPositiveReps       = errors.New("reps must be greater than zero")
)

// Exercise belongs to exactly one Category and carries prescribed sets
// and reps plus display metadata. Catalog exercises have a nil WorkoutID;
// once attached to a workout they reference it so that per-workout copies
// can evolve their sets/reps independently of the catalog.
type Exercise struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	WorkoutID   *uuid.UUID `json:"workout_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	GifURL      string     `json:"gif_url,omitempty"`
	Sets        int        `json:"sets"`
	Reps        int        `json:"reps"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewExercise creates a new catalog Exercise in the given category.
func NewExercise(categoryID uuid.UUID, name, description, gifURL string, sets, reps int) (*Exercise, error) {
	exercise := &Exercise{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		GifURL:      gifURL,
		Sets:        sets,
		Reps:        reps,
		CreatedAt:   time.Now().UTC(),
	}

	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	return exercise, nil
}

// Clone returns a copy of the exercise with a fresh identity. The copy
// keeps name, description, media and prescription but no workout
// attachment; callers attach it to the new workout explicitly.
func (e *Exercise) Clone() *Exercise {
	return &Exercise{
		ID:          uuid.New(),
		CategoryID:  e.CategoryID,
		Name:        e.Name,
		Description: e.Description,
		GifURL:      e.GifURL,
		Sets:        e.Sets,
		Reps:        e.Reps,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks if the Exercise has valid data.
func (e *Exercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyExerciseID
	}
	if e.CategoryID == uuid.Nil {
		return ErrEmptyExerciseCategory
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyExerciseName
	}
	if e.Sets <= 0 {
		return ErrNonPositiveSets
	}
	if e.Reps <= 0 {
		return ErrNonPositiveReps
	}
	return nil
}
