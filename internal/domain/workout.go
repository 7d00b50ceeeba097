package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common workout validation errors
var (
	ErrEmptyWorkoutID   = errors.New("workout ID cannot be empty")
	ErrEmptyWorkoutName = errors.New("workout name cannot be empty")
	ErrEmptyWorkoutUser = errors.New("workout user cannot be empty")
)

// Workout is an ordered collection of exercises owned by one user, with
// a completed flag and a creation timestamp. Progress rows referencing a
// workout never outlive it; the workout service enforces the cascade.
type Workout struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Name      string      `json:"name"`
	Completed bool        `json:"completed"`
	CreatedAt time.Time   `json:"created_at"`
	Exercises []*Exercise `json:"exercises,omitempty"` // populated on demand, not by every store read
}

// NewWorkout creates a new Workout for the given user.
func NewWorkout(userID uuid.UUID, name string, completed bool) (*Workout, error) {
	workout := &Workout{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Completed: completed,
		CreatedAt: time.Now().UTC(),
	}

	if err := workout.Validate(); err != nil {
		return nil, err
	}

	return workout, nil
}

// Validate checks if the Workout has valid data.
func (w *Workout) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWorkoutID
	}
	if w.UserID == uuid.Nil {
		return ErrEmptyWorkoutUser
	}
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyWorkoutName
	}
	return nil
}
