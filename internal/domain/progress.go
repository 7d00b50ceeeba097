package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common progress validation errors
var (
	ErrEmptyProgressID      = errors.New("progress ID cannot be empty")
	ErrEmptyProgressUser    = errors.New("progress user cannot be empty")
	ErrEmptyProgressWorkout = errors.New("progress workout cannot be empty")
	ErrZeroProgressTime     = errors.New("progress timestamp cannot be zero")
)

// Progress is one timestamped record of a user completing all or part of
// a workout. ExerciseID is optional: a workout-level completion carries
// no exercise reference. Progress rows form an append-only log; they are
// only ever created or bulk-deleted by workout id.
type Progress struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	WorkoutID  uuid.UUID  `json:"workout_id"`
	ExerciseID *uuid.UUID `json:"exercise_id,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// NewProgress creates a new Progress entry at the given timestamp.
// exerciseID may be nil for workout-level completions.
func NewProgress(userID, workoutID uuid.UUID, exerciseID *uuid.UUID, timestamp time.Time) (*Progress, error) {
	progress := &Progress{
		ID:         uuid.New(),
		UserID:     userID,
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Timestamp:  timestamp,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the Progress entry has valid data.
func (p *Progress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProgressID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUser
	}
	if p.WorkoutID == uuid.Nil {
		return ErrEmptyProgressWorkout
	}
	if p.Timestamp.IsZero() {
		return ErrZeroProgressTime
	}
	return nil
}

// Date returns the calendar date of the entry in UTC. Streak math
// collapses multiple entries on the same date to one.
func (p *Progress) Date() time.Time {
	return p.Timestamp.UTC().Truncate(24 * time.Hour)
}
