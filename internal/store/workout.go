package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/google/uuid"
)

// WorkoutStore defines the interface for workout data persistence.
type WorkoutStore interface {
	// Create saves a new workout.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, workout *domain.Workout) error

	// GetByID retrieves a workout by its unique ID. Attached exercises
	// are not populated; use ExerciseStore.FindByWorkoutID for those.
	// Returns ErrWorkoutNotFound if the workout does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error)

	// MarkCompleted sets the completed flag. The transition is
	// idempotent: marking an already-completed workout succeeds.
	// Returns ErrWorkoutNotFound if the workout does not exist.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	// Delete removes a workout.
	// Returns ErrWorkoutNotFound if the workout does not exist, including
	// when it was already deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindCreatedBefore retrieves all workouts created strictly before
	// the cutoff. Used by the cleanup sweep.
	FindCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Workout, error)

	// WithTx returns a new WorkoutStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) WorkoutStore
}
