package store

import (
	"context"
	"database/sql"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/google/uuid"
)

// ExerciseStore defines the interface for exercise data persistence.
type ExerciseStore interface {
	// Create saves a new exercise.
	// Returns ErrInvalidEntity if the category does not exist.
	Create(ctx context.Context, exercise *domain.Exercise) error

	// GetByID retrieves an exercise by its unique ID.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)

	// GetByIDs retrieves the exercises matching the given ids. Unknown
	// ids are omitted from the result, not reported as errors; callers
	// relying on completeness must compare lengths themselves.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Exercise, error)

	// ListByCategory retrieves all catalog exercises in the given
	// category (exercises not yet attached to any workout).
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Exercise, error)

	// FindByWorkoutID retrieves all exercises attached to a workout.
	FindByWorkoutID(ctx context.Context, workoutID uuid.UUID) ([]*domain.Exercise, error)

	// CountByWorkoutID returns the number of exercises attached to a workout.
	CountByWorkoutID(ctx context.Context, workoutID uuid.UUID) (int, error)

	// UpdateSetsReps updates the prescription of a single exercise.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	UpdateSetsReps(ctx context.Context, id uuid.UUID, sets, reps int) error

	// AttachToWorkout sets the workout backreference of an exercise.
	// Returns ErrExerciseNotFound if the exercise does not exist.
	AttachToWorkout(ctx context.Context, exerciseID, workoutID uuid.UUID) error

	// DetachFromWorkout clears the workout backreference of every
	// exercise attached to the given workout. Severing the references
	// before deleting the workout keeps exercises free of dangling rows.
	DetachFromWorkout(ctx context.Context, workoutID uuid.UUID) error

	// WithTx returns a new ExerciseStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ExerciseStore
}
