package store

import (
	"context"
	"database/sql"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/google/uuid"
)

// ProgressStore defines the interface for the append-only progress log.
// Progress rows are only ever created or bulk-deleted by workout id;
// there is no update operation.
type ProgressStore interface {
	// Create appends a progress entry.
	// Returns ErrInvalidEntity if the referenced user or workout does
	// not exist.
	Create(ctx context.Context, progress *domain.Progress) error

	// FindByUser retrieves all progress entries for a user, ordered by
	// timestamp descending. Returns an empty slice for users without
	// history.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error)

	// FindRecentByUser retrieves the most recent entries for a user,
	// ordered by timestamp descending and capped at limit.
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Progress, error)

	// DeleteByWorkoutID removes every progress entry referencing the
	// workout. Deleting zero rows is not an error; the cascade must be
	// idempotent.
	DeleteByWorkoutID(ctx context.Context, workoutID uuid.UUID) error

	// WithTx returns a new ProgressStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
