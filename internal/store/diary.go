package store

import (
	"context"
	"database/sql"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/google/uuid"
)

// DiaryStore defines the interface for diary entry persistence.
type DiaryStore interface {
	// Create saves a new diary entry.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, diary *domain.Diary) error

	// GetByID retrieves a diary entry by its unique ID.
	// Returns ErrDiaryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error)

	// ListByUser retrieves all of a user's diary entries ordered by
	// entry date, newest first. Returns an empty slice for a user with
	// no entries.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diary, error)

	// Update replaces the entry date, content, photo URL, and updated-at
	// timestamp of an existing entry.
	// Returns ErrDiaryNotFound if the entry does not exist.
	Update(ctx context.Context, diary *domain.Diary) error

	// Delete removes a diary entry.
	// Returns ErrDiaryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DiaryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) DiaryStore
}
