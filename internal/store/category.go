package store

import (
	"context"
	"database/sql"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/google/uuid"
)

// CategoryStore defines the interface for category data persistence.
// Categories are seeded externally and read-only to the workout core.
type CategoryStore interface {
	// Create saves a new category.
	// Returns ErrCategoryExists if the name is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByName retrieves a category by its unique name.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List retrieves all categories ordered by name. The ordering is the
	// stable enumeration used for next-muscle-group tie-breaking.
	List(ctx context.Context) ([]*domain.Category, error)

	// WithTx returns a new CategoryStore instance that uses the provided
	// transaction for all operations.
	WithTx(tx *sql.Tx) CategoryStore
}
