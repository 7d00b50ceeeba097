package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of
// the ProgressStore interface.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProgressStore.Create
// Returns store.ErrInvalidEntity if the user or workout does not exist.
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	query := `
		INSERT INTO progress (id, user_id, workout_id, exercise_id, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.WorkoutID,
		progress.ExerciseID,
		progress.Timestamp,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during progress creation",
				slog.String("progress_id", progress.ID.String()),
				slog.String("constraint", pgErr.ConstraintName))
			return fmt.Errorf("%w: referenced user or workout not found",
				store.ErrInvalidEntity)
		}

		log.Error("failed to create progress entry",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return MapError(err)
	}

	log.Debug("progress entry created",
		slog.String("progress_id", progress.ID.String()),
		slog.String("user_id", progress.UserID.String()),
		slog.String("workout_id", progress.WorkoutID.String()))
	return nil
}

// FindByUser implements store.ProgressStore.FindByUser
// Rows are ordered by timestamp descending.
func (s *PostgresProgressStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Progress, error) {
	query := `
		SELECT id, user_id, workout_id, exercise_id, recorded_at
		FROM progress
		WHERE user_id = $1
		ORDER BY recorded_at DESC
	`
	return s.scanMany(ctx, query, userID)
}

// FindRecentByUser implements store.ProgressStore.FindRecentByUser
func (s *PostgresProgressStore) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Progress, error) {
	query := `
		SELECT id, user_id, workout_id, exercise_id, recorded_at
		FROM progress
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`
	return s.scanMany(ctx, query, userID, limit)
}

// DeleteByWorkoutID implements store.ProgressStore.DeleteByWorkoutID
// Deleting zero rows is not an error.
func (s *PostgresProgressStore) DeleteByWorkoutID(ctx context.Context, workoutID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM progress
		WHERE workout_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, workoutID)
	if err != nil {
		log.Error("failed to delete progress by workout",
			slog.String("error", err.Error()),
			slog.String("workout_id", workoutID.String()))
		return MapError(err)
	}

	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Debug("progress entries deleted",
			slog.String("workout_id", workoutID.String()),
			slog.Int64("count", rowsAffected))
	}
	return nil
}

func (s *PostgresProgressStore) scanMany(ctx context.Context, query string, args ...any) ([]*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query progress entries", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*domain.Progress, 0)
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.WorkoutID, &p.ExerciseID, &p.Timestamp); err != nil {
			log.Error("failed to scan progress row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		entries = append(entries, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}
