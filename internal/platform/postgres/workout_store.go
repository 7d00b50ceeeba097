package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// PostgresWorkoutStore implements the store.WorkoutStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWorkoutStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWorkoutStore creates a new PostgreSQL implementation of
// the WorkoutStore interface.
func NewPostgresWorkoutStore(db store.DBTX, logger *slog.Logger) *PostgresWorkoutStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWorkoutStore{
		db:     db,
		logger: logger.With(slog.String("component", "workout_store")),
	}
}

// Ensure PostgresWorkoutStore implements store.WorkoutStore interface
var _ store.WorkoutStore = (*PostgresWorkoutStore)(nil)

// WithTx implements store.WorkoutStore.WithTx
func (s *PostgresWorkoutStore) WithTx(tx *sql.Tx) store.WorkoutStore {
	return &PostgresWorkoutStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.WorkoutStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresWorkoutStore) Create(ctx context.Context, workout *domain.Workout) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := workout.Validate(); err != nil {
		log.Warn("workout validation failed during create",
			slog.String("error", err.Error()),
			slog.String("workout_id", workout.ID.String()))
		return err
	}

	query := `
		INSERT INTO workouts (id, user_id, name, completed, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.Completed,
		workout.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during workout creation",
				slog.String("workout_id", workout.ID.String()),
				slog.String("user_id", workout.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, workout.UserID)
		}

		log.Error("failed to create workout",
			slog.String("error", err.Error()),
			slog.String("workout_id", workout.ID.String()))
		return MapError(err)
	}

	log.Info("workout created successfully",
		slog.String("workout_id", workout.ID.String()),
		slog.String("user_id", workout.UserID.String()))
	return nil
}

// GetByID implements store.WorkoutStore.GetByID
// Returns store.ErrWorkoutNotFound if the workout does not exist.
func (s *PostgresWorkoutStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workout, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, completed, created_at
		FROM workouts
		WHERE id = $1
	`

	var w domain.Workout
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.Completed,
		&w.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("workout not found", slog.String("workout_id", id.String()))
			return nil, store.ErrWorkoutNotFound
		}
		log.Error("failed to get workout by ID",
			slog.String("error", err.Error()),
			slog.String("workout_id", id.String()))
		return nil, MapError(err)
	}

	return &w, nil
}

// MarkCompleted implements store.WorkoutStore.MarkCompleted
// Idempotent: marking an already-completed workout succeeds.
// Returns store.ErrWorkoutNotFound if the workout does not exist.
func (s *PostgresWorkoutStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE workouts
		SET completed = TRUE
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to mark workout completed",
			slog.String("error", err.Error()),
			slog.String("workout_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrWorkoutNotFound
	}

	log.Debug("workout marked completed", slog.String("workout_id", id.String()))
	return nil
}

// Delete implements store.WorkoutStore.Delete
// Returns store.ErrWorkoutNotFound if the workout does not exist.
func (s *PostgresWorkoutStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM workouts
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete workout",
			slog.String("error", err.Error()),
			slog.String("workout_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("workout not found for delete", slog.String("workout_id", id.String()))
		return store.ErrWorkoutNotFound
	}

	log.Info("workout deleted", slog.String("workout_id", id.String()))
	return nil
}

// FindCreatedBefore implements store.WorkoutStore.FindCreatedBefore
func (s *PostgresWorkoutStore) FindCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Workout, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, completed, created_at
		FROM workouts
		WHERE created_at < $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		log.Error("failed to find workouts before cutoff",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	workouts := make([]*domain.Workout, 0)
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Completed, &w.CreatedAt); err != nil {
			log.Error("failed to scan workout row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		workouts = append(workouts, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return workouts, nil
}
