package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

const exerciseColumns = "id, category_id, workout_id, name, description, gif_url, sets, reps, created_at"

// PostgresExerciseStore implements the store.ExerciseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExerciseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExerciseStore creates a new PostgreSQL implementation of
// the ExerciseStore interface.
func NewPostgresExerciseStore(db store.DBTX, logger *slog.Logger) *PostgresExerciseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExerciseStore{
		db:     db,
		logger: logger.With(slog.String("component", "exercise_store")),
	}
}

// Ensure PostgresExerciseStore implements store.ExerciseStore interface
var _ store.ExerciseStore = (*PostgresExerciseStore)(nil)

// WithTx implements store.ExerciseStore.WithTx
func (s *PostgresExerciseStore) WithTx(tx *sql.Tx) store.ExerciseStore {
	return &PostgresExerciseStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ExerciseStore.Create
// Returns store.ErrInvalidEntity if the category does not exist.
func (s *PostgresExerciseStore) Create(ctx context.Context, exercise *domain.Exercise) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exercise.Validate(); err != nil {
		log.Warn("exercise validation failed during create",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return err
	}

	query := `
		INSERT INTO exercises (` + exerciseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		exercise.ID,
		exercise.CategoryID,
		exercise.WorkoutID,
		exercise.Name,
		exercise.Description,
		exercise.GifURL,
		exercise.Sets,
		exercise.Reps,
		exercise.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during exercise creation",
				slog.String("exercise_id", exercise.ID.String()),
				slog.String("category_id", exercise.CategoryID.String()))
			return fmt.Errorf("%w: category with ID %s not found",
				store.ErrInvalidEntity, exercise.CategoryID)
		}

		log.Error("failed to create exercise",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exercise.ID.String()))
		return MapError(err)
	}

	log.Debug("exercise created",
		slog.String("exercise_id", exercise.ID.String()),
		slog.String("name", exercise.Name))
	return nil
}

// GetByID implements store.ExerciseStore.GetByID
// Returns store.ErrExerciseNotFound if the exercise does not exist.
func (s *PostgresExerciseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE id = $1
	`

	var ex domain.Exercise
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ex.ID,
		&ex.CategoryID,
		&ex.WorkoutID,
		&ex.Name,
		&ex.Description,
		&ex.GifURL,
		&ex.Sets,
		&ex.Reps,
		&ex.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("exercise not found", slog.String("exercise_id", id.String()))
			return nil, store.ErrExerciseNotFound
		}
		log.Error("failed to get exercise by ID",
			slog.String("error", err.Error()),
			slog.String("exercise_id", id.String()))
		return nil, MapError(err)
	}

	return &ex, nil
}

// GetByIDs implements store.ExerciseStore.GetByIDs
// Unknown ids are omitted from the result, not reported as errors.
func (s *PostgresExerciseStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Exercise, error) {
	if len(ids) == 0 {
		return []*domain.Exercise{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE id IN (` + strings.Join(placeholders, ", ") + `)
	`
	return s.scanMany(ctx, query, args...)
}

// ListByCategory implements store.ExerciseStore.ListByCategory
// Only catalog exercises (no workout attachment) are returned.
func (s *PostgresExerciseStore) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE category_id = $1 AND workout_id IS NULL
		ORDER BY name
	`
	return s.scanMany(ctx, query, categoryID)
}

// FindByWorkoutID implements store.ExerciseStore.FindByWorkoutID
func (s *PostgresExerciseStore) FindByWorkoutID(ctx context.Context, workoutID uuid.UUID) ([]*domain.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE workout_id = $1
		ORDER BY created_at
	`
	return s.scanMany(ctx, query, workoutID)
}

// CountByWorkoutID implements store.ExerciseStore.CountByWorkoutID
func (s *PostgresExerciseStore) CountByWorkoutID(ctx context.Context, workoutID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM exercises
		WHERE workout_id = $1
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, workoutID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// UpdateSetsReps implements store.ExerciseStore.UpdateSetsReps
// Returns store.ErrExerciseNotFound if the exercise does not exist.
func (s *PostgresExerciseStore) UpdateSetsReps(ctx context.Context, id uuid.UUID, sets, reps int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if sets <= 0 {
		return domain.ErrNonPositiveSets
	}
	if reps <= 0 {
		return domain.ErrNonPositiveReps
	}

	query := `
		UPDATE exercises
		SET sets = $1, reps = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, sets, reps, id)
	if err != nil {
		log.Error("failed to update exercise prescription",
			slog.String("error", err.Error()),
			slog.String("exercise_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("exercise not found for prescription update",
			slog.String("exercise_id", id.String()))
		return store.ErrExerciseNotFound
	}

	log.Debug("exercise prescription updated",
		slog.String("exercise_id", id.String()),
		slog.Int("sets", sets),
		slog.Int("reps", reps))
	return nil
}

// AttachToWorkout implements store.ExerciseStore.AttachToWorkout
// Returns store.ErrExerciseNotFound if the exercise does not exist.
func (s *PostgresExerciseStore) AttachToWorkout(ctx context.Context, exerciseID, workoutID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE exercises
		SET workout_id = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, workoutID, exerciseID)
	if err != nil {
		log.Error("failed to attach exercise to workout",
			slog.String("error", err.Error()),
			slog.String("exercise_id", exerciseID.String()),
			slog.String("workout_id", workoutID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrExerciseNotFound
	}

	return nil
}

// DetachFromWorkout implements store.ExerciseStore.DetachFromWorkout
// Detaching zero exercises is not an error.
func (s *PostgresExerciseStore) DetachFromWorkout(ctx context.Context, workoutID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE exercises
		SET workout_id = NULL
		WHERE workout_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, workoutID)
	if err != nil {
		log.Error("failed to detach exercises from workout",
			slog.String("error", err.Error()),
			slog.String("workout_id", workoutID.String()))
		return MapError(err)
	}

	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Debug("exercises detached",
			slog.String("workout_id", workoutID.String()),
			slog.Int64("count", rowsAffected))
	}
	return nil
}

func (s *PostgresExerciseStore) scanMany(ctx context.Context, query string, args ...any) ([]*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query exercises", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	exercises := make([]*domain.Exercise, 0)
	for rows.Next() {
		var ex domain.Exercise
		if err := rows.Scan(
			&ex.ID,
			&ex.CategoryID,
			&ex.WorkoutID,
			&ex.Name,
			&ex.Description,
			&ex.GifURL,
			&ex.Sets,
			&ex.Reps,
			&ex.CreatedAt,
		); err != nil {
			log.Error("failed to scan exercise row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		exercises = append(exercises, &ex)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return exercises, nil
}
