package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/observability"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// ExercisePrescription is one entry of a batch sets/reps update.
type ExercisePrescription struct {
	ExerciseID uuid.UUID
	Sets       int
	Reps       int
}

// WorkoutService materializes workouts from exercise selections and
// manages their lifecycle, including the progress cascade on delete.
type WorkoutService interface {
	// CreateWorkout persists a new workout for the user with the
	// exercises resolved from exerciseIDs. Unknown exercise ids are
	// silently dropped, so the created workout may contain fewer
	// exercises than requested. Returns store.ErrUserNotFound if the
	// user does not resolve.
	CreateWorkout(ctx context.Context, name string, userID uuid.UUID, exerciseIDs []uuid.UUID, completed bool) (*domain.Workout, error)

	// MarkCompleted flips the workout's completed flag to true.
	// Idempotent. Returns store.ErrWorkoutNotFound if missing.
	MarkCompleted(ctx context.Context, workoutID uuid.UUID) error

	// RepeatWorkout clones the source workout for its owner: same name,
	// completed=false, and a fresh copy of every attached exercise so
	// the clone's prescriptions can evolve independently afterward.
	// Returns store.ErrWorkoutNotFound or ErrNoExercisesToRepeat.
	RepeatWorkout(ctx context.Context, workoutID, requestedBy uuid.UUID) (*domain.Workout, error)

	// DeleteWorkoutAndProgress removes the workout together with every
	// progress row referencing it, in one transaction. No progress row
	// outlives its workout. Deleting an already-deleted workout returns
	// store.ErrWorkoutNotFound again.
	DeleteWorkoutAndProgress(ctx context.Context, workoutID uuid.UUID) error

	// UpdateExerciseSetsReps applies a batch of prescription updates.
	// The batch is all-or-nothing: the first missing exercise aborts the
	// call with store.ErrExerciseNotFound and no entry is applied.
	UpdateExerciseSetsReps(ctx context.Context, updates []ExercisePrescription) error

	// RecordCompletion appends one progress row with the current
	// timestamp. exerciseID may be nil for a workout-level completion.
	// Returns store.ErrUserNotFound / store.ErrWorkoutNotFound.
	RecordCompletion(ctx context.Context, userID, workoutID uuid.UUID, exerciseID *uuid.UUID) (*domain.Progress, error)

	// DeleteWorkoutsBefore removes every workout created before the
	// cutoff, cascading over progress rows and severing exercise
	// backreferences first. Returns the number of workouts deleted.
	DeleteWorkoutsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// workoutServiceImpl implements the WorkoutService interface.
type workoutServiceImpl struct {
	db        *sql.DB
	users     store.UserStore
	exercises store.ExerciseStore
	workouts  store.WorkoutStore
	progress  store.ProgressStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewWorkoutService creates a new WorkoutService.
// It returns an error if any of the required dependencies are nil.
func NewWorkoutService(
	db *sql.DB,
	users store.UserStore,
	exercises store.ExerciseStore,
	workouts store.WorkoutStore,
	progress store.ProgressStore,
	log *slog.Logger,
) (WorkoutService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if exercises == nil {
		return nil, domain.NewValidationError("exercises", "cannot be nil", domain.ErrValidation)
	}
	if workouts == nil {
		return nil, domain.NewValidationError("workouts", "cannot be nil", domain.ErrValidation)
	}
	if progress == nil {
		return nil, domain.NewValidationError("progress", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &workoutServiceImpl{
		db:        db,
		users:     users,
		exercises: exercises,
		workouts:  workouts,
		progress:  progress,
		logger:    log.With(slog.String("component", "workout_service")),
		now:       time.Now,
	}, nil
}

// CreateWorkout implements WorkoutService.CreateWorkout.
func (s *workoutServiceImpl) CreateWorkout(
	ctx context.Context,
	name string,
	userID uuid.UUID,
	exerciseIDs []uuid.UUID,
	completed bool,
) (*domain.Workout, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		log.Warn("create workout for unknown user",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	// Best-effort resolution: ids that resolve to nothing are dropped,
	// not reported. The workout may end up smaller than requested.
	resolved, err := s.exercises.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, NewWorkoutServiceError("create_workout", "failed to resolve exercises", err)
	}
	if len(resolved) < len(exerciseIDs) {
		log.Debug("dropped unknown exercise ids",
			slog.Int("requested", len(exerciseIDs)),
			slog.Int("resolved", len(resolved)))
	}

	workout, err := domain.NewWorkout(userID, name, completed)
	if err != nil {
		return nil, err
	}
	workout.CreatedAt = s.now().UTC()

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txWorkouts := s.workouts.WithTx(tx)
		txExercises := s.exercises.WithTx(tx)

		if err := txWorkouts.Create(ctx, workout); err != nil {
			return NewWorkoutServiceError("create_workout", "failed to save workout", err)
		}
		for _, ex := range resolved {
			if err := txExercises.AttachToWorkout(ctx, ex.ID, workout.ID); err != nil {
				return NewWorkoutServiceError("create_workout", "failed to attach exercise", err)
			}
			workoutID := workout.ID
			ex.WorkoutID = &workoutID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	workout.Exercises = resolved
	observability.RecordWorkoutCreated()

	log.Info("workout created",
		slog.String("workout_id", workout.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("exercise_count", len(resolved)),
		slog.Bool("completed", completed))
	return workout, nil
}

// MarkCompleted implements WorkoutService.MarkCompleted.
func (s *workoutServiceImpl) MarkCompleted(ctx context.Context, workoutID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.workouts.MarkCompleted(ctx, workoutID); err != nil {
		log.Warn("failed to mark workout completed",
			slog.String("workout_id", workoutID.String()),
			slog.String("error", err.Error()))
		return err
	}

	log.Debug("workout marked completed", slog.String("workout_id", workoutID.String()))
	return nil
}

// RepeatWorkout implements WorkoutService.RepeatWorkout.
func (s *workoutServiceImpl) RepeatWorkout(
	ctx context.Context,
	workoutID, requestedBy uuid.UUID,
) (*domain.Workout, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	source, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	sourceExercises, err := s.exercises.FindByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, NewWorkoutServiceError("repeat_workout", "failed to load exercises", err)
	}
	if len(sourceExercises) == 0 {
		return nil, ErrNoExercisesToRepeat
	}

	// The clone belongs to the source workout's owner regardless of who
	// requested the repeat; ownership checks happen at the API boundary.
	clone, err := domain.NewWorkout(source.UserID, source.Name, false)
	if err != nil {
		return nil, err
	}
	clone.CreatedAt = s.now().UTC()

	clonedExercises := make([]*domain.Exercise, 0, len(sourceExercises))
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txWorkouts := s.workouts.WithTx(tx)
		txExercises := s.exercises.WithTx(tx)

		if err := txWorkouts.Create(ctx, clone); err != nil {
			return NewWorkoutServiceError("repeat_workout", "failed to save workout", err)
		}
		for _, src := range sourceExercises {
			copied := src.Clone()
			cloneID := clone.ID
			copied.WorkoutID = &cloneID
			if err := txExercises.Create(ctx, copied); err != nil {
				return NewWorkoutServiceError("repeat_workout", "failed to copy exercise", err)
			}
			clonedExercises = append(clonedExercises, copied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	clone.Exercises = clonedExercises
	observability.RecordWorkoutCreated()

	log.Info("workout repeated",
		slog.String("source_workout_id", workoutID.String()),
		slog.String("workout_id", clone.ID.String()),
		slog.String("requested_by", requestedBy.String()),
		slog.Int("exercise_count", len(clonedExercises)))
	return clone, nil
}

// DeleteWorkoutAndProgress implements WorkoutService.DeleteWorkoutAndProgress.
func (s *workoutServiceImpl) DeleteWorkoutAndProgress(ctx context.Context, workoutID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.workouts.GetByID(ctx, workoutID); err != nil {
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txExercises := s.exercises.WithTx(tx)
		txProgress := s.progress.WithTx(tx)
		txWorkouts := s.workouts.WithTx(tx)

		// Progress rows first, then the workout itself: no reader may
		// observe a progress row pointing at a deleted workout.
		if err := txExercises.DetachFromWorkout(ctx, workoutID); err != nil {
			return NewWorkoutServiceError("delete_workout", "failed to detach exercises", err)
		}
		if err := txProgress.DeleteByWorkoutID(ctx, workoutID); err != nil {
			return NewWorkoutServiceError("delete_workout", "failed to delete progress", err)
		}
		if err := txWorkouts.Delete(ctx, workoutID); err != nil {
			return NewWorkoutServiceError("delete_workout", "failed to delete workout", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("workout and progress deleted", slog.String("workout_id", workoutID.String()))
	return nil
}

// UpdateExerciseSetsReps implements WorkoutService.UpdateExerciseSetsReps.
func (s *workoutServiceImpl) UpdateExerciseSetsReps(ctx context.Context, updates []ExercisePrescription) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(updates) == 0 {
		return nil
	}

	// Fail-fast inside one transaction: the first missing exercise
	// aborts the whole batch and rolls back prior entries.
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txExercises := s.exercises.WithTx(tx)
		for _, u := range updates {
			if err := txExercises.UpdateSetsReps(ctx, u.ExerciseID, u.Sets, u.Reps); err != nil {
				log.Warn("prescription update aborted",
					slog.String("exercise_id", u.ExerciseID.String()),
					slog.String("error", err.Error()))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("exercise prescriptions updated", slog.Int("count", len(updates)))
	return nil
}

// RecordCompletion implements WorkoutService.RecordCompletion.
func (s *workoutServiceImpl) RecordCompletion(
	ctx context.Context,
	userID, workoutID uuid.UUID,
	exerciseID *uuid.UUID,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.workouts.GetByID(ctx, workoutID); err != nil {
		return nil, err
	}

	// A missing optional exercise id resolves to a nil reference rather
	// than a failure.
	var resolvedExercise *uuid.UUID
	if exerciseID != nil {
		ex, err := s.exercises.GetByID(ctx, *exerciseID)
		if err == nil {
			id := ex.ID
			resolvedExercise = &id
		} else if !store.IsNotFoundError(err) {
			return nil, NewWorkoutServiceError("record_completion", "failed to resolve exercise", err)
		}
	}

	progress, err := domain.NewProgress(userID, workoutID, resolvedExercise, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.progress.Create(ctx, progress); err != nil {
		return nil, NewWorkoutServiceError("record_completion", "failed to save progress", err)
	}
	observability.RecordCompletion(progress.Timestamp)

	log.Debug("completion recorded",
		slog.String("user_id", userID.String()),
		slog.String("workout_id", workoutID.String()),
		slog.Bool("has_exercise", resolvedExercise != nil))
	return progress, nil
}

// DeleteWorkoutsBefore implements WorkoutService.DeleteWorkoutsBefore.
func (s *workoutServiceImpl) DeleteWorkoutsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	old, err := s.workouts.FindCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, NewWorkoutServiceError("cleanup", "failed to list old workouts", err)
	}
	if len(old) == 0 {
		return 0, nil
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txExercises := s.exercises.WithTx(tx)
		txProgress := s.progress.WithTx(tx)
		txWorkouts := s.workouts.WithTx(tx)

		for _, w := range old {
			if err := txExercises.DetachFromWorkout(ctx, w.ID); err != nil {
				return NewWorkoutServiceError("cleanup", "failed to detach exercises", err)
			}
			if err := txProgress.DeleteByWorkoutID(ctx, w.ID); err != nil {
				return NewWorkoutServiceError("cleanup", "failed to delete progress", err)
			}
			if err := txWorkouts.Delete(ctx, w.ID); err != nil {
				return NewWorkoutServiceError("cleanup", "failed to delete workout", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	observability.RecordWorkoutsSwept(len(old))
	log.Info("old workouts swept",
		slog.Int("count", len(old)),
		slog.Time("cutoff", cutoff))
	return len(old), nil
}
