package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

type workoutServiceMocks struct {
	users     *MockUserStore
	exercises *MockExerciseStore
	workouts  *MockWorkoutStore
	progress  *MockProgressStore
}

func newTestWorkoutService(t *testing.T) (*workoutServiceImpl, workoutServiceMocks) {
	t.Helper()

	m := workoutServiceMocks{
		users:     new(MockUserStore),
		exercises: new(MockExerciseStore),
		workouts:  new(MockWorkoutStore),
		progress:  new(MockProgressStore),
	}
	svc, err := NewWorkoutService(placeholderDB(t), m.users, m.exercises, m.workouts, m.progress, nil)
	require.NoError(t, err)

	impl := svc.(*workoutServiceImpl)
	impl.now = func() time.Time { return fixedNow }
	return impl, m
}

func TestNewWorkoutServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := NewWorkoutService(nil, new(MockUserStore), new(MockExerciseStore), new(MockWorkoutStore), new(MockProgressStore), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewWorkoutService(placeholderDB(t), nil, new(MockExerciseStore), new(MockWorkoutStore), new(MockProgressStore), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateWorkoutUnknownUser(t *testing.T) {
	t.Parallel()

	svc, m := newTestWorkoutService(t)
	userID := uuid.New()
	m.users.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

	_, err := svc.CreateWorkout(context.Background(), "Push Day", userID, nil, false)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	m.exercises.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestCreateWorkoutExerciseResolutionFailure(t *testing.T) {
	t.Parallel()

	svc, m := newTestWorkoutService(t)
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New()}

	m.users.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Username: "alice"}, nil)
	m.exercises.On("GetByIDs", mock.Anything, ids).
		Return(nil, errors.New("connection reset"))

	_, err := svc.CreateWorkout(context.Background(), "Push Day", userID, ids, false)
	require.Error(t, err)

	var svcErr *WorkoutServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_workout", svcErr.Operation)
}

func TestRepeatWorkout(t *testing.T) {
	t.Parallel()

	t.Run("unknown workout", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestWorkoutService(t)
		workoutID := uuid.New()
		m.workouts.On("GetByID", mock.Anything, workoutID).
			Return(nil, store.ErrWorkoutNotFound)

		_, err := svc.RepeatWorkout(context.Background(), workoutID, uuid.New())
		assert.ErrorIs(t, err, store.ErrWorkoutNotFound)
	})

	t.Run("workout without exercises", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestWorkoutService(t)
		workout := &domain.Workout{ID: uuid.New(), UserID: uuid.New(), Name: "Legs"}

		m.workouts.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)
		m.exercises.On("FindByWorkoutID", mock.Anything, workout.ID).
			Return([]*domain.Exercise{}, nil)

		_, err := svc.RepeatWorkout(context.Background(), workout.ID, workout.UserID)
		assert.ErrorIs(t, err, ErrNoExercisesToRepeat)
	})
}

func TestDeleteWorkoutAndProgressAlreadyDeleted(t *testing.T) {
	t.Parallel()

	svc, m := newTestWorkoutService(t)
	workoutID := uuid.New()
	m.workouts.On("GetByID", mock.Anything, workoutID).
		Return(nil, store.ErrWorkoutNotFound)

	err := svc.DeleteWorkoutAndProgress(context.Background(), workoutID)
	assert.ErrorIs(t, err, store.ErrWorkoutNotFound)
	m.progress.AssertNotCalled(t, "DeleteByWorkoutID", mock.Anything, mock.Anything)
}

func TestUpdateExerciseSetsRepsEmptyBatch(t *testing.T) {
	t.Parallel()

	svc, m := newTestWorkoutService(t)

	require.NoError(t, svc.UpdateExerciseSetsReps(context.Background(), nil))
	m.exercises.AssertNotCalled(t, "UpdateSetsReps", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordCompletion(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	workoutID := uuid.New()
	user := &domain.User{ID: userID, Username: "alice"}
	workout := &domain.Workout{ID: workoutID, UserID: userID, Name: "Push Day"}

	t.Run("workout level completion", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestWorkoutService(t)
		m.users.On("GetByID", mock.Anything, userID).Return(user, nil)
		m.workouts.On("GetByID", mock.Anything, workoutID).Return(workout, nil)
		m.progress.On("Create", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		p, err := svc.RecordCompletion(context.Background(), userID, workoutID, nil)
		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, workoutID, p.WorkoutID)
		assert.Nil(t, p.ExerciseID)
		assert.True(t, p.Timestamp.Equal(fixedNow))
	})

	t.Run("missing optional exercise resolves to nil", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestWorkoutService(t)
		ghostID := uuid.New()
		m.users.On("GetByID", mock.Anything, userID).Return(user, nil)
		m.workouts.On("GetByID", mock.Anything, workoutID).Return(workout, nil)
		m.exercises.On("GetByID", mock.Anything, ghostID).
			Return(nil, store.ErrExerciseNotFound)
		m.progress.On("Create", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		p, err := svc.RecordCompletion(context.Background(), userID, workoutID, &ghostID)
		require.NoError(t, err)
		assert.Nil(t, p.ExerciseID)
	})

	t.Run("exercise lookup failure aborts", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestWorkoutService(t)
		exerciseID := uuid.New()
		m.users.On("GetByID", mock.Anything, userID).Return(user, nil)
		m.workouts.On("GetByID", mock.Anything, workoutID).Return(workout, nil)
		m.exercises.On("GetByID", mock.Anything, exerciseID).
			Return(nil, errors.New("connection reset"))

		_, err := svc.RecordCompletion(context.Background(), userID, workoutID, &exerciseID)
		require.Error(t, err)
		m.progress.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown workout", func(t *testing.T) {
		t.Parallel()

		svc, m := newTestWorkoutService(t)
		m.users.On("GetByID", mock.Anything, userID).Return(user, nil)
		m.workouts.On("GetByID", mock.Anything, workoutID).
			Return(nil, store.ErrWorkoutNotFound)

		_, err := svc.RecordCompletion(context.Background(), userID, workoutID, nil)
		assert.ErrorIs(t, err, store.ErrWorkoutNotFound)
	})
}

func TestDeleteWorkoutsBeforeNothingToSweep(t *testing.T) {
	t.Parallel()

	svc, m := newTestWorkoutService(t)
	cutoff := fixedNow.AddDate(0, -1, 0)
	m.workouts.On("FindCreatedBefore", mock.Anything, cutoff).
		Return([]*domain.Workout{}, nil)

	count, err := svc.DeleteWorkoutsBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkCompletedPropagatesNotFound(t *testing.T) {
	t.Parallel()

	svc, m := newTestWorkoutService(t)
	workoutID := uuid.New()
	m.workouts.On("MarkCompleted", mock.Anything, workoutID).
		Return(store.ErrWorkoutNotFound)

	assert.ErrorIs(t, svc.MarkCompleted(context.Background(), workoutID), store.ErrWorkoutNotFound)
}

// newTxWorkoutService builds the service over fakeTxDB so transactional
// paths run to commit with every statement routed through the mocks.
func newTxWorkoutService(t *testing.T) (*workoutServiceImpl, workoutServiceMocks) {
	t.Helper()

	m := workoutServiceMocks{
		users:     new(MockUserStore),
		exercises: new(MockExerciseStore),
		workouts:  new(MockWorkoutStore),
		progress:  new(MockProgressStore),
	}
	svc, err := NewWorkoutService(fakeTxDB(t), m.users, m.exercises, m.workouts, m.progress, nil)
	require.NoError(t, err)

	impl := svc.(*workoutServiceImpl)
	impl.now = func() time.Time { return fixedNow }
	return impl, m
}

func catalogExercise(name string, sets, reps int) *domain.Exercise {
	return &domain.Exercise{
		ID:         uuid.New(),
		CategoryID: uuid.New(),
		Name:       name,
		Sets:       sets,
		Reps:       reps,
		CreatedAt:  fixedNow,
	}
}

func TestCreateWorkoutSavesAndAttaches(t *testing.T) {
	t.Parallel()

	svc, m := newTxWorkoutService(t)
	userID := uuid.New()
	bench := catalogExercise("Bench Press", 4, 8)
	rows := catalogExercise("Barbell Row", 3, 10)

	m.users.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Username: "alice"}, nil)
	m.exercises.On("GetByIDs", mock.Anything, []uuid.UUID{bench.ID, rows.ID}).
		Return([]*domain.Exercise{bench, rows}, nil)
	m.workouts.On("WithTx", mock.Anything).Return(m.workouts)
	m.exercises.On("WithTx", mock.Anything).Return(m.exercises)

	var saved *domain.Workout
	m.workouts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Workout")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Workout)
		}).
		Return(nil)
	m.exercises.On("AttachToWorkout", mock.Anything, bench.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)
	m.exercises.On("AttachToWorkout", mock.Anything, rows.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)

	workout, err := svc.CreateWorkout(
		context.Background(), "Push Day", userID, []uuid.UUID{bench.ID, rows.ID}, false)
	require.NoError(t, err)

	assert.Equal(t, saved, workout)
	assert.Equal(t, userID, workout.UserID)
	assert.False(t, workout.Completed)
	assert.Equal(t, fixedNow, workout.CreatedAt)

	require.Len(t, workout.Exercises, 2)
	for _, ex := range workout.Exercises {
		require.NotNil(t, ex.WorkoutID)
		assert.Equal(t, workout.ID, *ex.WorkoutID)
	}
	m.exercises.AssertNumberOfCalls(t, "AttachToWorkout", 2)
}

func TestRepeatWorkoutClonesExercises(t *testing.T) {
	t.Parallel()

	svc, m := newTxWorkoutService(t)
	sourceID := uuid.New()
	ownerID := uuid.New()
	source := &domain.Workout{ID: sourceID, UserID: ownerID, Name: "Leg Day", Completed: true}

	squat := catalogExercise("Squat", 5, 5)
	lunge := catalogExercise("Lunge", 3, 12)
	squat.WorkoutID = &sourceID
	lunge.WorkoutID = &sourceID

	m.workouts.On("GetByID", mock.Anything, sourceID).Return(source, nil)
	m.exercises.On("FindByWorkoutID", mock.Anything, sourceID).
		Return([]*domain.Exercise{squat, lunge}, nil)
	m.workouts.On("WithTx", mock.Anything).Return(m.workouts)
	m.exercises.On("WithTx", mock.Anything).Return(m.exercises)
	m.workouts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Workout")).Return(nil)

	var copies []*domain.Exercise
	m.exercises.On("Create", mock.Anything, mock.AnythingOfType("*domain.Exercise")).
		Run(func(args mock.Arguments) {
			copies = append(copies, args.Get(1).(*domain.Exercise))
		}).
		Return(nil)

	clone, err := svc.RepeatWorkout(context.Background(), sourceID, ownerID)
	require.NoError(t, err)

	assert.NotEqual(t, sourceID, clone.ID)
	assert.Equal(t, ownerID, clone.UserID)
	assert.Equal(t, "Leg Day", clone.Name)
	assert.False(t, clone.Completed)

	require.Len(t, copies, 2)
	assert.Equal(t, copies, clone.Exercises)
	for i, src := range []*domain.Exercise{squat, lunge} {
		copied := copies[i]
		assert.NotEqual(t, src.ID, copied.ID)
		assert.Equal(t, src.Name, copied.Name)
		assert.Equal(t, src.Sets, copied.Sets)
		assert.Equal(t, src.Reps, copied.Reps)
		require.NotNil(t, copied.WorkoutID)
		assert.Equal(t, clone.ID, *copied.WorkoutID)
	}
}

func TestDeleteWorkoutAndProgressCascade(t *testing.T) {
	t.Parallel()

	svc, m := newTxWorkoutService(t)
	workoutID := uuid.New()
	workout := &domain.Workout{ID: workoutID, UserID: uuid.New(), Name: "Pull Day"}

	// First delete succeeds; exercises are detached and every progress
	// row goes before the workout itself.
	m.workouts.On("GetByID", mock.Anything, workoutID).Return(workout, nil).Once()
	m.exercises.On("WithTx", mock.Anything).Return(m.exercises)
	m.progress.On("WithTx", mock.Anything).Return(m.progress)
	m.workouts.On("WithTx", mock.Anything).Return(m.workouts)
	m.exercises.On("DetachFromWorkout", mock.Anything, workoutID).Return(nil).Once()
	m.progress.On("DeleteByWorkoutID", mock.Anything, workoutID).Return(nil).Once()
	m.workouts.On("Delete", mock.Anything, workoutID).Return(nil).Once()

	require.NoError(t, svc.DeleteWorkoutAndProgress(context.Background(), workoutID))

	m.exercises.AssertNumberOfCalls(t, "DetachFromWorkout", 1)
	m.progress.AssertNumberOfCalls(t, "DeleteByWorkoutID", 1)
	m.workouts.AssertNumberOfCalls(t, "Delete", 1)

	// Deleting again resolves nothing and raises not-found once more.
	m.workouts.On("GetByID", mock.Anything, workoutID).Return(nil, store.ErrWorkoutNotFound)

	err := svc.DeleteWorkoutAndProgress(context.Background(), workoutID)
	assert.ErrorIs(t, err, store.ErrWorkoutNotFound)
	m.progress.AssertNumberOfCalls(t, "DeleteByWorkoutID", 1)
}

func TestWorkoutLifecycle(t *testing.T) {
	t.Parallel()

	svc, m := newTxWorkoutService(t)
	userID := uuid.New()
	press := catalogExercise("Overhead Press", 4, 6)

	m.users.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Username: "alice"}, nil)
	m.exercises.On("GetByIDs", mock.Anything, []uuid.UUID{press.ID}).
		Return([]*domain.Exercise{press}, nil)
	m.workouts.On("WithTx", mock.Anything).Return(m.workouts)
	m.exercises.On("WithTx", mock.Anything).Return(m.exercises)
	m.workouts.On("Create", mock.Anything, mock.AnythingOfType("*domain.Workout")).Return(nil)
	m.exercises.On("AttachToWorkout", mock.Anything, press.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)

	workout, err := svc.CreateWorkout(context.Background(), "Shoulder Day", userID, []uuid.UUID{press.ID}, false)
	require.NoError(t, err)

	m.workouts.On("MarkCompleted", mock.Anything, workout.ID).Return(nil)
	require.NoError(t, svc.MarkCompleted(context.Background(), workout.ID))

	m.workouts.On("GetByID", mock.Anything, workout.ID).Return(workout, nil)

	var recorded *domain.Progress
	m.progress.On("Create", mock.Anything, mock.AnythingOfType("*domain.Progress")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*domain.Progress)
		}).
		Return(nil)

	progress, err := svc.RecordCompletion(context.Background(), userID, workout.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, recorded, progress)
	assert.Equal(t, workout.ID, progress.WorkoutID)

	// The recorded row is all the metrics layer needs to count one
	// distinct workout.
	m.progress.On("FindByUser", mock.Anything, userID).
		Return([]*domain.Progress{recorded}, nil)

	metrics, err := NewProgressService(m.progress, m.exercises, new(MockCategoryStore), nil)
	require.NoError(t, err)

	total, err := metrics.TotalWorkouts(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
