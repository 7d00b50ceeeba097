package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

func newTestCategoryService(
	t *testing.T,
	categories *MockCategoryStore,
	exercises *MockExerciseStore,
	progress *MockProgressStore,
) CategoryService {
	t.Helper()
	svc, err := NewCategoryService(categories, exercises, progress, nil)
	require.NoError(t, err)
	return svc
}

func TestExercisesByCategory(t *testing.T) {
	t.Parallel()

	t.Run("returns catalog exercises", func(t *testing.T) {
		t.Parallel()

		categoryID := uuid.New()
		catalog := []*domain.Exercise{
			{ID: uuid.New(), Name: "Squat", CategoryID: categoryID},
		}

		categories := new(MockCategoryStore)
		categories.On("GetByName", mock.Anything, "Legs").
			Return(&domain.Category{ID: categoryID, Name: "Legs"}, nil)

		exercises := new(MockExerciseStore)
		exercises.On("ListByCategory", mock.Anything, categoryID).Return(catalog, nil)

		svc := newTestCategoryService(t, categories, exercises, new(MockProgressStore))

		result, err := svc.ExercisesByCategory(context.Background(), "Legs")
		require.NoError(t, err)
		assert.Equal(t, catalog, result)
	})

	t.Run("unknown category yields empty slice", func(t *testing.T) {
		t.Parallel()

		categories := new(MockCategoryStore)
		categories.On("GetByName", mock.Anything, "Wings").
			Return(nil, store.ErrCategoryNotFound)

		svc := newTestCategoryService(t, categories, new(MockExerciseStore), new(MockProgressStore))

		result, err := svc.ExercisesByCategory(context.Background(), "Wings")
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestNextMuscleGroup(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	chest := &domain.Category{ID: uuid.New(), Name: "Chest"}
	legs := &domain.Category{ID: uuid.New(), Name: "Legs"}

	t.Run("no categories", func(t *testing.T) {
		t.Parallel()

		categories := new(MockCategoryStore)
		categories.On("List", mock.Anything).Return([]*domain.Category{}, nil)

		svc := newTestCategoryService(t, categories, new(MockExerciseStore), new(MockProgressStore))

		_, err := svc.NextMuscleGroup(context.Background(), userID)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	})

	t.Run("no history suggests first category", func(t *testing.T) {
		t.Parallel()

		categories := new(MockCategoryStore)
		categories.On("List", mock.Anything).Return([]*domain.Category{chest, legs}, nil)

		progress := new(MockProgressStore)
		progress.On("FindByUser", mock.Anything, userID).Return([]*domain.Progress{}, nil)

		svc := newTestCategoryService(t, categories, new(MockExerciseStore), progress)

		next, err := svc.NextMuscleGroup(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, chest, next)
	})

	t.Run("untrained category wins over trained", func(t *testing.T) {
		t.Parallel()

		benchID := uuid.New()
		bench := &domain.Exercise{ID: benchID, Name: "Bench Press", CategoryID: chest.ID}

		categories := new(MockCategoryStore)
		categories.On("List", mock.Anything).Return([]*domain.Category{chest, legs}, nil)

		progress := new(MockProgressStore)
		progress.On("FindByUser", mock.Anything, userID).Return([]*domain.Progress{
			progressRow(userID, uuid.New(), &benchID, now),
		}, nil)

		exercises := new(MockExerciseStore)
		exercises.On("GetByIDs", mock.Anything, []uuid.UUID{benchID}).
			Return([]*domain.Exercise{bench}, nil)

		svc := newTestCategoryService(t, categories, exercises, progress)

		next, err := svc.NextMuscleGroup(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, legs, next)
	})

	t.Run("least recently trained wins when all trained", func(t *testing.T) {
		t.Parallel()

		benchID := uuid.New()
		squatID := uuid.New()
		bench := &domain.Exercise{ID: benchID, Name: "Bench Press", CategoryID: chest.ID}
		squat := &domain.Exercise{ID: squatID, Name: "Squat", CategoryID: legs.ID}

		categories := new(MockCategoryStore)
		categories.On("List", mock.Anything).Return([]*domain.Category{chest, legs}, nil)

		progress := new(MockProgressStore)
		progress.On("FindByUser", mock.Anything, userID).Return([]*domain.Progress{
			progressRow(userID, uuid.New(), &benchID, now),
			progressRow(userID, uuid.New(), &squatID, now.AddDate(0, 0, -3)),
		}, nil)

		exercises := new(MockExerciseStore)
		exercises.On("GetByIDs", mock.Anything, mock.Anything).
			Return([]*domain.Exercise{bench, squat}, nil)

		svc := newTestCategoryService(t, categories, exercises, progress)

		next, err := svc.NextMuscleGroup(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, legs, next)
	})

	t.Run("rows without exercise reference are ignored", func(t *testing.T) {
		t.Parallel()

		categories := new(MockCategoryStore)
		categories.On("List", mock.Anything).Return([]*domain.Category{chest, legs}, nil)

		progress := new(MockProgressStore)
		progress.On("FindByUser", mock.Anything, userID).Return([]*domain.Progress{
			progressRow(userID, uuid.New(), nil, now),
		}, nil)

		exercises := new(MockExerciseStore)
		exercises.On("GetByIDs", mock.Anything, mock.Anything).
			Return([]*domain.Exercise{}, nil)

		svc := newTestCategoryService(t, categories, exercises, progress)

		next, err := svc.NextMuscleGroup(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, chest, next)
	})
}
