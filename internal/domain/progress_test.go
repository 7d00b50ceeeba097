package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	userID := uuid.New()
	workoutID := uuid.New()
	now := time.Now().UTC()

	t.Run("with exercise", func(t *testing.T) {
		exerciseID := uuid.New()
		p, err := NewProgress(userID, workoutID, &exerciseID, now)
		require.NoError(t, err)
		require.NotNil(t, p.ExerciseID)
		assert.Equal(t, exerciseID, *p.ExerciseID)
	})

	t.Run("workout-level completion has nil exercise", func(t *testing.T) {
		p, err := NewProgress(userID, workoutID, nil, now)
		require.NoError(t, err)
		assert.Nil(t, p.ExerciseID)
	})

	t.Run("validation failures", func(t *testing.T) {
		_, err := NewProgress(uuid.Nil, workoutID, nil, now)
		assert.ErrorIs(t, err, ErrEmptyProgressUser)

		_, err = NewProgress(userID, uuid.Nil, nil, now)
		assert.ErrorIs(t, err, ErrEmptyProgressWorkout)

		_, err = NewProgress(userID, workoutID, nil, time.Time{})
		assert.ErrorIs(t, err, ErrZeroProgressTime)
	})
}

func TestProgressDate(t *testing.T) {
	userID := uuid.New()
	workoutID := uuid.New()

	morning, err := NewProgress(userID, workoutID, nil, time.Date(2025, 3, 14, 7, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	evening, err := NewProgress(userID, workoutID, nil, time.Date(2025, 3, 14, 22, 15, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, morning.Date(), evening.Date(), "same calendar day collapses to one date")
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), morning.Date())
}
