package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExercise(t *testing.T) {
	categoryID := uuid.New()

	t.Run("valid exercise", func(t *testing.T) {
		ex, err := NewExercise(categoryID, "Back Squat", "Barbell squat", "https://cdn.example.com/squat.gif", 4, 8)
		require.NoError(t, err)
		assert.Equal(t, categoryID, ex.CategoryID)
		assert.Nil(t, ex.WorkoutID)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name     string
			category uuid.UUID
			exName   string
			sets     int
			reps     int
			wantErr  error
		}{
			{"missing category", uuid.Nil, "Squat", 3, 10, ErrEmptyExerciseCategory},
			{"empty name", categoryID, "", 3, 10, ErrEmptyExerciseName},
			{"zero sets", categoryID, "Squat", 0, 10, ErrNonPositiveSets},
			{"negative reps", categoryID, "Squat", 3, -1, ErrNonPositiveReps},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewExercise(tc.category, tc.exName, "", "", tc.sets, tc.reps)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestExerciseClone(t *testing.T) {
	workoutID := uuid.New()
	original, err := NewExercise(uuid.New(), "Deadlift", "Conventional pull", "https://cdn.example.com/dl.gif", 5, 5)
	require.NoError(t, err)
	original.WorkoutID = &workoutID

	clone := original.Clone()

	assert.NotEqual(t, original.ID, clone.ID, "clone must have a fresh identity")
	assert.Equal(t, original.Name, clone.Name)
	assert.Equal(t, original.Description, clone.Description)
	assert.Equal(t, original.GifURL, clone.GifURL)
	assert.Equal(t, original.Sets, clone.Sets)
	assert.Equal(t, original.Reps, clone.Reps)
	assert.Equal(t, original.CategoryID, clone.CategoryID)
	assert.Nil(t, clone.WorkoutID, "clone starts unattached")
}
