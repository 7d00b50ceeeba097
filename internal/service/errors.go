package service

import (
	"errors"
	"fmt"
)

// Common service-level errors
var (
	// ErrNoExercisesToRepeat is returned when repeating a workout that
	// has no exercises attached.
	ErrNoExercisesToRepeat = errors.New("no exercises to repeat")

	// ErrInvalidSelection is returned when an operation requires a
	// non-empty exercise selection and none exists.
	ErrInvalidSelection = errors.New("no exercises selected")
)

// WorkoutServiceError is a custom error type for workout service errors.
type WorkoutServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for WorkoutServiceError.
func (e *WorkoutServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("workout service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("workout service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *WorkoutServiceError) Unwrap() error {
	return e.Err
}

// NewWorkoutServiceError creates a new WorkoutServiceError.
func NewWorkoutServiceError(operation, message string, err error) *WorkoutServiceError {
	return &WorkoutServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
