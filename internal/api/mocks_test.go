package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/notification"
	"github.com/bdimitrov/fittrack-api/internal/service"
	"github.com/bdimitrov/fittrack-api/internal/service/auth"
)

// MockWorkoutService is a mock implementation of service.WorkoutService for testing
type MockWorkoutService struct {
	CreateWorkoutFn            func(ctx context.Context, name string, userID uuid.UUID, exerciseIDs []uuid.UUID, completed bool) (*domain.Workout, error)
	MarkCompletedFn            func(ctx context.Context, workoutID uuid.UUID) error
	RepeatWorkoutFn            func(ctx context.Context, workoutID, requestedBy uuid.UUID) (*domain.Workout, error)
	DeleteWorkoutAndProgressFn func(ctx context.Context, workoutID uuid.UUID) error
	UpdateExerciseSetsRepsFn   func(ctx context.Context, updates []service.ExercisePrescription) error
	RecordCompletionFn         func(ctx context.Context, userID, workoutID uuid.UUID, exerciseID *uuid.UUID) (*domain.Progress, error)
	DeleteWorkoutsBeforeFn     func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *MockWorkoutService) CreateWorkout(
	ctx context.Context,
	name string,
	userID uuid.UUID,
	exerciseIDs []uuid.UUID,
	completed bool,
) (*domain.Workout, error) {
	if m.CreateWorkoutFn != nil {
		return m.CreateWorkoutFn(ctx, name, userID, exerciseIDs, completed)
	}
	return nil, nil
}

func (m *MockWorkoutService) MarkCompleted(ctx context.Context, workoutID uuid.UUID) error {
	if m.MarkCompletedFn != nil {
		return m.MarkCompletedFn(ctx, workoutID)
	}
	return nil
}

func (m *MockWorkoutService) RepeatWorkout(
	ctx context.Context,
	workoutID, requestedBy uuid.UUID,
) (*domain.Workout, error) {
	if m.RepeatWorkoutFn != nil {
		return m.RepeatWorkoutFn(ctx, workoutID, requestedBy)
	}
	return nil, nil
}

func (m *MockWorkoutService) DeleteWorkoutAndProgress(ctx context.Context, workoutID uuid.UUID) error {
	if m.DeleteWorkoutAndProgressFn != nil {
		return m.DeleteWorkoutAndProgressFn(ctx, workoutID)
	}
	return nil
}

func (m *MockWorkoutService) UpdateExerciseSetsReps(
	ctx context.Context,
	updates []service.ExercisePrescription,
) error {
	if m.UpdateExerciseSetsRepsFn != nil {
		return m.UpdateExerciseSetsRepsFn(ctx, updates)
	}
	return nil
}

func (m *MockWorkoutService) RecordCompletion(
	ctx context.Context,
	userID, workoutID uuid.UUID,
	exerciseID *uuid.UUID,
) (*domain.Progress, error) {
	if m.RecordCompletionFn != nil {
		return m.RecordCompletionFn(ctx, userID, workoutID, exerciseID)
	}
	return nil, nil
}

func (m *MockWorkoutService) DeleteWorkoutsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if m.DeleteWorkoutsBeforeFn != nil {
		return m.DeleteWorkoutsBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

// MockProgressService is a mock implementation of service.ProgressService for testing
type MockProgressService struct {
	CurrentStreakFn       func(ctx context.Context, userID uuid.UUID) (int, error)
	LongestStreakFn       func(ctx context.Context, userID uuid.UUID) (int, error)
	TotalWorkoutsFn       func(ctx context.Context, userID uuid.UUID) (int, error)
	MonthlyWorkoutCountFn func(ctx context.Context, userID uuid.UUID) (int, error)
	SetsDoneThisWeekFn    func(ctx context.Context, userID uuid.UUID) (int, error)
	LastWorkoutSummaryFn  func(ctx context.Context, userID uuid.UUID) (*service.WorkoutSummary, error)
}

func (m *MockProgressService) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CurrentStreakFn != nil {
		return m.CurrentStreakFn(ctx, userID)
	}
	return 0, nil
}

func (m *MockProgressService) LongestStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.LongestStreakFn != nil {
		return m.LongestStreakFn(ctx, userID)
	}
	return 0, nil
}

func (m *MockProgressService) TotalWorkouts(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.TotalWorkoutsFn != nil {
		return m.TotalWorkoutsFn(ctx, userID)
	}
	return 0, nil
}

func (m *MockProgressService) MonthlyWorkoutCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.MonthlyWorkoutCountFn != nil {
		return m.MonthlyWorkoutCountFn(ctx, userID)
	}
	return 0, nil
}

func (m *MockProgressService) SetsDoneThisWeek(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.SetsDoneThisWeekFn != nil {
		return m.SetsDoneThisWeekFn(ctx, userID)
	}
	return 0, nil
}

func (m *MockProgressService) LastWorkoutSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*service.WorkoutSummary, error) {
	if m.LastWorkoutSummaryFn != nil {
		return m.LastWorkoutSummaryFn(ctx, userID)
	}
	return &service.WorkoutSummary{}, nil
}

// MockCategoryService is a mock implementation of service.CategoryService for testing
type MockCategoryService struct {
	ListCategoriesFn      func(ctx context.Context) ([]*domain.Category, error)
	ExercisesByCategoryFn func(ctx context.Context, name string) ([]*domain.Exercise, error)
	NextMuscleGroupFn     func(ctx context.Context, userID uuid.UUID) (*domain.Category, error)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return nil, nil
}

func (m *MockCategoryService) ExercisesByCategory(
	ctx context.Context,
	name string,
) ([]*domain.Exercise, error) {
	if m.ExercisesByCategoryFn != nil {
		return m.ExercisesByCategoryFn(ctx, name)
	}
	return nil, nil
}

func (m *MockCategoryService) NextMuscleGroup(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Category, error) {
	if m.NextMuscleGroupFn != nil {
		return m.NextMuscleGroupFn(ctx, userID)
	}
	return nil, nil
}

// MockUserService is a mock implementation of service.UserService for testing
type MockUserService struct {
	RegisterFn     func(ctx context.Context, username, email, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	GetUserFn      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *MockUserService) Register(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, email, password)
	}
	return nil, nil
}

func (m *MockUserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return nil, nil
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, nil
}

// MockJWTService is a mock implementation of auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "test-token", nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidToken
}

// MockDiaryService is a mock implementation of service.DiaryService for testing
type MockDiaryService struct {
	CreateDiaryFn func(ctx context.Context, userID uuid.UUID, entryDate time.Time, content, photoURL string) (*domain.Diary, error)
	GetDiaryFn    func(ctx context.Context, id uuid.UUID) (*domain.Diary, error)
	ListDiariesFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Diary, error)
	UpdateDiaryFn func(ctx context.Context, id uuid.UUID, entryDate time.Time, content, photoURL string) (*domain.Diary, error)
	DeleteDiaryFn func(ctx context.Context, id uuid.UUID) error
}

func (m *MockDiaryService) CreateDiary(
	ctx context.Context,
	userID uuid.UUID,
	entryDate time.Time,
	content, photoURL string,
) (*domain.Diary, error) {
	if m.CreateDiaryFn != nil {
		return m.CreateDiaryFn(ctx, userID, entryDate, content, photoURL)
	}
	return nil, nil
}

func (m *MockDiaryService) GetDiary(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	if m.GetDiaryFn != nil {
		return m.GetDiaryFn(ctx, id)
	}
	return nil, nil
}

func (m *MockDiaryService) ListDiaries(ctx context.Context, userID uuid.UUID) ([]*domain.Diary, error) {
	if m.ListDiariesFn != nil {
		return m.ListDiariesFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockDiaryService) UpdateDiary(
	ctx context.Context,
	id uuid.UUID,
	entryDate time.Time,
	content, photoURL string,
) (*domain.Diary, error) {
	if m.UpdateDiaryFn != nil {
		return m.UpdateDiaryFn(ctx, id, entryDate, content, photoURL)
	}
	return nil, nil
}

func (m *MockDiaryService) DeleteDiary(ctx context.Context, id uuid.UUID) error {
	if m.DeleteDiaryFn != nil {
		return m.DeleteDiaryFn(ctx, id)
	}
	return nil
}

// MockNotificationService is a mock implementation of service.NotificationService for testing
type MockNotificationService struct {
	NotifyUserFn       func(ctx context.Context, userID uuid.UUID) error
	NotifyAllActiveFn  func(ctx context.Context) error
	SavePreferenceFn   func(ctx context.Context, userID uuid.UUID, enabled bool, contactInfo string) error
	GetPreferenceFn    func(ctx context.Context, userID uuid.UUID) (*notification.Preference, error)
	GetHistoryFn       func(ctx context.Context, userID uuid.UUID) ([]notification.HistoryEntry, error)
	UpdatePreferenceFn func(ctx context.Context, userID uuid.UUID, enabled bool) error
}

func (m *MockNotificationService) NotifyUser(ctx context.Context, userID uuid.UUID) error {
	if m.NotifyUserFn != nil {
		return m.NotifyUserFn(ctx, userID)
	}
	return nil
}

func (m *MockNotificationService) NotifyAllActive(ctx context.Context) error {
	if m.NotifyAllActiveFn != nil {
		return m.NotifyAllActiveFn(ctx)
	}
	return nil
}

func (m *MockNotificationService) SavePreference(
	ctx context.Context,
	userID uuid.UUID,
	enabled bool,
	contactInfo string,
) error {
	if m.SavePreferenceFn != nil {
		return m.SavePreferenceFn(ctx, userID, enabled, contactInfo)
	}
	return nil
}

func (m *MockNotificationService) GetPreference(
	ctx context.Context,
	userID uuid.UUID,
) (*notification.Preference, error) {
	if m.GetPreferenceFn != nil {
		return m.GetPreferenceFn(ctx, userID)
	}
	return &notification.Preference{}, nil
}

func (m *MockNotificationService) GetHistory(
	ctx context.Context,
	userID uuid.UUID,
) ([]notification.HistoryEntry, error) {
	if m.GetHistoryFn != nil {
		return m.GetHistoryFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockNotificationService) UpdatePreference(
	ctx context.Context,
	userID uuid.UUID,
	enabled bool,
) error {
	if m.UpdatePreferenceFn != nil {
		return m.UpdatePreferenceFn(ctx, userID, enabled)
	}
	return nil
}
