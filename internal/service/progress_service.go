package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// recentStreakWindow caps how many progress rows the current-streak
// calculation scans. Thirty rows approximate a month of daily training,
// but several rows on one day can push older streak days out of the
// window, so long streaks may be under-counted.
const recentStreakWindow = 30

// noDataPlaceholder is returned for summary fields with no history.
const noDataPlaceholder = "N/A"

// WorkoutSummary describes a user's most recent workout.
type WorkoutSummary struct {
	Date          string   `json:"date"`
	MuscleGroup   string   `json:"muscle_group"`
	ExerciseNames []string `json:"exercise_names"`
}

// ProgressService derives read-only metrics from one user's persisted
// progress history. Missing history is never an error: every operation
// returns the empty value for its type instead.
type ProgressService interface {
	// CurrentStreak counts consecutive calendar days with at least one
	// progress entry, walking backward from today and stopping at the
	// first gap. A user who did not train today has a streak of 0.
	CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error)

	// LongestStreak scans the full history for the longest run of
	// consecutive calendar days. Not anchored to today; 1 for a single
	// training date, 0 for no history.
	LongestStreak(ctx context.Context, userID uuid.UUID) (int, error)

	// TotalWorkouts counts the distinct workouts referenced by the
	// user's progress rows, not the raw row count.
	TotalWorkouts(ctx context.Context, userID uuid.UUID) (int, error)

	// MonthlyWorkoutCount counts distinct workouts among progress rows
	// with timestamp at or after the first instant of the current month.
	MonthlyWorkoutCount(ctx context.Context, userID uuid.UUID) (int, error)

	// SetsDoneThisWeek sums, over progress rows from the last 7 days,
	// the exercise count of each row's workout. Each row contributes the
	// whole workout's exercise count, so per-exercise rows multiply in;
	// this mirrors the historical aggregation and is kept as a contract.
	SetsDoneThisWeek(ctx context.Context, userID uuid.UUID) (int, error)

	// LastWorkoutSummary describes the workout behind the most recent
	// progress row: its date, the muscle group of that row's exercise,
	// and the distinct exercise names among rows of the same workout
	// ordered by descending timestamp.
	LastWorkoutSummary(ctx context.Context, userID uuid.UUID) (*WorkoutSummary, error)
}

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	progress   store.ProgressStore
	exercises  store.ExerciseStore
	categories store.CategoryStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewProgressService creates a new ProgressService.
func NewProgressService(
	progress store.ProgressStore,
	exercises store.ExerciseStore,
	categories store.CategoryStore,
	log *slog.Logger,
) (ProgressService, error) {
	if progress == nil {
		return nil, domain.NewValidationError("progress", "cannot be nil", domain.ErrValidation)
	}
	if exercises == nil {
		return nil, domain.NewValidationError("exercises", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &progressServiceImpl{
		progress:   progress,
		exercises:  exercises,
		categories: categories,
		logger:     log.With(slog.String("component", "progress_service")),
		now:        time.Now,
	}, nil
}

// calendarDate collapses a timestamp to its UTC calendar date.
func calendarDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CurrentStreak implements ProgressService.CurrentStreak.
func (s *progressServiceImpl) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	recent, err := s.progress.FindRecentByUser(ctx, userID, recentStreakWindow)
	if err != nil {
		return 0, err
	}
	if len(recent) == 0 {
		return 0, nil
	}

	trainingDays := make(map[time.Time]struct{}, len(recent))
	for _, p := range recent {
		trainingDays[calendarDate(p.Timestamp)] = struct{}{}
	}

	streak := 0
	day := calendarDate(s.now())
	for {
		if _, ok := trainingDays[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// LongestStreak implements ProgressService.LongestStreak.
func (s *progressServiceImpl) LongestStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	history, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return 0, nil
	}

	distinct := make(map[time.Time]struct{}, len(history))
	for _, p := range history {
		distinct[calendarDate(p.Timestamp)] = struct{}{}
	}

	dates := make([]time.Time, 0, len(distinct))
	for d := range distinct {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest, nil
}

// TotalWorkouts implements ProgressService.TotalWorkouts.
func (s *progressServiceImpl) TotalWorkouts(ctx context.Context, userID uuid.UUID) (int, error) {
	history, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	seen := make(map[uuid.UUID]struct{}, len(history))
	for _, p := range history {
		seen[p.WorkoutID] = struct{}{}
	}
	return len(seen), nil
}

// MonthlyWorkoutCount implements ProgressService.MonthlyWorkoutCount.
func (s *progressServiceImpl) MonthlyWorkoutCount(ctx context.Context, userID uuid.UUID) (int, error) {
	history, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	seen := make(map[uuid.UUID]struct{})
	for _, p := range history {
		if !p.Timestamp.UTC().Before(startOfMonth) {
			seen[p.WorkoutID] = struct{}{}
		}
	}
	return len(seen), nil
}

// SetsDoneThisWeek implements ProgressService.SetsDoneThisWeek.
func (s *progressServiceImpl) SetsDoneThisWeek(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	history, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	weekAgo := s.now().UTC().AddDate(0, 0, -7)

	total := 0
	counts := make(map[uuid.UUID]int)
	for _, p := range history {
		if !p.Timestamp.UTC().After(weekAgo) {
			continue
		}
		count, ok := counts[p.WorkoutID]
		if !ok {
			count, err = s.exercises.CountByWorkoutID(ctx, p.WorkoutID)
			if err != nil {
				log.Warn("failed to count workout exercises",
					slog.String("workout_id", p.WorkoutID.String()),
					slog.String("error", err.Error()))
				return 0, err
			}
			counts[p.WorkoutID] = count
		}
		total += count
	}
	return total, nil
}

// LastWorkoutSummary implements ProgressService.LastWorkoutSummary.
func (s *progressServiceImpl) LastWorkoutSummary(ctx context.Context, userID uuid.UUID) (*WorkoutSummary, error) {
	history, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &WorkoutSummary{
		Date:          noDataPlaceholder,
		MuscleGroup:   noDataPlaceholder,
		ExerciseNames: []string{},
	}
	if len(history) == 0 {
		return summary, nil
	}

	// FindByUser orders rows by timestamp descending; the head row is
	// the most recent completion.
	last := history[0]
	summary.Date = calendarDate(last.Timestamp).Format("2006-01-02")

	// Collect exercise ids for the last workout in descending order.
	var exerciseIDs []uuid.UUID
	for _, p := range history {
		if p.WorkoutID == last.WorkoutID && p.ExerciseID != nil {
			exerciseIDs = append(exerciseIDs, *p.ExerciseID)
		}
	}

	resolved, err := s.exercises.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]*domain.Exercise, len(resolved))
	for _, ex := range resolved {
		names[ex.ID] = ex
	}

	if last.ExerciseID != nil {
		if ex, ok := names[*last.ExerciseID]; ok {
			if category, err := s.categories.GetByID(ctx, ex.CategoryID); err == nil {
				summary.MuscleGroup = category.Name
			} else if !store.IsNotFoundError(err) {
				return nil, err
			}
		}
	}

	// Distinct names, preserving the descending-timestamp order.
	seen := make(map[string]struct{})
	for _, id := range exerciseIDs {
		ex, ok := names[id]
		if !ok {
			continue
		}
		if _, dup := seen[ex.Name]; dup {
			continue
		}
		seen[ex.Name] = struct{}{}
		summary.ExerciseNames = append(summary.ExerciseNames, ex.Name)
	}

	return summary, nil
}
