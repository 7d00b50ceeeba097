package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// CategoryService exposes the muscle-group catalog and suggests which
// group a user should train next.
type CategoryService interface {
	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	// ExercisesByCategory returns the catalog exercises in the named
	// category. An unknown category name yields an empty slice, not an
	// error, so the browse surface stays forgiving.
	ExercisesByCategory(ctx context.Context, name string) ([]*domain.Exercise, error)

	// NextMuscleGroup suggests the least recently trained category for
	// the user. Untrained categories win over trained ones; with no
	// history at all the first category by name is suggested. Ties go to
	// the category appearing first in the name-ordered list.
	// Returns store.ErrCategoryNotFound when no categories exist.
	NextMuscleGroup(ctx context.Context, userID uuid.UUID) (*domain.Category, error)
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	categories store.CategoryStore
	exercises  store.ExerciseStore
	progress   store.ProgressStore
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(
	categories store.CategoryStore,
	exercises store.ExerciseStore,
	progress store.ProgressStore,
	log *slog.Logger,
) (CategoryService, error) {
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if exercises == nil {
		return nil, domain.NewValidationError("exercises", "cannot be nil", domain.ErrValidation)
	}
	if progress == nil {
		return nil, domain.NewValidationError("progress", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &categoryServiceImpl{
		categories: categories,
		exercises:  exercises,
		progress:   progress,
		logger:     log.With(slog.String("component", "category_service")),
	}, nil
}

// ListCategories implements CategoryService.ListCategories.
func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// ExercisesByCategory implements CategoryService.ExercisesByCategory.
func (s *categoryServiceImpl) ExercisesByCategory(
	ctx context.Context,
	name string,
) ([]*domain.Exercise, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("unknown category requested", slog.String("category_name", name))
			return []*domain.Exercise{}, nil
		}
		return nil, err
	}

	return s.exercises.ListByCategory(ctx, category.ID)
}

// NextMuscleGroup implements CategoryService.NextMuscleGroup.
func (s *categoryServiceImpl) NextMuscleGroup(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, store.ErrCategoryNotFound
	}

	history, err := s.progress.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return categories[0], nil
	}

	// Resolve the exercise behind each progress row once, then record
	// the latest training instant per category.
	idSet := make(map[uuid.UUID]struct{})
	var exerciseIDs []uuid.UUID
	for _, p := range history {
		if p.ExerciseID == nil {
			continue
		}
		if _, ok := idSet[*p.ExerciseID]; ok {
			continue
		}
		idSet[*p.ExerciseID] = struct{}{}
		exerciseIDs = append(exerciseIDs, *p.ExerciseID)
	}

	resolved, err := s.exercises.GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}
	categoryOf := make(map[uuid.UUID]uuid.UUID, len(resolved))
	for _, ex := range resolved {
		categoryOf[ex.ID] = ex.CategoryID
	}

	lastTrained := make(map[uuid.UUID]time.Time)
	for _, p := range history {
		if p.ExerciseID == nil {
			continue
		}
		categoryID, ok := categoryOf[*p.ExerciseID]
		if !ok {
			continue
		}
		if p.Timestamp.After(lastTrained[categoryID]) {
			lastTrained[categoryID] = p.Timestamp
		}
	}

	// Untrained categories carry the zero time and sort to the front.
	// Strict comparison keeps the first name-ordered category on ties.
	next := categories[0]
	nextAt := lastTrained[next.ID]
	for _, c := range categories[1:] {
		if at := lastTrained[c.ID]; at.Before(nextAt) {
			next = c
			nextAt = at
		}
	}

	log.Debug("suggested next muscle group",
		slog.String("user_id", userID.String()),
		slog.String("category", next.Name))
	return next, nil
}
