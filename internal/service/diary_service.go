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

// DiaryService manages a user's dated journal entries.
type DiaryService interface {
	// CreateDiary creates a new entry for the user.
	// Returns store.ErrUserNotFound if the user does not exist.
	CreateDiary(ctx context.Context, userID uuid.UUID, entryDate time.Time, content, photoURL string) (*domain.Diary, error)

	// GetDiary retrieves one entry by ID.
	// Returns store.ErrDiaryNotFound if the entry does not exist.
	GetDiary(ctx context.Context, id uuid.UUID) (*domain.Diary, error)

	// ListDiaries returns the user's entries ordered by entry date,
	// newest first.
	ListDiaries(ctx context.Context, userID uuid.UUID) ([]*domain.Diary, error)

	// UpdateDiary replaces the entry date, content, and photo URL of an
	// existing entry and refreshes its updated-at timestamp.
	// Returns store.ErrDiaryNotFound if the entry does not exist.
	UpdateDiary(ctx context.Context, id uuid.UUID, entryDate time.Time, content, photoURL string) (*domain.Diary, error)

	// DeleteDiary removes an entry.
	// Returns store.ErrDiaryNotFound if the entry does not exist.
	DeleteDiary(ctx context.Context, id uuid.UUID) error
}

// diaryServiceImpl implements the DiaryService interface.
type diaryServiceImpl struct {
	diaries store.DiaryStore
	users   store.UserStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewDiaryService creates a new DiaryService.
func NewDiaryService(
	diaries store.DiaryStore,
	users store.UserStore,
	log *slog.Logger,
) (DiaryService, error) {
	if diaries == nil {
		return nil, domain.NewValidationError("diaries", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &diaryServiceImpl{
		diaries: diaries,
		users:   users,
		logger:  log.With(slog.String("component", "diary_service")),
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateDiary implements DiaryService.CreateDiary.
func (s *diaryServiceImpl) CreateDiary(
	ctx context.Context,
	userID uuid.UUID,
	entryDate time.Time,
	content, photoURL string,
) (*domain.Diary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Resolve the owner first so a bad user ID surfaces as a user
	// error, not a foreign key violation.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	diary, err := domain.NewDiary(userID, entryDate, content, photoURL)
	if err != nil {
		return nil, err
	}

	if err := s.diaries.Create(ctx, diary); err != nil {
		return nil, err
	}

	log.Info("diary entry created",
		slog.String("diary_id", diary.ID.String()),
		slog.String("user_id", userID.String()))
	return diary, nil
}

// GetDiary implements DiaryService.GetDiary.
func (s *diaryServiceImpl) GetDiary(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	return s.diaries.GetByID(ctx, id)
}

// ListDiaries implements DiaryService.ListDiaries.
func (s *diaryServiceImpl) ListDiaries(ctx context.Context, userID uuid.UUID) ([]*domain.Diary, error) {
	return s.diaries.ListByUser(ctx, userID)
}

// UpdateDiary implements DiaryService.UpdateDiary.
func (s *diaryServiceImpl) UpdateDiary(
	ctx context.Context,
	id uuid.UUID,
	entryDate time.Time,
	content, photoURL string,
) (*domain.Diary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	diary, err := s.diaries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	diary.EntryDate = entryDate
	diary.Content = content
	diary.PhotoURL = photoURL
	diary.UpdatedAt = s.now()

	if err := s.diaries.Update(ctx, diary); err != nil {
		return nil, err
	}

	log.Info("diary entry updated", slog.String("diary_id", id.String()))
	return diary, nil
}

// DeleteDiary implements DiaryService.DeleteDiary.
func (s *diaryServiceImpl) DeleteDiary(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.diaries.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("diary entry deleted", slog.String("diary_id", id.String()))
	return nil
}
