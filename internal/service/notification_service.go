package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/notification"
	"github.com/bdimitrov/fittrack-api/internal/observability"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

const (
	// restDayStreak is the current-streak threshold at which the daily
	// message switches from a workout prompt to a rest prompt.
	restDayStreak = 3

	notificationSubject = "Workout Alert"
	restDayBody         = "Rest day! Time to recover."
	workoutDayBody      = "Time to hit the gym! Keep the streak going."

	// historyDisplayLimit caps how many past notifications GetHistory
	// returns, newest first.
	historyDisplayLimit = 5
)

// NotificationService composes and dispatches the daily workout
// reminder based on each user's current streak.
type NotificationService interface {
	// NotifyUser sends the streak-appropriate reminder to one user.
	NotifyUser(ctx context.Context, userID uuid.UUID) error

	// NotifyAllActive sends the reminder to every active user. Delivery
	// failures for individual users are logged and skipped so one bad
	// address does not starve the rest; the last failure is returned.
	NotifyAllActive(ctx context.Context) error

	// SavePreference creates or replaces the user's delivery preference
	// on the notification service.
	SavePreference(ctx context.Context, userID uuid.UUID, enabled bool, contactInfo string) error

	// GetPreference fetches the user's delivery preference.
	GetPreference(ctx context.Context, userID uuid.UUID) (*notification.Preference, error)

	// GetHistory returns the user's most recent notifications, newest
	// first, capped at five entries.
	GetHistory(ctx context.Context, userID uuid.UUID) ([]notification.HistoryEntry, error)

	// UpdatePreference toggles the user's enabled flag.
	UpdatePreference(ctx context.Context, userID uuid.UUID, enabled bool) error
}

// notificationServiceImpl implements the NotificationService interface.
type notificationServiceImpl struct {
	users    store.UserStore
	progress ProgressService
	client   notification.Client
	logger   *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	users store.UserStore,
	progress ProgressService,
	client notification.Client,
	log *slog.Logger,
) (NotificationService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if progress == nil {
		return nil, domain.NewValidationError("progress", "cannot be nil", domain.ErrValidation)
	}
	if client == nil {
		return nil, domain.NewValidationError("client", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &notificationServiceImpl{
		users:    users,
		progress: progress,
		client:   client,
		logger:   log.With(slog.String("component", "notification_service")),
	}, nil
}

// NotifyUser implements NotificationService.NotifyUser.
func (s *notificationServiceImpl) NotifyUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	streak, err := s.progress.CurrentStreak(ctx, userID)
	if err != nil {
		return err
	}

	body := workoutDayBody
	if streak >= restDayStreak {
		body = restDayBody
	}

	msg := notification.Message{
		UserID:  userID,
		Subject: notificationSubject,
		Body:    body,
	}
	if err := s.client.Send(ctx, msg); err != nil {
		observability.RecordNotification("failed")
		return err
	}
	observability.RecordNotification("sent")

	log.Debug("reminder sent",
		slog.String("user_id", userID.String()),
		slog.Int("current_streak", streak))
	return nil
}

// NotifyAllActive implements NotificationService.NotifyAllActive.
func (s *notificationServiceImpl) NotifyAllActive(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.users.ListActive(ctx)
	if err != nil {
		return err
	}

	var lastErr error
	for _, u := range users {
		if err := s.NotifyUser(ctx, u.ID); err != nil {
			log.Warn("failed to notify user",
				slog.String("user_id", u.ID.String()),
				slog.String("error", err.Error()))
			lastErr = err
		}
	}

	log.Info("daily reminder sweep finished", slog.Int("user_count", len(users)))
	return lastErr
}

// SavePreference implements NotificationService.SavePreference.
func (s *notificationServiceImpl) SavePreference(
	ctx context.Context,
	userID uuid.UUID,
	enabled bool,
	contactInfo string,
) error {
	return s.client.SavePreference(ctx, notification.UpsertPreference{
		UserID:      userID,
		ContactInfo: contactInfo,
		Enabled:     enabled,
	})
}

// GetPreference implements NotificationService.GetPreference.
func (s *notificationServiceImpl) GetPreference(
	ctx context.Context,
	userID uuid.UUID,
) (*notification.Preference, error) {
	return s.client.GetPreference(ctx, userID)
}

// GetHistory implements NotificationService.GetHistory.
func (s *notificationServiceImpl) GetHistory(
	ctx context.Context,
	userID uuid.UUID,
) ([]notification.HistoryEntry, error) {
	entries, err := s.client.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedOn.After(entries[j].CreatedOn)
	})
	if len(entries) > historyDisplayLimit {
		entries = entries[:historyDisplayLimit]
	}
	return entries, nil
}

// UpdatePreference implements NotificationService.UpdatePreference.
func (s *notificationServiceImpl) UpdatePreference(
	ctx context.Context,
	userID uuid.UUID,
	enabled bool,
) error {
	return s.client.UpdatePreference(ctx, userID, enabled)
}
