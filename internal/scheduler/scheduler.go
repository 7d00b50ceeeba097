// Package scheduler runs the periodic background jobs: the daily
// workout reminder and the old-workout cleanup sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/bdimitrov/fittrack-api/internal/config"
	"github.com/bdimitrov/fittrack-api/internal/service"
)

// Scheduler wraps a gocron scheduler for managing the periodic jobs.
type Scheduler struct {
	scheduler     gocron.Scheduler
	workouts      service.WorkoutService
	notifications service.NotificationService
	cfg           config.SchedulerConfig
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a new Scheduler. Jobs are registered but not started
// until Start is called.
func New(
	workouts service.WorkoutService,
	notifications service.NotificationService,
	cfg config.SchedulerConfig,
	log *slog.Logger,
) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	sched := &Scheduler{
		scheduler:     s,
		workouts:      workouts,
		notifications: notifications,
		cfg:           cfg,
		logger:        log.With(slog.String("component", "scheduler")),
		now:           time.Now,
	}
	if err := sched.registerJobs(); err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return sched, nil
}

func (s *Scheduler) registerJobs() error {
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(s.cfg.NotificationHour), 0, 0),
		)),
		gocron.NewTask(s.runNotificationSweep),
		gocron.WithName("daily-reminder"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule daily reminder: %w", err)
	}

	// Cleanup runs off-peak, an hour after midnight.
	_, err = s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(1, 0, 0))),
		gocron.NewTask(s.runCleanupSweep),
		gocron.WithName("workout-cleanup"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule workout cleanup: %w", err)
	}

	return nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		slog.Int("notification_hour", s.cfg.NotificationHour),
		slog.Duration("cleanup_retention", s.cfg.CleanupRetention))
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping scheduler")
	return s.scheduler.Shutdown()
}

// runNotificationSweep is called by gocron to send the daily reminders.
func (s *Scheduler) runNotificationSweep() {
	ctx := context.Background()

	if err := s.notifications.NotifyAllActive(ctx); err != nil {
		s.logger.Error("daily reminder sweep finished with errors",
			slog.String("error", err.Error()))
	}
}

// runCleanupSweep is called by gocron to delete workouts older than the
// configured retention together with their progress rows.
func (s *Scheduler) runCleanupSweep() {
	ctx := context.Background()
	cutoff := s.now().UTC().Add(-s.cfg.CleanupRetention)

	count, err := s.workouts.DeleteWorkoutsBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("workout cleanup sweep failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff))
		return
	}
	if count > 0 {
		s.logger.Info("workout cleanup sweep removed workouts",
			slog.Int("count", count),
			slog.Time("cutoff", cutoff))
	}
}
