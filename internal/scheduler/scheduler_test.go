package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdimitrov/fittrack-api/internal/config"
	"github.com/bdimitrov/fittrack-api/internal/service"
)

type stubWorkoutService struct {
	service.WorkoutService
	deleteCutoff time.Time
	deleteCount  int
	deleteErr    error
}

func (s *stubWorkoutService) DeleteWorkoutsBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.deleteCutoff = cutoff
	return s.deleteCount, s.deleteErr
}

type stubNotificationService struct {
	service.NotificationService
	sweeps int
	err    error
}

func (s *stubNotificationService) NotifyUser(context.Context, uuid.UUID) error { return s.err }

func (s *stubNotificationService) NotifyAllActive(context.Context) error {
	s.sweeps++
	return s.err
}

func testConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		CleanupRetention: 30 * 24 * time.Hour,
		NotificationHour: 9,
	}
}

func TestNewRegistersJobs(t *testing.T) {
	t.Parallel()

	sched, err := New(&stubWorkoutService{}, &stubNotificationService{}, testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Stop() })

	assert.Len(t, sched.scheduler.Jobs(), 2)
}

func TestRunCleanupSweepCutoff(t *testing.T) {
	t.Parallel()

	workouts := &stubWorkoutService{deleteCount: 3}
	sched, err := New(workouts, &stubNotificationService{}, testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Stop() })

	now := time.Date(2025, 3, 14, 1, 0, 0, 0, time.UTC)
	sched.now = func() time.Time { return now }

	sched.runCleanupSweep()

	assert.True(t, workouts.deleteCutoff.Equal(now.Add(-30*24*time.Hour)))
}

func TestRunCleanupSweepError(t *testing.T) {
	t.Parallel()

	workouts := &stubWorkoutService{deleteErr: errors.New("db down")}
	sched, err := New(workouts, &stubNotificationService{}, testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Stop() })

	// The sweep logs and swallows the failure; the scheduler must not
	// panic or stop.
	sched.runCleanupSweep()
}

func TestRunNotificationSweep(t *testing.T) {
	t.Parallel()

	notifications := &stubNotificationService{}
	sched, err := New(&stubWorkoutService{}, notifications, testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Stop() })

	sched.runNotificationSweep()
	assert.Equal(t, 1, notifications.sweeps)
}
