package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bdimitrov/fittrack-api/internal/config"
	"github.com/bdimitrov/fittrack-api/internal/notification"
	"github.com/bdimitrov/fittrack-api/internal/platform/postgres"
	"github.com/bdimitrov/fittrack-api/internal/scheduler"
	"github.com/bdimitrov/fittrack-api/internal/seed"
	"github.com/bdimitrov/fittrack-api/internal/service"
	"github.com/bdimitrov/fittrack-api/internal/service/auth"
	"github.com/bdimitrov/fittrack-api/internal/session"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	categoryStore store.CategoryStore
	exerciseStore store.ExerciseStore
	workoutStore  store.WorkoutStore
	progressStore store.ProgressStore
	diaryStore    store.DiaryStore

	// Services
	jwtService          auth.JWTService
	userService         service.UserService
	workoutService      service.WorkoutService
	progressService     service.ProgressService
	categoryService     service.CategoryService
	diaryService        service.DiaryService
	notificationService service.NotificationService

	// In-memory session state
	selector *session.Selector

	// Background jobs
	scheduler *scheduler.Scheduler
}

// newApplication creates a new application instance with all
// dependencies initialized. Configuration, logging and the database
// connection must be established beforehand.
func newApplication(cfg *config.Config, appLogger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	appLogger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMin)

	app.userStore = postgres.NewPostgresUserStore(db, appLogger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, appLogger)
	app.exerciseStore = postgres.NewPostgresExerciseStore(db, appLogger)
	app.workoutStore = postgres.NewPostgresWorkoutStore(db, appLogger)
	app.progressStore = postgres.NewPostgresProgressStore(db, appLogger)
	app.diaryStore = postgres.NewPostgresDiaryStore(db, appLogger)

	app.workoutService, err = service.NewWorkoutService(
		db, app.userStore, app.exerciseStore, app.workoutStore, app.progressStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize workout service: %w", err)
	}

	app.progressService, err = service.NewProgressService(
		app.progressStore, app.exerciseStore, app.categoryStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize progress service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(
		app.categoryStore, app.exerciseStore, app.progressStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize category service: %w", err)
	}

	app.diaryService, err = service.NewDiaryService(app.diaryStore, app.userStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize diary service: %w", err)
	}

	notificationClient := notification.NewHTTPClient(cfg.Notification, appLogger)
	app.notificationService, err = service.NewNotificationService(
		app.userStore, app.progressService, notificationClient, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notification service: %w", err)
	}

	app.userService, err = service.NewUserService(
		db, app.userStore, auth.NewBcryptHasher(), app.notificationService, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user service: %w", err)
	}

	app.selector = session.NewSelector()

	app.scheduler, err = scheduler.New(
		app.workoutService, app.notificationService, cfg.Scheduler, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return app, nil
}

// seedDemoData populates the catalog and demo accounts on startup.
func (app *application) seedDemoData(ctx context.Context) error {
	seeder, err := seed.NewSeeder(
		app.db, app.userStore, app.categoryStore, app.exerciseStore, app.config.Seed, app.logger)
	if err != nil {
		return err
	}
	return seeder.Run(ctx)
}

// cleanup stops background components that hold resources.
func (app *application) cleanup() {
	if err := app.scheduler.Stop(); err != nil {
		app.logger.Error("failed to stop scheduler", "error", err)
	}
}
