package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bdimitrov/fittrack-api/internal/api"
	apiMiddleware "github.com/bdimitrov/fittrack-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.MetricsMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	categoryHandler := api.NewCategoryHandler(app.categoryService)
	workoutHandler := api.NewWorkoutHandler(app.workoutService, app.selector)
	statsHandler := api.NewStatsHandler(app.progressService, app.categoryService)
	diaryHandler := api.NewDiaryHandler(app.diaryService)
	notificationHandler := api.NewNotificationHandler(app.notificationService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Catalog
			r.Get("/categories", categoryHandler.List)
			r.Get("/categories/{name}/exercises", categoryHandler.Exercises)

			// Selection and session
			r.Post("/workout/selection", workoutHandler.StoreSelection)
			r.Get("/workout/selection", workoutHandler.GetSelection)
			r.Post("/workout/session", workoutHandler.StartSession)

			// Workout lifecycle
			r.Post("/workouts", workoutHandler.CreateWorkout)
			r.Post("/workouts/{id}/complete", workoutHandler.Complete)
			r.Post("/workouts/{id}/repeat", workoutHandler.Repeat)
			r.Delete("/workouts/{id}", workoutHandler.Delete)
			r.Put("/exercises", workoutHandler.UpdateExercises)

			// Diary
			r.Post("/diaries", diaryHandler.CreateDiary)
			r.Get("/diaries", diaryHandler.ListDiaries)
			r.Get("/diaries/{id}", diaryHandler.GetDiary)
			r.Put("/diaries/{id}", diaryHandler.UpdateDiary)
			r.Delete("/diaries/{id}", diaryHandler.DeleteDiary)

			// Notification preferences and history
			r.Get("/notifications/preference", notificationHandler.GetPreference)
			r.Put("/notifications/preference", notificationHandler.UpdatePreference)
			r.Get("/notifications/history", notificationHandler.GetHistory)

			// Progress and statistics
			r.Post("/progress", workoutHandler.RecordProgress)
			r.Get("/stats", statsHandler.Stats)
			r.Get("/stats/last-workout", statsHandler.LastWorkout)
			r.Get("/stats/next-muscle-group", statsHandler.NextMuscleGroup)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
