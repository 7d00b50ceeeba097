// Package seed populates a fresh database with the exercise catalog and
// optional demo accounts so the API is usable immediately after startup.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/bdimitrov/fittrack-api/internal/config"
	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/service/auth"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// catalogExercise is one entry of the built-in exercise catalog.
type catalogExercise struct {
	name        string
	description string
	sets        int
	reps        int
}

// catalog maps muscle group names to their starter exercises. Sets and
// reps are starting prescriptions; users adjust them per workout.
var catalog = map[string][]catalogExercise{
	"Chest": {
		{name: "Bench Press", description: "Barbell press on a flat bench.", sets: 3, reps: 10},
		{name: "Dumbbell Fly", description: "Flat bench fly with dumbbells.", sets: 3, reps: 12},
		{name: "Push-Up", description: "Bodyweight push-up.", sets: 3, reps: 15},
	},
	"Back": {
		{name: "Pull-Up", description: "Bodyweight pull-up, overhand grip.", sets: 3, reps: 8},
		{name: "Barbell Row", description: "Bent-over barbell row.", sets: 3, reps: 10},
		{name: "Lat Pulldown", description: "Cable pulldown to the chest.", sets: 3, reps: 12},
	},
	"Legs": {
		{name: "Squat", description: "Barbell back squat.", sets: 4, reps: 8},
		{name: "Leg Press", description: "Machine leg press.", sets: 3, reps: 12},
		{name: "Lunge", description: "Walking lunge with dumbbells.", sets: 3, reps: 10},
	},
	"Shoulders": {
		{name: "Overhead Press", description: "Standing barbell press.", sets: 3, reps: 10},
		{name: "Lateral Raise", description: "Dumbbell raise to the side.", sets: 3, reps: 15},
	},
	"Arms": {
		{name: "Barbell Curl", description: "Standing biceps curl.", sets: 3, reps: 12},
		{name: "Triceps Pushdown", description: "Cable pushdown, rope attachment.", sets: 3, reps: 12},
	},
	"Core": {
		{name: "Plank", description: "Front plank hold.", sets: 3, reps: 1},
		{name: "Hanging Leg Raise", description: "Leg raise from a pull-up bar.", sets: 3, reps: 12},
	},
}

// demoPassword is the shared password for generated demo accounts.
const demoPassword = "fittrack-demo"

// Seeder inserts the starter catalog and demo users.
type Seeder struct {
	db         *sql.DB
	users      store.UserStore
	categories store.CategoryStore
	exercises  store.ExerciseStore
	cfg        config.SeedConfig
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	db *sql.DB,
	users store.UserStore,
	categories store.CategoryStore,
	exercises store.ExerciseStore,
	cfg config.SeedConfig,
	log *slog.Logger,
) (*Seeder, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if exercises == nil {
		return nil, domain.NewValidationError("exercises", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Seeder{
		db:         db,
		users:      users,
		categories: categories,
		exercises:  exercises,
		cfg:        cfg,
		hasher:     auth.NewBcryptHasher(),
		logger:     log.With(slog.String("component", "seeder")),
	}, nil
}

// Run seeds the catalog and demo users. Seeding is skipped when the
// catalog already has categories, so restarts stay idempotent.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("catalog already seeded, skipping", "categories", len(existing))
		return nil
	}

	if err := s.seedCatalog(ctx); err != nil {
		return err
	}
	if err := s.seedDemoUsers(ctx); err != nil {
		return err
	}
	return nil
}

func (s *Seeder) seedCatalog(ctx context.Context) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		categories := s.categories.WithTx(tx)
		exercises := s.exercises.WithTx(tx)

		for name, entries := range catalog {
			category, err := domain.NewCategory(name, "")
			if err != nil {
				return fmt.Errorf("invalid catalog category %q: %w", name, err)
			}
			if err := categories.Create(ctx, category); err != nil {
				return fmt.Errorf("failed to create category %q: %w", name, err)
			}

			for _, e := range entries {
				exercise, err := domain.NewExercise(category.ID, e.name, e.description, "", e.sets, e.reps)
				if err != nil {
					return fmt.Errorf("invalid catalog exercise %q: %w", e.name, err)
				}
				if err := exercises.Create(ctx, exercise); err != nil {
					return fmt.Errorf("failed to create exercise %q: %w", e.name, err)
				}
			}
		}

		s.logger.Info("exercise catalog seeded", "categories", len(catalog))
		return nil
	})
}

func (s *Seeder) seedDemoUsers(ctx context.Context) error {
	if s.cfg.DemoUsers <= 0 {
		return nil
	}

	hashed, err := s.hasher.Hash(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	faker := gofakeit.New(0)
	created := 0
	for created < s.cfg.DemoUsers {
		username := faker.Username()
		user, err := domain.NewUser(username, faker.Email(), demoPassword)
		if err != nil {
			continue
		}
		user.HashedPassword = hashed
		user.Password = ""

		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.users.WithTx(tx).Create(ctx, user)
		})
		if err != nil {
			// Generated names can collide; try another one.
			if errors.Is(err, store.ErrUsernameExists) {
				continue
			}
			return fmt.Errorf("failed to create demo user %q: %w", username, err)
		}
		created++
	}

	s.logger.Info("demo users seeded", "count", created)
	return nil
}
