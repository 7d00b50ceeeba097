package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

// PostgresDiaryStore implements the store.DiaryStore interface using a
// PostgreSQL database as the storage backend.
type PostgresDiaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDiaryStore creates a new PostgreSQL implementation of the
// DiaryStore interface.
func NewPostgresDiaryStore(db store.DBTX, logger *slog.Logger) *PostgresDiaryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDiaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "diary_store")),
	}
}

// Ensure PostgresDiaryStore implements store.DiaryStore interface
var _ store.DiaryStore = (*PostgresDiaryStore)(nil)

// WithTx implements store.DiaryStore.WithTx
func (s *PostgresDiaryStore) WithTx(tx *sql.Tx) store.DiaryStore {
	return &PostgresDiaryStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.DiaryStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresDiaryStore) Create(ctx context.Context, diary *domain.Diary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := diary.Validate(); err != nil {
		log.Warn("diary validation failed during create",
			slog.String("error", err.Error()),
			slog.String("diary_id", diary.ID.String()))
		return err
	}

	query := `
		INSERT INTO diaries (id, user_id, entry_date, content, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		diary.ID,
		diary.UserID,
		diary.EntryDate,
		diary.Content,
		diary.PhotoURL,
		diary.CreatedAt,
		diary.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during diary creation",
				slog.String("diary_id", diary.ID.String()),
				slog.String("user_id", diary.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, diary.UserID)
		}

		log.Error("failed to create diary entry",
			slog.String("error", err.Error()),
			slog.String("diary_id", diary.ID.String()))
		return MapError(err)
	}

	log.Info("diary entry created successfully",
		slog.String("diary_id", diary.ID.String()),
		slog.String("user_id", diary.UserID.String()))
	return nil
}

// GetByID implements store.DiaryStore.GetByID
// Returns store.ErrDiaryNotFound if the entry does not exist.
func (s *PostgresDiaryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, entry_date, content, photo_url, created_at, updated_at
		FROM diaries
		WHERE id = $1
	`

	var d domain.Diary
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.UserID,
		&d.EntryDate,
		&d.Content,
		&d.PhotoURL,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("diary entry not found", slog.String("diary_id", id.String()))
			return nil, store.ErrDiaryNotFound
		}
		log.Error("failed to get diary entry by ID",
			slog.String("error", err.Error()),
			slog.String("diary_id", id.String()))
		return nil, MapError(err)
	}

	return &d, nil
}

// ListByUser implements store.DiaryStore.ListByUser
// Entries are ordered by entry date, newest first.
func (s *PostgresDiaryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Diary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, entry_date, content, photo_url, created_at, updated_at
		FROM diaries
		WHERE user_id = $1
		ORDER BY entry_date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list diary entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	diaries := make([]*domain.Diary, 0)
	for rows.Next() {
		var d domain.Diary
		if err := rows.Scan(&d.ID, &d.UserID, &d.EntryDate, &d.Content, &d.PhotoURL, &d.CreatedAt, &d.UpdatedAt); err != nil {
			log.Error("failed to scan diary row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		diaries = append(diaries, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return diaries, nil
}

// Update implements store.DiaryStore.Update
// Returns store.ErrDiaryNotFound if the entry does not exist.
func (s *PostgresDiaryStore) Update(ctx context.Context, diary *domain.Diary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := diary.Validate(); err != nil {
		log.Warn("diary validation failed during update",
			slog.String("error", err.Error()),
			slog.String("diary_id", diary.ID.String()))
		return err
	}

	query := `
		UPDATE diaries
		SET entry_date = $2, content = $3, photo_url = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		diary.ID,
		diary.EntryDate,
		diary.Content,
		diary.PhotoURL,
		diary.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update diary entry",
			slog.String("error", err.Error()),
			slog.String("diary_id", diary.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return store.ErrDiaryNotFound
	}

	log.Debug("diary entry updated", slog.String("diary_id", diary.ID.String()))
	return nil
}

// Delete implements store.DiaryStore.Delete
// Returns store.ErrDiaryNotFound if the entry does not exist.
func (s *PostgresDiaryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM diaries
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete diary entry",
			slog.String("error", err.Error()),
			slog.String("diary_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		log.Debug("diary entry not found for delete", slog.String("diary_id", id.String()))
		return store.ErrDiaryNotFound
	}

	log.Info("diary entry deleted", slog.String("diary_id", id.String()))
	return nil
}
