package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common diary validation errors
var (
	ErrEmptyDiaryID   = errors.New("diary ID cannot be empty")
	ErrEmptyDiaryUser = errors.New("diary user cannot be empty")
	ErrEmptyDiaryDate = errors.New("diary entry date cannot be empty")
)

// Diary is one dated journal entry owned by a user. Content and the
// photo URL are both optional; an entry with only a date is valid.
type Diary struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EntryDate time.Time `json:"entry_date"`
	Content   string    `json:"content"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDiary creates a new Diary entry for the given user.
func NewDiary(userID uuid.UUID, entryDate time.Time, content, photoURL string) (*Diary, error) {
	now := time.Now().UTC()
	diary := &Diary{
		ID:        uuid.New(),
		UserID:    userID,
		EntryDate: entryDate,
		Content:   content,
		PhotoURL:  photoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := diary.Validate(); err != nil {
		return nil, err
	}

	return diary, nil
}

// Validate checks if the Diary has valid data.
func (d *Diary) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDiaryID
	}
	if d.UserID == uuid.Nil {
		return ErrEmptyDiaryUser
	}
	if d.EntryDate.IsZero() {
		return ErrEmptyDiaryDate
	}
	return nil
}
