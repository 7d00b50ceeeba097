package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Preference is a user's delivery preference as held by the external
// notification service.
type Preference struct {
	Enabled     bool   `json:"enabled"`
	ContactInfo string `json:"contact_info"`
}

// UpsertPreference creates or replaces a user's delivery preference.
type UpsertPreference struct {
	UserID      uuid.UUID `json:"user_id"`
	ContactInfo string    `json:"contact_info"`
	Enabled     bool      `json:"enabled"`
}

// HistoryEntry is one notification previously delivered to a user.
type HistoryEntry struct {
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
}

// Client is the full notification service surface: message delivery
// plus the per-user preference and history endpoints.
type Client interface {
	Sink

	// SavePreference creates or replaces the user's preference.
	SavePreference(ctx context.Context, pref UpsertPreference) error

	// GetPreference fetches the user's current preference.
	GetPreference(ctx context.Context, userID uuid.UUID) (*Preference, error)

	// History lists the notifications previously sent to the user.
	History(ctx context.Context, userID uuid.UUID) ([]HistoryEntry, error)

	// UpdatePreference toggles the user's enabled flag.
	UpdatePreference(ctx context.Context, userID uuid.UUID, enabled bool) error
}
