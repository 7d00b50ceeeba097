// Package session holds the transient per-user exercise-selection and
// active-session state between the "choose exercises" step and the
// "start workout" step. The state is purely in-memory: it is cleared on
// process restart and safe to lose. The selector is an injectable
// component, never a package-level singleton.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Selector manages per-user selection and session state. All methods are
// safe for concurrent use; operations for one user never block on
// another user's state beyond the shared map locks.
type Selector struct {
	mu         sync.RWMutex
	selections map[uuid.UUID][]uuid.UUID
	sessions   map[uuid.UUID]uuid.UUID
}

// NewSelector creates an empty Selector.
func NewSelector() *Selector {
	return &Selector{
		selections: make(map[uuid.UUID][]uuid.UUID),
		sessions:   make(map[uuid.UUID]uuid.UUID),
	}
}

// StoreSelection replaces the user's current selection atomically.
// Last write wins; there is no merging. An empty list clears the
// selection - callers at the API boundary reject empty lists as a user
// error before reaching this component.
func (s *Selector) StoreSelection(userID uuid.UUID, exerciseIDs []uuid.UUID) {
	ids := make([]uuid.UUID, len(exerciseIDs))
	copy(ids, exerciseIDs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[userID] = ids
}

// GetSelection returns the user's current selection, or an empty slice
// if none exists. The returned slice is a copy; mutating it does not
// affect the stored selection.
func (s *Selector) GetSelection(userID uuid.UUID) []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.selections[userID]
	if !ok {
		return []uuid.UUID{}
	}
	ids := make([]uuid.UUID, len(stored))
	copy(ids, stored)
	return ids
}

// ClearSelection removes the user's selection and any active session.
// Idempotent: clearing an absent selection is a no-op.
func (s *Selector) ClearSelection(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, userID)
	delete(s.sessions, userID)
}

// StartSession generates a fresh opaque session id for the user and
// returns it. Starting while a session is already active replaces it,
// silently abandoning the old id; no downstream call validates session
// ids across restarts. Whether a selection exists is the caller's
// concern.
func (s *Selector) StartSession(userID uuid.UUID) uuid.UUID {
	sessionID := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sessionID
	return sessionID
}

// GetSession returns the user's active session id and whether one exists.
func (s *Selector) GetSession(userID uuid.UUID) (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessionID, ok := s.sessions[userID]
	return sessionID, ok
}
