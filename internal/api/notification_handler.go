package api

import (
	"net/http"

	"github.com/bdimitrov/fittrack-api/internal/api/shared"
	"github.com/bdimitrov/fittrack-api/internal/service"
)

// NotificationHandler proxies the notification service's per-user
// preference and history endpoints.
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// GetPreference handles GET /notifications/preference.
func (h *NotificationHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	pref, err := h.notifications.GetPreference(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load notification preference")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NotificationPreferenceResponse{
		Enabled:     pref.Enabled,
		ContactInfo: pref.ContactInfo,
	})
}

// UpdatePreference handles PUT /notifications/preference.
func (h *NotificationHandler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdatePreferenceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.notifications.UpdatePreference(r.Context(), userID, req.Enabled); err != nil {
		HandleAPIError(w, r, err, "Failed to update notification preference")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NotificationPreferenceResponse{Enabled: req.Enabled})
}

// GetHistory handles GET /notifications/history, returning the user's
// most recent notifications, newest first.
func (h *NotificationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.notifications.GetHistory(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load notification history")
		return
	}

	out := make([]NotificationHistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, NotificationHistoryEntry{
			Subject:   e.Subject,
			Body:      e.Body,
			CreatedOn: e.CreatedOn,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
