package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bdimitrov/fittrack-api/internal/config"
	"github.com/bdimitrov/fittrack-api/internal/platform/logger"
)

// defaultFailureMessage is used when the configuration carries none.
const defaultFailureMessage = "Notification service is currently unavailable."

// HTTPClient is a Client implementation that talks JSON over HTTP to
// the external notification service.
type HTTPClient struct {
	baseURL        string
	failureMessage string
	client         *http.Client
	logger         *slog.Logger
}

// Ensure HTTPClient implements Client interface
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a notification client from configuration.
// If logger is nil, a default logger will be used.
func NewHTTPClient(cfg config.NotificationConfig, log *slog.Logger) *HTTPClient {
	if log == nil {
		log = slog.Default()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	failureMessage := cfg.FailureMessage
	if failureMessage == "" {
		failureMessage = defaultFailureMessage
	}

	return &HTTPClient{
		baseURL:        cfg.ServiceURL,
		failureMessage: failureMessage,
		client:         &http.Client{Timeout: timeout},
		logger:         log.With(slog.String("component", "notification_client")),
	}
}

// Send implements Sink.Send. It POSTs the message to /api/notifications
// and treats any non-2xx response as a failure.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if c.baseURL == "" {
		// Delivery disabled by configuration; drop the message.
		log.Debug("notification service not configured, dropping message",
			slog.String("user_id", msg.UserID.String()))
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/notifications", body)
	if err != nil {
		log.Warn("notification request failed",
			slog.String("error", err.Error()),
			slog.String("user_id", msg.UserID.String()))
		return fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("notification service returned error",
			slog.Int("status", resp.StatusCode),
			slog.String("user_id", msg.UserID.String()))
		return fmt.Errorf("%s: status %d", c.failureMessage, resp.StatusCode)
	}

	log.Debug("notification delivered",
		slog.String("user_id", msg.UserID.String()),
		slog.String("subject", msg.Subject))
	return nil
}

// SavePreference implements Client.SavePreference via
// POST /api/notifications/preferences.
func (c *HTTPClient) SavePreference(ctx context.Context, pref UpsertPreference) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if c.baseURL == "" {
		log.Debug("notification service not configured, skipping preference save",
			slog.String("user_id", pref.UserID.String()))
		return nil
	}

	body, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("failed to marshal preference: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/notifications/preferences", body)
	if err != nil {
		return fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: status %d", c.failureMessage, resp.StatusCode)
	}

	log.Debug("preference saved", slog.String("user_id", pref.UserID.String()))
	return nil
}

// GetPreference implements Client.GetPreference via
// GET /api/notifications/preferences?userId=. With no service
// configured a disabled preference is returned.
func (c *HTTPClient) GetPreference(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	if c.baseURL == "" {
		return &Preference{Enabled: false}, nil
	}

	target := c.baseURL + "/api/notifications/preferences?userId=" + url.QueryEscape(userID.String())
	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: status %d", c.failureMessage, resp.StatusCode)
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	return &pref, nil
}

// History implements Client.History via GET /api/notifications?userId=.
// With no service configured an empty history is returned.
func (c *HTTPClient) History(ctx context.Context, userID uuid.UUID) ([]HistoryEntry, error) {
	if c.baseURL == "" {
		return []HistoryEntry{}, nil
	}

	target := c.baseURL + "/api/notifications?userId=" + url.QueryEscape(userID.String())
	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: status %d", c.failureMessage, resp.StatusCode)
	}

	var entries []HistoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	return entries, nil
}

// UpdatePreference implements Client.UpdatePreference via
// PUT /api/notifications/preferences?userId=&enabled=.
func (c *HTTPClient) UpdatePreference(ctx context.Context, userID uuid.UUID, enabled bool) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if c.baseURL == "" {
		log.Debug("notification service not configured, skipping preference update",
			slog.String("user_id", userID.String()))
		return nil
	}

	target := c.baseURL + "/api/notifications/preferences?userId=" +
		url.QueryEscape(userID.String()) + "&enabled=" + strconv.FormatBool(enabled)
	resp, err := c.do(ctx, http.MethodPut, target, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", c.failureMessage, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: status %d", c.failureMessage, resp.StatusCode)
	}

	log.Debug("preference updated",
		slog.String("user_id", userID.String()),
		slog.Bool("enabled", enabled))
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build notification request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
