package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("carries the trace ID", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		r = r.WithContext(SetTraceID(r.Context()))
		expectedTrace := GetTraceID(r.Context())

		w := httptest.NewRecorder()
		RespondWithError(w, r, http.StatusNotFound, "Workout not found")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Workout not found", resp.Error)
		assert.Equal(t, expectedTrace, resp.TraceID)
	})

	t.Run("status code is never serialized", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		RespondWithError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "nope")

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "code")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	t.Run("raw error stays out of the body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
		internalErr := errors.New("dial tcp 10.0.0.5:5432: connection refused")

		w := httptest.NewRecorder()
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", internalErr)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
		assert.Contains(t, w.Body.String(), "An unexpected error occurred")
	})

	t.Run("nil error is tolerated", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		RespondWithErrorAndLog(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "Invalid request data", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type shape struct {
		Name string `validate:"required"`
	}

	t.Run("tag validation", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, ValidateRequest(shape{}))
		assert.NoError(t, ValidateRequest(shape{Name: "bench"}))
	})

	t.Run("custom Validate method wins", func(t *testing.T) {
		t.Parallel()
		assert.ErrorContains(t, ValidateRequest(selfValidating{}), "always invalid")
	})
}

type selfValidating struct{}

func (selfValidating) Validate() error { return errors.New("always invalid") }
