package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdimitrov/fittrack-api/internal/api/shared"
	"github.com/bdimitrov/fittrack-api/internal/domain"
	"github.com/bdimitrov/fittrack-api/internal/service/auth"
	"github.com/bdimitrov/fittrack-api/internal/store"
)

func postJSON(target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	validBody := RegisterRequest{
		Username: "ironfan",
		Email:    "ironfan@example.com",
		Password: "longenoughpassword",
	}

	t.Run("registers and returns a token", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		users := &MockUserService{
			RegisterFn: func(_ context.Context, username, email, _ string) (*domain.User, error) {
				assert.Equal(t, "ironfan", username)
				assert.Equal(t, "ironfan@example.com", email)
				return &domain.User{ID: userID, Username: username, Email: email}, nil
			},
		}
		jwtService := &MockJWTService{
			GenerateTokenFn: func(_ context.Context, id uuid.UUID) (string, error) {
				return "token-for-" + id.String(), nil
			},
		}
		h := NewAuthHandler(users, jwtService)

		w := httptest.NewRecorder()
		h.Register(w, postJSON("/api/auth/register", validBody))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "token-for-"+userID.String(), resp.Token)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			body RegisterRequest
		}{
			{name: "short username", body: RegisterRequest{Username: "ab", Email: "a@b.com", Password: "longenoughpassword"}},
			{name: "bad email", body: RegisterRequest{Username: "ironfan", Email: "not-an-email", Password: "longenoughpassword"}},
			{name: "short password", body: RegisterRequest{Username: "ironfan", Email: "a@b.com", Password: "short"}},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				h := NewAuthHandler(&MockUserService{}, &MockJWTService{})

				w := httptest.NewRecorder()
				h.Register(w, postJSON("/api/auth/register", tc.body))

				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		t.Parallel()

		users := &MockUserService{
			RegisterFn: func(context.Context, string, string, string) (*domain.User, error) {
				return nil, fmt.Errorf("%w: ironfan", store.ErrUsernameExists)
			},
		}
		h := NewAuthHandler(users, &MockJWTService{})

		w := httptest.NewRecorder()
		h.Register(w, postJSON("/api/auth/register", validBody))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		h := NewAuthHandler(&MockUserService{}, &MockJWTService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
		h.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid request format", resp.Error)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	validBody := LoginRequest{Username: "ironfan", Password: "longenoughpassword"}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		users := &MockUserService{
			AuthenticateFn: func(_ context.Context, username, password string) (*domain.User, error) {
				assert.Equal(t, "ironfan", username)
				assert.Equal(t, "longenoughpassword", password)
				return &domain.User{ID: userID, Username: username}, nil
			},
		}
		h := NewAuthHandler(users, &MockJWTService{})

		w := httptest.NewRecorder()
		h.Login(w, postJSON("/api/auth/login", validBody))

		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "test-token", resp.Token)
	})

	t.Run("bad credentials map to unauthorized", func(t *testing.T) {
		t.Parallel()

		users := &MockUserService{
			AuthenticateFn: func(context.Context, string, string) (*domain.User, error) {
				return nil, auth.ErrInvalidCredentials
			},
		}
		h := NewAuthHandler(users, &MockJWTService{})

		w := httptest.NewRecorder()
		h.Login(w, postJSON("/api/auth/login", validBody))

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid username or password", resp.Error)
	})

	t.Run("token generation failure", func(t *testing.T) {
		t.Parallel()

		users := &MockUserService{
			AuthenticateFn: func(context.Context, string, string) (*domain.User, error) {
				return &domain.User{ID: uuid.New()}, nil
			},
		}
		jwtService := &MockJWTService{
			GenerateTokenFn: func(context.Context, uuid.UUID) (string, error) {
				return "", fmt.Errorf("signing key unavailable")
			},
		}
		h := NewAuthHandler(users, jwtService)

		w := httptest.NewRecorder()
		h.Login(w, postJSON("/api/auth/login", validBody))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
