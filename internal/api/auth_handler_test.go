package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planloop/planloop-api/internal/domain"
	"github.com/planloop/planloop-api/internal/mocks"
	"github.com/planloop/planloop-api/internal/service/auth"
)

// postJSON builds a request with the given JSON payload.
func postJSON(t *testing.T, target string, payload interface{}) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password1234567",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"password": "password1234567",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "test2@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing email",
			payload: map[string]interface{}{
				"password": "password1234567",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userStore := mocks.NewMockUserStore()
			jwtService := &mocks.MockJWTService{Token: "test-token", RefreshToken: "test-refresh"}
			handler := NewAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{ShouldSucceed: true})

			rr := httptest.NewRecorder()
			handler.Register(rr, postJSON(t, "/api/auth/register", tt.payload))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantToken {
				var resp AuthResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "test-token", resp.AccessToken)
				assert.Equal(t, "test-refresh", resp.RefreshToken)
				assert.NotEqual(t, uuid.Nil, resp.UserID)
			}
		})
	}

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		jwtService := &mocks.MockJWTService{Token: "test-token"}
		handler := NewAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{ShouldSucceed: true})

		payload := map[string]interface{}{
			"email":    "dup@example.com",
			"password": "password1234567",
		}

		rr := httptest.NewRecorder()
		handler.Register(rr, postJSON(t, "/api/auth/register", payload))
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = httptest.NewRecorder()
		handler.Register(rr, postJSON(t, "/api/auth/register", payload))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	seedUser := func(t *testing.T, userStore *mocks.MockUserStore) *domain.User {
		t.Helper()
		user, err := domain.NewUser("owner@example.com", "password1234567")
		require.NoError(t, err)
		user.HashedPassword = "hashed:password1234567"
		userStore.Users[user.Email] = user
		return user
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user := seedUser(t, userStore)
		jwtService := &mocks.MockJWTService{Token: "test-token", RefreshToken: "test-refresh"}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		handler := NewAuthHandler(userStore, jwtService, verifier)

		rr := httptest.NewRecorder()
		handler.Login(rr, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    user.Email,
			"password": "password1234567",
		}))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, 1, verifier.CompareCallCount)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user := seedUser(t, userStore)
		handler := NewAuthHandler(userStore,
			&mocks.MockJWTService{Token: "test-token"},
			&mocks.MockPasswordVerifier{ShouldSucceed: false})

		rr := httptest.NewRecorder()
		handler.Login(rr, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    user.Email,
			"password": "wrong",
		}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(mocks.NewMockUserStore(),
			&mocks.MockJWTService{Token: "test-token"},
			&mocks.MockPasswordVerifier{ShouldSucceed: true})

		rr := httptest.NewRecorder()
		handler.Login(rr, postJSON(t, "/api/auth/login", map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "password1234567",
		}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code,
			"unknown email is indistinguishable from a wrong password")
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid refresh token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			Token:        "new-access",
			RefreshToken: "new-refresh",
			Claims:       &auth.Claims{UserID: userID, TokenType: "refresh"},
		}
		handler := NewAuthHandler(mocks.NewMockUserStore(), jwtService,
			&mocks.MockPasswordVerifier{ShouldSucceed: true})

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, postJSON(t, "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "old-refresh",
		}))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "new-access", resp.AccessToken)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		handler := NewAuthHandler(mocks.NewMockUserStore(), jwtService,
			&mocks.MockPasswordVerifier{ShouldSucceed: true})

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, postJSON(t, "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "stale",
		}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(mocks.NewMockUserStore(),
			&mocks.MockJWTService{},
			&mocks.MockPasswordVerifier{ShouldSucceed: true})

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, postJSON(t, "/api/auth/refresh", map[string]interface{}{}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
