package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier returns fixed claims or a fixed error.
type stubVerifier struct {
	claims *domain.TokenClaims
	err    error
}

func (s stubVerifier) Verify(token string) (*domain.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func claimsCapturingHandler(called *bool, captured **domain.TokenClaims) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			*captured = claims
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifier   stubVerifier
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			verifier:   stubVerifier{claims: &domain.TokenClaims{UserID: 2, Username: "alice"}},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "missing header",
			authHeader: "",
			verifier:   stubVerifier{claims: &domain.TokenClaims{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwdw==",
			verifier:   stubVerifier{claims: &domain.TokenClaims{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer   ",
			verifier:   stubVerifier{claims: &domain.TokenClaims{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects",
			authHeader: "Bearer bad-token",
			verifier:   stubVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var captured *domain.TokenClaims
			handler := RequireAuth(tt.verifier)(claimsCapturingHandler(&called, &captured))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				require.NotNil(t, captured)
				assert.Equal(t, int64(2), captured.UserID)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		var called bool
		var captured *domain.TokenClaims
		verifier := stubVerifier{claims: &domain.TokenClaims{UserID: 1, Username: "root", Admin: true}}
		handler := RequireAdmin(verifier)(claimsCapturingHandler(&called, &captured))

		r := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		r.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured)
		assert.True(t, captured.Admin)
	})

	t.Run("authenticated non-admin gets 403", func(t *testing.T) {
		var called bool
		var captured *domain.TokenClaims
		verifier := stubVerifier{claims: &domain.TokenClaims{UserID: 2, Username: "alice"}}
		handler := RequireAdmin(verifier)(claimsCapturingHandler(&called, &captured))

		r := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		r.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, called)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		var called bool
		var captured *domain.TokenClaims
		handler := RequireAdmin(stubVerifier{})(claimsCapturingHandler(&called, &captured))

		r := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("valid token sets claims", func(t *testing.T) {
		var called bool
		var captured *domain.TokenClaims
		verifier := stubVerifier{claims: &domain.TokenClaims{UserID: 2, Username: "alice"}}
		handler := OptionalAuth(verifier)(claimsCapturingHandler(&called, &captured))

		r := httptest.NewRequest(http.MethodGet, "/events/go-meetup", nil)
		r.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "alice", captured.Username)
	})

	t.Run("no token passes through anonymously", func(t *testing.T) {
		var called bool
		var captured *domain.TokenClaims
		handler := OptionalAuth(stubVerifier{})(claimsCapturingHandler(&called, &captured))

		r := httptest.NewRequest(http.MethodGet, "/events/go-meetup", nil)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Nil(t, captured)
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		var called bool
		var captured *domain.TokenClaims
		verifier := stubVerifier{err: errors.New("expired")}
		handler := OptionalAuth(verifier)(claimsCapturingHandler(&called, &captured))

		r := httptest.NewRequest(http.MethodGet, "/events/go-meetup", nil)
		r.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Nil(t, captured)
	})
}
