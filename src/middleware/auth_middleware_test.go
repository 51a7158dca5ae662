package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendbook-server/src/auth"
	db "spendbook-server/src/db/sql"
	"spendbook-server/src/models"
)

type stubUserFinder struct {
	users map[string]*models.User
}

func (s *stubUserFinder) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func newGuardedHandler(t *testing.T, tm *auth.TokenManager, finder UserFinder) http.Handler {
	t.Helper()
	return JWTAuthMiddleware(tm, finder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value("user_id").(int64)
		require.True(t, ok, "user_id missing from context")
		email, ok := r.Context().Value("email").(string)
		require.True(t, ok, "email missing from context")
		assert.Equal(t, int64(7), userID)
		assert.Equal(t, "a@x.com", email)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30*time.Minute)
	finder := &stubUserFinder{users: map[string]*models.User{
		"a@x.com": {ID: 7, Email: "a@x.com"},
	}}

	token, err := tm.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	newGuardedHandler(t, tm, finder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddlewareRejections(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 30*time.Minute)
	finder := &stubUserFinder{users: map[string]*models.User{
		"a@x.com": {ID: 7, Email: "a@x.com"},
	}}

	expiredToken, err := auth.NewTokenManager("test-secret", -time.Minute).Issue("a@x.com")
	require.NoError(t, err)
	foreignToken, err := auth.NewTokenManager("other-secret", 30*time.Minute).Issue("a@x.com")
	require.NoError(t, err)
	vanishedToken, err := tm.Issue("gone@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbled token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expiredToken},
		{"wrong secret", "Bearer " + foreignToken},
		{"user no longer exists", "Bearer " + vanishedToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler := JWTAuthMiddleware(tm, finder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run")
			}))
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, ok := ParseBearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	req.Header.Set("Authorization", "abc.def.ghi")
	_, ok = ParseBearerToken(req)
	assert.False(t, ok)
}
