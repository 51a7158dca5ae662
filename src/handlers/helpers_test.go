package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"spendbook-server/src/models"
)

// asUser injects the authenticated identity the way the auth middleware
// does, so handlers can be exercised without minting tokens.
func asUser(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(store *MockStore, userID int64) *chi.Mux {
	r := chi.NewRouter()
	r.Use(asUser(userID))
	r.Get("/api/categories/", ListCategories(store))
	r.Post("/api/categories/", CreateCategory(store))
	r.Get("/api/categories/{category_id}", GetCategory(store))
	r.Put("/api/categories/{category_id}", UpdateCategory(store))
	r.Delete("/api/categories/{category_id}", DeleteCategory(store))
	r.Get("/api/categories/{category_id}/transactions/", ListTransactions(store))
	r.Post("/api/categories/{category_id}/transactions/", CreateTransaction(store))
	r.Get("/api/categories/{category_id}/transactions/{transaction_id}", GetTransaction(store))
	r.Put("/api/categories/{category_id}/transactions/{transaction_id}", UpdateTransaction(store))
	r.Delete("/api/categories/{category_id}/transactions/{transaction_id}", DeleteTransaction(store))
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}

func seedUser(t *testing.T, store *MockStore, email string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), "Test", "User", email, "$2a$10$fakefakefakefakefakefake")
	require.NoError(t, err)
	return user
}
