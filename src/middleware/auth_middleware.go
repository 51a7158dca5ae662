package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"spendbook-server/src/auth"
	db "spendbook-server/src/db/sql"
	"spendbook-server/src/models"
)

// UserFinder resolves a token subject to a stored user.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ParseBearerToken extracts the bearer token from the Authorization header.
func ParseBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", false
	}
	return token, true
}

// unauthorized rejects with the bearer challenge. The message never
// reveals whether the token or the user record was the problem.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, message, http.StatusUnauthorized)
}

// JWTAuthMiddleware validates the bearer token and resolves its subject
// to a stored user before any protected handler runs. Identity is
// re-derived from the token on every request; no session state is kept
// between requests.
func JWTAuthMiddleware(tm *auth.TokenManager, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := ParseBearerToken(r)
			if !ok {
				unauthorized(w, "missing token")
				return
			}

			email, err := tm.Validate(tokenString)
			if err != nil {
				unauthorized(w, "could not validate credentials")
				return
			}

			user, err := users.GetUserByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, db.ErrNotFound) {
					unauthorized(w, "could not validate credentials")
					return
				}
				log.Printf("ERROR: Failed to resolve token subject %s: %v", email, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", user.ID)
			ctx = context.WithValue(ctx, "email", user.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
