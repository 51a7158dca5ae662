package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"spendbook-server/src/auth"
	db "spendbook-server/src/db/sql"
	"spendbook-server/src/models"
	"spendbook-server/src/util"
)

func Register(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Password  string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}
		if !util.ValidateName(req.FirstName) || !util.ValidateName(req.LastName) {
			log.Printf("ERROR: Name validation failed during registration - Email: %s", req.Email)
			http.Error(w, "first and last name must be between 1 and 30 characters", http.StatusBadRequest)
			return
		}
		if req.Password == "" {
			http.Error(w, "password is required", http.StatusBadRequest)
			return
		}

		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		user, err := users.CreateUser(r.Context(), req.FirstName, req.LastName, req.Email, passwordHash)
		if err != nil {
			if errors.Is(err, db.ErrDuplicateEmail) {
				log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
				http.Error(w, "email already registered", http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful registration - Email: %s, ID: %d", user.Email, user.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}
}

func Login(users UserStore, tm *auth.TokenManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			log.Printf("ERROR: Failed to parse login form: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		username := strings.ToLower(strings.TrimSpace(r.PostFormValue("username")))
		password := r.PostFormValue("password")

		user, err := users.GetUserByEmail(r.Context(), username)
		if err != nil {
			log.Printf("ERROR: Failed login attempt for %s from IP %s", username, r.RemoteAddr)
			loginFailed(w)
			return
		}

		if !auth.CheckPassword(password, user.PasswordHash) {
			log.Printf("ERROR: Failed login attempt for %s from IP %s", username, r.RemoteAddr)
			loginFailed(w)
			return
		}

		token, err := tm.Issue(user.Email)
		if err != nil {
			log.Printf("ERROR: Failed to issue token for %s: %v", user.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful login - Email: %s, ID: %d", user.Email, user.ID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}

// loginFailed sends the same response for an unknown email and a wrong
// password, so login attempts cannot probe which emails are registered.
func loginFailed(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "incorrect username or password", http.StatusUnauthorized)
}
