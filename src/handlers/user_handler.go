package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"spendbook-server/src/models"
)

// GetAllUsers lists every registered user. The route sits behind the
// auth middleware; password hashes are excluded by the model's JSON
// tags.
func GetAllUsers(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.ListUsers(r.Context())
		if err != nil {
			log.Printf("ERROR: Failed to list users: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []models.User{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}
