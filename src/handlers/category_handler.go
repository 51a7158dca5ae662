package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	db "spendbook-server/src/db/sql"
	"spendbook-server/src/models"
	"spendbook-server/src/util"
)

// ListCategories returns the caller's categories in store order,
// sliced by the skip/limit query params after the owner-scoped fetch.
func ListCategories(categories CategoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		list, err := categories.ListCategories(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Failed to list categories for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		skip, limit := parsePaging(r)
		if skip > len(list) {
			skip = len(list)
		}
		end := skip + limit
		if end > len(list) {
			end = len(list)
		}
		page := list[skip:end]
		if page == nil {
			page = []models.Category{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(page)
	}
}

func GetCategory(categories CategoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}

		category, err := categories.GetCategory(r.Context(), userID, categoryID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to get category %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(category)
	}
}

func CreateCategory(categories CategoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		req, ok := decodeCategoryRequest(w, r)
		if !ok {
			return
		}

		category, err := categories.CreateCategory(r.Context(), userID, req.Title, req.Description)
		if err != nil {
			if errors.Is(err, db.ErrForeignKey) {
				http.Error(w, "owner does not exist", http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: Failed to create category for user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created category %d for user %d", category.ID, userID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(category)
	}
}

func UpdateCategory(categories CategoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}

		req, ok := decodeCategoryRequest(w, r)
		if !ok {
			return
		}

		category, err := categories.UpdateCategory(r.Context(), userID, categoryID, req.Title, req.Description)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update category %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(category)
	}
}

func DeleteCategory(categories CategoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}

		err := categories.DeleteCategory(r.Context(), userID, categoryID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete category %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Deleted category %d for user %d", categoryID, userID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "category deleted successfully",
		})
	}
}

type categoryRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func decodeCategoryRequest(w http.ResponseWriter, r *http.Request) (categoryRequest, bool) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Failed to decode category request body: %v", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return req, false
	}
	if !util.ValidateTitle(req.Title) {
		http.Error(w, "title must be between 1 and 30 characters", http.StatusBadRequest)
		return req, false
	}
	if !util.ValidateDescription(req.Description) {
		http.Error(w, "description must be at most 255 characters", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		log.Printf("ERROR: Invalid %s param: %s", name, raw)
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func parsePaging(r *http.Request) (int, int) {
	skip, limit := 0, 10
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}
	return skip, limit
}
