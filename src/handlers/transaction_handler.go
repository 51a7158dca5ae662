package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	db "spendbook-server/src/db/sql"
	"spendbook-server/src/models"
	"spendbook-server/src/util"
)

func ListTransactions(transactions TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}

		list, err := transactions.ListTransactions(r.Context(), userID, categoryID)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions in category %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []models.Transaction{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}
}

func GetTransaction(transactions TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}
		transactionID, ok := parseIDParam(w, r, "transaction_id")
		if !ok {
			return
		}

		transaction, err := transactions.GetTransaction(r.Context(), userID, categoryID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to get transaction %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transaction)
	}
}

func CreateTransaction(transactions TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}

		req, ok := decodeTransactionRequest(w, r)
		if !ok {
			return
		}

		transaction, err := transactions.CreateTransaction(r.Context(), userID, categoryID, req.Amount, req.Note, req.TransactionDate)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "category not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, db.ErrForeignKey) {
				http.Error(w, "category or owner does not exist", http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: Failed to create transaction in category %d for user %d: %v", categoryID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Created transaction %d in category %d for user %d", transaction.ID, categoryID, userID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transaction)
	}
}

func UpdateTransaction(transactions TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}
		transactionID, ok := parseIDParam(w, r, "transaction_id")
		if !ok {
			return
		}

		req, ok := decodeTransactionRequest(w, r)
		if !ok {
			return
		}

		transaction, err := transactions.UpdateTransaction(r.Context(), userID, categoryID, transactionID, req.Amount, req.Note, req.TransactionDate)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to update transaction %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transaction)
	}
}

func DeleteTransaction(transactions TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)
		categoryID, ok := parseIDParam(w, r, "category_id")
		if !ok {
			return
		}
		transactionID, ok := parseIDParam(w, r, "transaction_id")
		if !ok {
			return
		}

		err := transactions.DeleteTransaction(r.Context(), userID, categoryID, transactionID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				http.Error(w, "transaction not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to delete transaction %d for user %d: %v", transactionID, userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Deleted transaction %d in category %d for user %d", transactionID, categoryID, userID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "transaction deleted successfully",
		})
	}
}

type transactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	TransactionDate models.Date     `json:"transaction_date"`
}

func decodeTransactionRequest(w http.ResponseWriter, r *http.Request) (transactionRequest, bool) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Failed to decode transaction request body: %v", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return req, false
	}
	if req.Amount.Exponent() < -2 {
		http.Error(w, "amount must have at most 2 decimal places", http.StatusBadRequest)
		return req, false
	}
	if !util.ValidateNote(req.Note) {
		http.Error(w, "note must be between 1 and 30 characters", http.StatusBadRequest)
		return req, false
	}
	if req.TransactionDate.IsZero() {
		http.Error(w, "transaction_date is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}
