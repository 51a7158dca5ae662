package models

import "github.com/shopspring/decimal"

// Transaction belongs to a category, and both carry the id of the owning
// user. Amounts are fixed-point decimals so cents never drift.
type Transaction struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"category_id"`
	UserID          int64           `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	TransactionDate Date            `json:"transaction_date"`
}
