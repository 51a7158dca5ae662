package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"spendbook-server/src/models"
)

// Handlers depend on these narrow store interfaces rather than the pgx
// pool, so tests can swap in in-memory fakes. The SQL store implements
// all three; every method takes the authenticated owner's id and treats
// records owned by anyone else as absent.

type UserStore interface {
	CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context, userID int64) ([]models.Category, error)
	GetCategory(ctx context.Context, userID, categoryID int64) (*models.Category, error)
	CreateCategory(ctx context.Context, userID int64, title string, description *string) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID int64, title string, description *string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

type TransactionStore interface {
	ListTransactions(ctx context.Context, userID, categoryID int64) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, userID, categoryID, transactionID int64) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, userID, categoryID int64, amount decimal.Decimal, note string, date models.Date) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, categoryID, transactionID int64, amount decimal.Decimal, note string, date models.Date) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, categoryID, transactionID int64) error
}
