package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"spendbook-server/src/models"
)

func (s *Store) ListTransactions(ctx context.Context, userID, categoryID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, category_id, user_id, amount, note, transaction_date
		FROM transactions
		WHERE user_id = $1 AND category_id = $2
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query, userID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.CategoryID, &t.UserID, &t.Amount, &t.Note, &t.TransactionDate)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *Store) GetTransaction(ctx context.Context, userID, categoryID, transactionID int64) (*models.Transaction, error) {
	query := `
		SELECT id, category_id, user_id, amount, note, transaction_date
		FROM transactions
		WHERE id = $1 AND category_id = $2 AND user_id = $3
	`
	var t models.Transaction
	err := s.pool.QueryRow(ctx, query, transactionID, categoryID, userID).
		Scan(&t.ID, &t.CategoryID, &t.UserID, &t.Amount, &t.Note, &t.TransactionDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// CreateTransaction checks that the target category belongs to the
// caller and inserts the row inside one database transaction, so the
// category cannot change hands between the check and the insert.
func (s *Store) CreateTransaction(ctx context.Context, userID, categoryID int64, amount decimal.Decimal, note string, date models.Date) (*models.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var owned bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID,
	).Scan(&owned)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotFound
	}

	t := models.Transaction{
		CategoryID:      categoryID,
		UserID:          userID,
		Amount:          amount,
		Note:            note,
		TransactionDate: date,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (category_id, user_id, amount, note, transaction_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		categoryID, userID, amount, note, date,
	).Scan(&t.ID)
	if err != nil {
		return nil, classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, userID, categoryID, transactionID int64, amount decimal.Decimal, note string, date models.Date) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET amount = $1, note = $2, transaction_date = $3
		WHERE id = $4 AND category_id = $5 AND user_id = $6
		RETURNING id, category_id, user_id, amount, note, transaction_date
	`
	var t models.Transaction
	err := s.pool.QueryRow(ctx, query, amount, note, date, transactionID, categoryID, userID).
		Scan(&t.ID, &t.CategoryID, &t.UserID, &t.Amount, &t.Note, &t.TransactionDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, categoryID, transactionID int64) error {
	query := `DELETE FROM transactions WHERE id = $1 AND category_id = $2 AND user_id = $3`
	cmd, err := s.pool.Exec(ctx, query, transactionID, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
