package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"spendbook-server/src/models"
)

func (s *Store) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	query := `
		SELECT id, user_id, title, description
		FROM categories
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, userID, categoryID int64) (*models.Category, error) {
	query := `
		SELECT id, user_id, title, description
		FROM categories
		WHERE id = $1 AND user_id = $2
	`
	var c models.Category
	err := s.pool.QueryRow(ctx, query, categoryID, userID).
		Scan(&c.ID, &c.UserID, &c.Title, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, userID int64, title string, description *string) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, description
	`
	var c models.Category
	err := s.pool.QueryRow(ctx, query, userID, title, description).
		Scan(&c.ID, &c.UserID, &c.Title, &c.Description)
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

// UpdateCategory re-verifies ownership in the same statement that
// mutates, so a category belonging to another user reads as not found
// and is left untouched.
func (s *Store) UpdateCategory(ctx context.Context, userID, categoryID int64, title string, description *string) (*models.Category, error) {
	query := `
		UPDATE categories
		SET title = $1, description = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, description
	`
	var c models.Category
	err := s.pool.QueryRow(ctx, query, title, description, categoryID, userID).
		Scan(&c.ID, &c.UserID, &c.Title, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteCategory removes the category and its transactions in one
// database transaction. The cascade is explicit; the schema declares no
// ON DELETE CASCADE.
func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM transactions WHERE category_id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
