package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"spendbook-server/src/models"
)

func (s *Store) CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: []byte(passwordHash),
	}
	err := s.pool.QueryRow(ctx, query, firstName, lastName, email, passwordHash).Scan(&user.ID)
	if err != nil {
		return nil, classify(err)
	}

	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := cachedUser(email); ok {
		return user, nil
	}

	query := `
		SELECT id, first_name, last_name, email, password_hash
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}

	cacheUser(&user)
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash
		FROM users
		ORDER BY id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
