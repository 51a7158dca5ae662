package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else. Callers cannot tell the two apart, so record ids
	// cannot be enumerated by guessing.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail = errors.New("email already registered")
	ErrForeignKey     = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Store runs all SQL against a shared pgx pool. Every query on
// categories and transactions filters by the owning user id, and every
// mutation re-verifies ownership in the same statement or transaction.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// classify maps Postgres constraint violations onto the store's
// sentinel errors so handlers never inspect SQLSTATE codes.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateEmail
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}
