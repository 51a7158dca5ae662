package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"spendbook-server/src/models"
)

// setupStore starts a throwaway Postgres with the real schema applied.
// Requires a local Docker daemon; skipped in -short runs.
func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test: requires docker")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithInitScripts(filepath.Join("..", "schema.sql")),
		tcpostgres.WithDatabase("spendbook_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewStore(pool)
}

func mustCreateUser(t *testing.T, store *Store, email string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), "Test", "User", email, "digest")
	require.NoError(t, err)
	return user
}

func TestStoreUserLifecycle(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created := mustCreateUser(t, store, "a@x.com")
	assert.NotZero(t, created.ID)

	fetched, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "digest", string(fetched.PasswordHash))

	_, err = store.GetUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// The unique constraint, not error-string matching, rejects reuse.
	_, err = store.CreateUser(ctx, "Other", "User", "a@x.com", "digest2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestStoreCategoryOwnership(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@x.com")
	bob := mustCreateUser(t, store, "bob@x.com")

	category, err := store.CreateCategory(ctx, alice.ID, "Food", nil)
	require.NoError(t, err)

	// Reads are owner-scoped.
	_, err = store.GetCategory(ctx, bob.ID, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Mutations re-verify ownership and leave the record untouched.
	_, err = store.UpdateCategory(ctx, bob.ID, category.ID, "Hijacked", nil)
	assert.ErrorIs(t, err, ErrNotFound)
	err = store.DeleteCategory(ctx, bob.ID, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	kept, err := store.GetCategory(ctx, alice.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", kept.Title)

	updated, err := store.UpdateCategory(ctx, alice.ID, category.ID, "Dining", strPtr("eating out"))
	require.NoError(t, err)
	assert.Equal(t, "Dining", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "eating out", *updated.Description)
}

func TestStoreTransactionOwnershipChain(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@x.com")
	bob := mustCreateUser(t, store, "bob@x.com")

	category, err := store.CreateCategory(ctx, alice.ID, "Food", nil)
	require.NoError(t, err)

	amount := decimal.RequireFromString("12.50")
	date := models.NewDate(2026, time.September, 1)

	// Creating under someone else's category is a not-found, and
	// nothing is inserted.
	_, err = store.CreateTransaction(ctx, bob.ID, category.ID, amount, "sneaky", date)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := store.CreateTransaction(ctx, alice.ID, category.ID, amount, "lunch", date)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	list, err := store.ListTransactions(ctx, alice.ID, category.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(amount), "got %s", list[0].Amount)
	assert.Equal(t, "2026-09-01", list[0].TransactionDate.Format("2006-01-02"))

	listForBob, err := store.ListTransactions(ctx, bob.ID, category.ID)
	require.NoError(t, err)
	assert.Empty(t, listForBob)

	_, err = store.UpdateTransaction(ctx, bob.ID, category.ID, created.ID, amount, "tampered", date)
	assert.ErrorIs(t, err, ErrNotFound)
	err = store.DeleteTransaction(ctx, bob.ID, category.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	kept, err := store.GetTransaction(ctx, alice.ID, category.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lunch", kept.Note)
}

func TestStoreDeleteCategoryCascades(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice@x.com")
	category, err := store.CreateCategory(ctx, alice.ID, "Food", nil)
	require.NoError(t, err)

	date := models.NewDate(2026, time.September, 1)
	_, err = store.CreateTransaction(ctx, alice.ID, category.ID, decimal.RequireFromString("5.00"), "coffee", date)
	require.NoError(t, err)

	// The schema has no ON DELETE CASCADE, so a plain delete would
	// fail on the FK; the store removes dependents explicitly.
	require.NoError(t, store.DeleteCategory(ctx, alice.ID, category.ID))

	_, err = store.GetCategory(ctx, alice.ID, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := store.ListTransactions(ctx, alice.ID, category.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func strPtr(s string) *string { return &s }
