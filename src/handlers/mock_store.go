package handlers

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	db "spendbook-server/src/db/sql"
	"spendbook-server/src/models"
)

// MockStore is an in-memory implementation of the store interfaces for
// tests. It mirrors the SQL store's contract: records owned by another
// user are reported as not found, and deleting a category removes its
// transactions.
type MockStore struct {
	mu           sync.Mutex
	nextID       int64
	Users        map[int64]*models.User
	Categories   map[int64]*models.Category
	Transactions map[int64]*models.Transaction

	// ForcedErr, when set, is returned by every method.
	ForcedErr error
}

func NewMockStore() *MockStore {
	return &MockStore{
		Users:        make(map[int64]*models.User),
		Categories:   make(map[int64]*models.Category),
		Transactions: make(map[int64]*models.Transaction),
	}
}

func (m *MockStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *MockStore) CreateUser(_ context.Context, firstName, lastName, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	for _, u := range m.Users {
		if u.Email == email {
			return nil, db.ErrDuplicateEmail
		}
	}
	user := &models.User{
		ID:           m.id(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: []byte(passwordHash),
	}
	m.Users[user.ID] = user
	return user, nil
}

func (m *MockStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *MockStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	var users []models.User
	for _, u := range m.Users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockStore) ListCategories(_ context.Context, userID int64) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	var categories []models.Category
	for _, c := range m.Categories {
		if c.UserID == userID {
			categories = append(categories, *c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (m *MockStore) GetCategory(_ context.Context, userID, categoryID int64) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	c, ok := m.Categories[categoryID]
	if !ok || c.UserID != userID {
		return nil, db.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MockStore) CreateCategory(_ context.Context, userID int64, title string, description *string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	if _, ok := m.Users[userID]; !ok {
		return nil, db.ErrForeignKey
	}
	c := &models.Category{
		ID:          m.id(),
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	m.Categories[c.ID] = c
	copied := *c
	return &copied, nil
}

func (m *MockStore) UpdateCategory(_ context.Context, userID, categoryID int64, title string, description *string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	c, ok := m.Categories[categoryID]
	if !ok || c.UserID != userID {
		return nil, db.ErrNotFound
	}
	c.Title = title
	c.Description = description
	copied := *c
	return &copied, nil
}

func (m *MockStore) DeleteCategory(_ context.Context, userID, categoryID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	c, ok := m.Categories[categoryID]
	if !ok || c.UserID != userID {
		return db.ErrNotFound
	}
	for id, t := range m.Transactions {
		if t.CategoryID == categoryID {
			delete(m.Transactions, id)
		}
	}
	delete(m.Categories, categoryID)
	return nil
}

func (m *MockStore) ListTransactions(_ context.Context, userID, categoryID int64) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	var transactions []models.Transaction
	for _, t := range m.Transactions {
		if t.UserID == userID && t.CategoryID == categoryID {
			transactions = append(transactions, *t)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (m *MockStore) GetTransaction(_ context.Context, userID, categoryID, transactionID int64) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	t, ok := m.Transactions[transactionID]
	if !ok || t.UserID != userID || t.CategoryID != categoryID {
		return nil, db.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockStore) CreateTransaction(_ context.Context, userID, categoryID int64, amount decimal.Decimal, note string, date models.Date) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	c, ok := m.Categories[categoryID]
	if !ok || c.UserID != userID {
		return nil, db.ErrNotFound
	}
	t := &models.Transaction{
		ID:              m.id(),
		CategoryID:      categoryID,
		UserID:          userID,
		Amount:          amount,
		Note:            note,
		TransactionDate: date,
	}
	m.Transactions[t.ID] = t
	copied := *t
	return &copied, nil
}

func (m *MockStore) UpdateTransaction(_ context.Context, userID, categoryID, transactionID int64, amount decimal.Decimal, note string, date models.Date) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return nil, m.ForcedErr
	}
	t, ok := m.Transactions[transactionID]
	if !ok || t.UserID != userID || t.CategoryID != categoryID {
		return nil, db.ErrNotFound
	}
	t.Amount = amount
	t.Note = note
	t.TransactionDate = date
	copied := *t
	return &copied, nil
}

func (m *MockStore) DeleteTransaction(_ context.Context, userID, categoryID, transactionID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForcedErr != nil {
		return m.ForcedErr
	}
	t, ok := m.Transactions[transactionID]
	if !ok || t.UserID != userID || t.CategoryID != categoryID {
		return db.ErrNotFound
	}
	delete(m.Transactions, transactionID)
	return nil
}
