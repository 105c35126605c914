package store

import (
	"context"

	"fjacquet/ledger-import/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryMapLoader for testing.
type MockCategoryStore struct {
	Categories          models.CategoryMap
	LoadCategoriesError error
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() (models.CategoryMap, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// MockLedgerStore is an in-memory LedgerStore for testing.
type MockLedgerStore struct {
	Ledger    models.Ledger
	Path      string
	LoadError error
	SaveError error

	// Saves counts successful Save calls.
	Saves int
}

// Load returns the stored ledger.
func (m *MockLedgerStore) Load(ctx context.Context) (models.Ledger, error) {
	if m.LoadError != nil {
		return models.Ledger{}, m.LoadError
	}
	return m.Ledger, nil
}

// Save replaces the stored ledger.
func (m *MockLedgerStore) Save(ctx context.Context, ledger models.Ledger) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Ledger = ledger
	m.Saves++
	return nil
}

// Location returns the configured path.
func (m *MockLedgerStore) Location() string {
	return m.Path
}
