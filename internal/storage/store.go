// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/allocash/internal/models"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, MongoDB)
// without changing the ledger or the service layer.
//
// Every lookup is scoped by user ID. Missing records are reported with an
// error wrapping models.ErrNotFound; backend failures wrap models.ErrStorage.
type Store interface {
	AccountStore
	GroupStore
	TransactionStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// AccountStore persists accounts.
type AccountStore interface {
	// CreateAccount persists a new account.
	// The account.ID and CreatedAt fields will be populated by the store.
	CreateAccount(ctx context.Context, account *models.Account) error

	GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error)

	// ListAccounts returns the user's accounts ordered by name.
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)

	UpdateAccount(ctx context.Context, account *models.Account) error

	// DeleteAccount removes the account and every transaction in it.
	DeleteAccount(ctx context.Context, userID, accountID string) error
}

// GroupStore persists groups.
type GroupStore interface {
	// CreateGroup persists a new group.
	// The group.ID and CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error)

	// ListGroups returns the user's groups ordered by name.
	ListGroups(ctx context.Context, userID string) ([]*models.Group, error)

	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes the group and clears group_id on its transactions.
	DeleteGroup(ctx context.Context, userID, groupID string) error
}

// TransactionStore persists transactions.
type TransactionStore interface {
	// CreateTransaction persists a new transaction.
	// The ID, CreatedAt and UpdatedAt fields will be populated by the store.
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	GetTransaction(ctx context.Context, userID, txnID string) (*models.Transaction, error)

	// UpdateTransaction replaces every mutable field of an existing transaction.
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error

	DeleteTransaction(ctx context.Context, userID, txnID string) error

	// FindTransactions returns the transactions matching every set field of
	// the filter.
	FindTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)

	// ListPeople returns the sorted distinct person names on the user's
	// transactions.
	ListPeople(ctx context.Context, userID string) ([]string, error)
}
