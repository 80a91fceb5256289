// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/ourfinance/internal/models"
)

// ErrNotFound is returned when no record has the requested ID or key.
var ErrNotFound = errors.New("not found")

// Adjuster derives a balance correction from the account as currently stored.
// A nil transaction means there is nothing to correct.
type Adjuster func(acc *models.Account) (*models.Transaction, *models.BalanceChange)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, Google Sheets, in-memory)
// without changing the service layer. Every update is addressed by ID.
type Store interface {
	// ListAccounts returns all accounts in storage order.
	ListAccounts(ctx context.Context) ([]*models.Account, error)

	// GetAccount retrieves an account by its ID.
	// Returns ErrNotFound if the account does not exist.
	GetAccount(ctx context.Context, id string) (*models.Account, error)

	// CreateAccount persists a new account. The ID must already be set.
	CreateAccount(ctx context.Context, acc *models.Account) error

	// SetAccountActive changes only the active flag of an account.
	// Returns ErrNotFound if the account does not exist.
	SetAccountActive(ctx context.Context, id string, active bool) error

	// CorrectBalance passes the stored account to adjust and, if adjust returns an
	// adjustment, records it and applies its change. No other writer of this store can
	// touch the account in between. Returns the recorded adjustment, or nil.
	// Returns ErrNotFound if the account does not exist.
	CorrectBalance(ctx context.Context, id string, adjust Adjuster) (*models.Transaction, error)

	// ListTransactions returns all transactions in storage order, unsanitized.
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)

	// RecordTransaction appends txn and applies the balance changes to their accounts.
	// Returns ErrNotFound, with nothing written, if any referenced account does not exist.
	// Backends that support it apply everything atomically.
	RecordTransaction(ctx context.Context, txn *models.Transaction, changes ...models.BalanceChange) error

	// ListAssets returns all asset cards in storage order.
	ListAssets(ctx context.Context) ([]*models.Asset, error)

	// CreateAsset persists a new asset card. The ID must already be set.
	CreateAsset(ctx context.Context, asset *models.Asset) error

	// UpdateAsset overwrites the card with the same ID.
	// Returns ErrNotFound if the card does not exist.
	UpdateAsset(ctx context.Context, asset *models.Asset) error

	// ListSettings returns all settings in storage order.
	ListSettings(ctx context.Context) ([]models.Setting, error)

	// UpdateSetting changes the value of an existing key.
	// Returns ErrNotFound if the key does not exist; keys are never created here.
	UpdateSetting(ctx context.Context, key, value string) error

	// Close releases any resources held by the store.
	Close() error
}
