package models

import "github.com/shopspring/decimal"

// Account is a cash account whose balance is maintained by the ledger.
// Accounts are never deleted, only deactivated.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string

	// Name is the display name (e.g., "Wallet", "HDFC Savings").
	// Names are not required to be unique.
	Name string

	// Type is a free-text account type (e.g., "Bank", "Cash", "Card").
	Type string

	// CurrentBalance is the stored running total.
	// It only changes through transactions, transfers and balance corrections.
	CurrentBalance decimal.Decimal

	// Owner is A, B or Shared.
	Owner Owner

	// IsActive is false once the account has been deactivated.
	IsActive bool
}
