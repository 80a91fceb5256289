// Package service implements the ledger operations on top of a storage.Store.
// Services hold no state between calls; every operation reads what it needs, computes
// with the ledger package and writes back by ID.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/ledger"
	"github.com/mmynk/ourfinance/internal/metrics"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

// AccountService manages accounts and their balances.
type AccountService struct {
	store storage.Store
	// sharedOwner is who balance corrections of Shared accounts are attributed to.
	sharedOwner models.Owner
	now         func() time.Time
}

// NewAccountService creates a new AccountService. sharedAdjustmentOwner must be A or B;
// anything else falls back to A.
func NewAccountService(store storage.Store, sharedAdjustmentOwner models.Owner) *AccountService {
	if !sharedAdjustmentOwner.IsUser() {
		sharedAdjustmentOwner = models.OwnerA
	}
	return &AccountService{store: store, sharedOwner: sharedAdjustmentOwner, now: time.Now}
}

// ListAccounts returns all accounts in storage order.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		slog.Error("ListAccounts failed", "error", err)
		return nil, err
	}
	slog.Debug("ListAccounts successful", "count", len(accounts))
	return accounts, nil
}

// GetAccount returns one account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// CreateAccount opens an active account. Names need not be unique.
func (s *AccountService) CreateAccount(ctx context.Context, name, accountType string, owner models.Owner, initialBalance decimal.Decimal) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("account name is required")
	}
	if !owner.ValidAccountOwner() {
		return nil, invalidf("invalid owner %q: must be A, B or Shared", owner)
	}

	acc := &models.Account{
		ID:             uuid.New().String(),
		Name:           name,
		Type:           strings.TrimSpace(accountType),
		CurrentBalance: initialBalance,
		Owner:          owner,
		IsActive:       true,
	}
	if err := s.store.CreateAccount(ctx, acc); err != nil {
		slog.Error("CreateAccount failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Account created", "account_id", acc.ID, "name", acc.Name, "owner", acc.Owner, "balance", acc.CurrentBalance)
	return acc, nil
}

// SetActive activates or deactivates an account. Accounts are never deleted.
// Only the flag is written; the balance is left to concurrent transactions.
func (s *AccountService) SetActive(ctx context.Context, accountID string, active bool) (*models.Account, error) {
	if err := s.store.SetAccountActive(ctx, accountID, active); err != nil {
		slog.Error("SetActive failed", "account_id", accountID, "error", err)
		return nil, err
	}

	slog.Info("Account status changed", "account_id", accountID, "active", active)
	return s.store.GetAccount(ctx, accountID)
}

// CorrectBalance sets an account's balance to newBalance and records the difference as
// an adjustment. It returns the adjustment, or nil when the balance was already right.
//
// The delta is taken from the balance the store is about to overwrite, and the balance is
// set rather than moved, so the delta is not applied a second time.
func (s *AccountService) CorrectBalance(ctx context.Context, accountID string, newBalance decimal.Decimal) (*models.Transaction, error) {
	now := s.now()
	var from decimal.Decimal
	txn, err := s.store.CorrectBalance(ctx, accountID, func(acc *models.Account) (*models.Transaction, *models.BalanceChange) {
		from = acc.CurrentBalance
		txn, change := ledger.Correction(acc, newBalance, s.sharedOwner)
		if txn != nil {
			txn.ID = uuid.New().String()
			txn.Date = now
		}
		return txn, change
	})
	if err != nil {
		slog.Error("CorrectBalance failed", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to correct balance: %w", err)
	}
	if txn == nil {
		slog.Debug("Balance already correct", "account_id", accountID, "balance", newBalance)
		return nil, nil
	}
	metrics.RecordCorrection()
	metrics.RecordTransaction(string(txn.Kind), txn.Category)

	slog.Info("Balance corrected",
		"account_id", accountID,
		"from", from,
		"to", newBalance,
		"adjustment_id", txn.ID,
	)
	return txn, nil
}
