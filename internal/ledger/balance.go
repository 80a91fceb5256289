// Package ledger holds the financial rules of the tracker as pure functions:
// balance effects of ledger entries, metal purchase tax, debt derivation and reports.
// Nothing in this package touches storage.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
)

// BalanceChanges returns the effect of a transaction on account balances.
//
//   - income: +amount on AccountID
//   - expense: -amount on AccountID
//   - transfer: -amount on AccountID, +amount on ToAccountID
func BalanceChanges(t *models.Transaction) ([]models.BalanceChange, error) {
	switch t.Kind {
	case models.KindIncome:
		return []models.BalanceChange{{AccountID: t.AccountID, Amount: t.Amount}}, nil
	case models.KindExpense:
		return []models.BalanceChange{{AccountID: t.AccountID, Amount: t.Amount.Neg()}}, nil
	case models.KindTransfer:
		return []models.BalanceChange{
			{AccountID: t.AccountID, Amount: t.Amount.Neg()},
			{AccountID: t.ToAccountID, Amount: t.Amount},
		}, nil
	}
	return nil, fmt.Errorf("unknown transaction kind %q", t.Kind)
}

// Correction returns the adjustment transaction that reconciles an account with a
// manually entered balance, and the change that sets the balance.
// It returns nil when the balance is already correct.
//
// sharedOwner is the user the adjustment is attributed to when the account is Shared.
func Correction(acc *models.Account, newBalance decimal.Decimal, sharedOwner models.Owner) (*models.Transaction, *models.BalanceChange) {
	delta := newBalance.Sub(acc.CurrentBalance)
	if delta.IsZero() {
		return nil, nil
	}

	owner := acc.Owner
	if owner == models.OwnerShared {
		owner = sharedOwner
	}

	kind := models.KindIncome
	if delta.IsNegative() {
		kind = models.KindExpense
	}

	txn := &models.Transaction{
		Kind:        kind,
		Amount:      delta.Abs(),
		Category:    models.CategoryAdjustment,
		AccountID:   acc.ID,
		Owner:       owner,
		Description: "Balance Correction",
	}
	return txn, &models.BalanceChange{AccountID: acc.ID, Amount: newBalance, Set: true}
}
