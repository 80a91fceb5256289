package models

import "github.com/shopspring/decimal"

// BalanceChange is the effect of a ledger entry on one account balance.
type BalanceChange struct {
	AccountID string
	Amount    decimal.Decimal

	// Set replaces the balance with Amount. Otherwise Amount is added to it.
	Set bool
}

// Apply returns the balance after the change.
func (c BalanceChange) Apply(balance decimal.Decimal) decimal.Decimal {
	if c.Set {
		return c.Amount
	}
	return balance.Add(c.Amount)
}
