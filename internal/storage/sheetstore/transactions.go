package sheetstore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
)

// ListTransactions returns all transactions in sheet order.
func (s *Store) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	records, err := s.table.ReadAll(ctx, Transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	txns := make([]*models.Transaction, 0, len(records))
	for _, rec := range records {
		t, err := decodeTransaction(rec)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// RecordTransaction checks every referenced account exists, appends the transaction and
// then writes each new balance cell. A sheet offers no rollback: if a balance write fails
// the transaction row stays.
func (s *Store) RecordTransaction(ctx context.Context, txn *models.Transaction, changes ...models.BalanceChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.table.ReadAll(ctx, Accounts)
	if err != nil {
		return fmt.Errorf("failed to read accounts: %w", err)
	}

	type write struct {
		index   int
		balance decimal.Decimal
	}
	balances := make(map[string]decimal.Decimal)
	var writes []write
	for _, c := range changes {
		i := indexOf(records, "id", c.AccountID)
		if i < 0 {
			return notFound("account", c.AccountID)
		}
		current, ok := balances[c.AccountID]
		if !ok {
			current = records[i].Get("current_balance").Decimal()
		}
		balances[c.AccountID] = c.Apply(current)
		writes = append(writes, write{index: i, balance: balances[c.AccountID]})
	}

	if err := s.table.Append(ctx, Transactions, transactionRow(txn)); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for _, w := range writes {
		if err := s.writeCell(ctx, Accounts, w.index, balanceColumn, formatDecimal(w.balance)); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
	}
	return nil
}
