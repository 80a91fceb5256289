package sheetstore

import (
	"context"
	"fmt"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/sheet"
	"github.com/mmynk/ourfinance/internal/storage"
)

// Column indexes in AccountColumns.
const (
	balanceColumn = 3
	activeColumn  = 5
)

// ListAccounts returns all accounts in sheet order.
func (s *Store) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	records, err := s.table.ReadAll(ctx, Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make([]*models.Account, 0, len(records))
	for _, rec := range records {
		accounts = append(accounts, decodeAccount(rec))
	}
	return accounts, nil
}

// GetAccount scans the accounts for id.
func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	records, err := s.table.ReadAll(ctx, Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	i := indexOf(records, "id", id)
	if i < 0 {
		return nil, notFound("account", id)
	}
	return decodeAccount(records[i]), nil
}

// CreateAccount appends an account row.
func (s *Store) CreateAccount(ctx context.Context, acc *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.Append(ctx, Accounts, accountRow(acc)); err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// SetAccountActive writes only the is_active cell of the account's row.
func (s *Store) SetAccountActive(ctx context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.table.ReadAll(ctx, Accounts)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	i := indexOf(records, "id", id)
	if i < 0 {
		return notFound("account", id)
	}
	if err := s.writeCell(ctx, Accounts, i, activeColumn, sheet.FormatBool(active)); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// CorrectBalance appends the adjustment and writes the balance cell under the store lock,
// using the balance read under that same lock.
func (s *Store) CorrectBalance(ctx context.Context, id string, adjust storage.Adjuster) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.table.ReadAll(ctx, Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	i := indexOf(records, "id", id)
	if i < 0 {
		return nil, notFound("account", id)
	}
	acc := decodeAccount(records[i])

	txn, change := adjust(acc)
	if txn == nil {
		return nil, nil
	}

	if err := s.table.Append(ctx, Transactions, transactionRow(txn)); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	if err := s.writeCell(ctx, Accounts, i, balanceColumn, formatDecimal(change.Apply(acc.CurrentBalance))); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	return txn, nil
}
