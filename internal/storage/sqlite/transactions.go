package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

// ListTransactions returns all transactions in insertion order.
func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, type, amount, category, account_id, to_account_id, user_id,
		        description, tax_amount, is_debt, debt_id
		 FROM transactions ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		t := &models.Transaction{}
		var date, kind, owner string
		if err := rows.Scan(&t.ID, &date, &kind, &t.Amount, &t.Category, &t.AccountID, &t.ToAccountID,
			&owner, &t.Description, &t.TaxAmount, &t.IsDebt, &t.DebtID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if t.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		t.Kind = models.TransactionKind(kind)
		t.Owner = models.Owner(owner)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// RecordTransaction inserts the transaction and applies its balance changes in one
// database transaction. A missing account rolls everything back.
func (s *SQLiteStore) RecordTransaction(ctx context.Context, txn *models.Transaction, changes ...models.BalanceChange) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range changes {
		var balance decimal.Decimal
		err := tx.QueryRowContext(ctx, "SELECT current_balance FROM accounts WHERE id = ?", c.AccountID).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("account %s: %w", c.AccountID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read balance: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE accounts SET current_balance = ? WHERE id = ?",
			c.Apply(balance), c.AccountID,
		); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CorrectBalance reads the account, records the adjustment and sets the balance in one
// database transaction, so the adjustment always matches the balance it overwrites.
func (s *SQLiteStore) CorrectBalance(ctx context.Context, id string, adjust storage.Adjuster) (*models.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	acc, err := scanAccount(tx.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	txn, change := adjust(acc)
	if txn == nil {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE accounts SET current_balance = ? WHERE id = ?",
		change.Apply(acc.CurrentBalance), id,
	); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return txn, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, txn *models.Transaction) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, date, type, amount, category, account_id, to_account_id, user_id,
		                           description, tax_amount, is_debt, debt_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, formatTime(txn.Date), string(txn.Kind), txn.Amount, txn.Category, txn.AccountID, txn.ToAccountID,
		string(txn.Owner), txn.Description, txn.TaxAmount, txn.IsDebt, txn.DebtID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}
