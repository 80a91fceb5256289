package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/ledger"
	"github.com/mmynk/ourfinance/internal/metrics"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/storage"
)

const defaultRepaymentDescription = "Debt repayment"

// TransactionInput is a new income or expense.
type TransactionInput struct {
	Kind        models.TransactionKind
	Amount      decimal.Decimal
	Category    string
	AccountID   string
	Owner       models.Owner
	Description string
	// Date defaults to now.
	Date      time.Time
	TaxAmount decimal.Decimal
	IsDebt    bool
	DebtID    string
}

// TransactionService records ledger entries and keeps account balances in step.
type TransactionService struct {
	store storage.Store
	now   func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store, now: time.Now}
}

// ListTransactions returns every transaction, sanitized, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	txns, err := s.store.ListTransactions(ctx)
	if err != nil {
		slog.Error("ListTransactions failed", "error", err)
		return nil, err
	}
	for _, t := range txns {
		t.Sanitize()
	}
	ledger.SortByDateDesc(txns)

	slog.Debug("ListTransactions successful", "count", len(txns))
	return txns, nil
}

// ListForView returns the view's transactions dated at or after since (zero: all time),
// newest first.
func (s *TransactionService) ListForView(ctx context.Context, view models.ViewMode, since time.Time) ([]*models.Transaction, error) {
	txns, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.FilterRange(ledger.FilterView(txns, view), since, time.Time{}), nil
}

// AddTransaction records an income or expense and moves the account balance.
// A missing account fails the call before anything is written.
func (s *TransactionService) AddTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error) {
	if in.Kind != models.KindIncome && in.Kind != models.KindExpense {
		return nil, invalidf("kind must be income or expense, got %q", in.Kind)
	}
	if err := validateEntry(in.Amount, in.AccountID, in.Owner); err != nil {
		return nil, err
	}
	if in.TaxAmount.IsNegative() {
		return nil, invalidf("tax amount must not be negative")
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	txn := &models.Transaction{
		ID:          uuid.New().String(),
		Date:        date,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Category:    in.Category,
		AccountID:   in.AccountID,
		Owner:       in.Owner,
		Description: in.Description,
		TaxAmount:   in.TaxAmount,
		IsDebt:      in.IsDebt,
		DebtID:      in.DebtID,
	}
	if err := s.record(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// TransferFunds moves amount from one account to another as a single transfer entry.
func (s *TransactionService) TransferFunds(ctx context.Context, fromID, toID string, amount decimal.Decimal, owner models.Owner, description string) (*models.Transaction, error) {
	if err := validateEntry(amount, fromID, owner); err != nil {
		return nil, err
	}
	if toID == "" {
		return nil, invalidf("destination account is required")
	}
	if fromID == toID {
		return nil, invalidf("cannot transfer an account to itself")
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		Date:        s.now(),
		Kind:        models.KindTransfer,
		Amount:      amount,
		Category:    models.CategoryTransfer,
		AccountID:   fromID,
		ToAccountID: toID,
		Owner:       owner,
		Description: description,
	}
	if err := s.record(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// RepayDebt records an expense against a debt. Paying more than is owed is allowed.
func (s *TransactionService) RepayDebt(ctx context.Context, debtID string, amount decimal.Decimal, accountID string, owner models.Owner, description string) (*models.Transaction, error) {
	if debtID == "" {
		return nil, invalidf("debt ID is required")
	}
	if description == "" {
		description = defaultRepaymentDescription
	}
	return s.AddTransaction(ctx, TransactionInput{
		Kind:        models.KindExpense,
		Amount:      amount,
		Category:    models.CategoryDebtRepayment,
		AccountID:   accountID,
		Owner:       owner,
		Description: description,
		DebtID:      debtID,
	})
}

func (s *TransactionService) record(ctx context.Context, txn *models.Transaction) error {
	changes, err := ledger.BalanceChanges(txn)
	if err != nil {
		return invalidf("%v", err)
	}
	if err := s.store.RecordTransaction(ctx, txn, changes...); err != nil {
		slog.Error("Record transaction failed", "kind", txn.Kind, "account_id", txn.AccountID, "error", err)
		return fmt.Errorf("failed to record %s: %w", txn.Kind, err)
	}
	metrics.RecordTransaction(string(txn.Kind), txn.Category)

	slog.Info("Transaction recorded",
		"transaction_id", txn.ID,
		"kind", txn.Kind,
		"amount", txn.Amount,
		"account_id", txn.AccountID,
		"to_account_id", txn.ToAccountID,
		"owner", txn.Owner,
	)
	return nil
}

func validateEntry(amount decimal.Decimal, accountID string, owner models.Owner) error {
	if !amount.IsPositive() {
		return invalidf("amount must be positive")
	}
	if accountID == "" {
		return invalidf("account is required")
	}
	if !owner.IsUser() {
		return invalidf("invalid owner %q: must be A or B", owner)
	}
	return nil
}
