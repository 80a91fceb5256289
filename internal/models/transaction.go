package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a ledger entry.
type TransactionKind string

const (
	KindIncome   TransactionKind = "income"
	KindExpense  TransactionKind = "expense"
	KindTransfer TransactionKind = "transfer"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}
	return false
}

// Categories with ledger semantics.
const (
	CategoryAdjustment    = "Adjustment"
	CategoryTransfer      = "Transfer"
	CategoryBorrowed      = "Borrowed"
	CategoryDebtRepayment = "Debt Repayment"
)

// Transaction is one entry of the append-only ledger.
// Transactions are immutable once recorded.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Date is when the transaction happened.
	Date time.Time

	Kind TransactionKind

	// Amount is always positive; Kind gives the direction.
	Amount decimal.Decimal

	// Category is free text. Some categories carry meaning, see Category* constants.
	Category string

	// AccountID is the source account (the only account for income/expense).
	AccountID string

	// ToAccountID is the destination account of a transfer; empty otherwise.
	ToAccountID string

	// Owner is the user the transaction is attributed to (A or B).
	Owner Owner

	Description string

	// TaxAmount defaults to zero.
	TaxAmount decimal.Decimal

	// IsDebt marks income that is borrowed money.
	IsDebt bool

	// DebtID links a repayment to the ID of the originating debt transaction.
	DebtID string
}

// IsDebtOrigin reports whether t opens a debt: borrowed income, flagged or by category.
func (t *Transaction) IsDebtOrigin() bool {
	return t.Kind == KindIncome && (t.IsDebt || t.Category == CategoryBorrowed)
}

// IsRepayment reports whether t repays a debt (it may still point at an unknown debt).
func (t *Transaction) IsRepayment() bool {
	return t.Kind == KindExpense && t.Category == CategoryDebtRepayment && t.DebtID != ""
}

// Sanitize fixes legacy records: an invalid owner becomes A.
// A zero-value TaxAmount already reads as 0.
func (t *Transaction) Sanitize() {
	if !t.Owner.IsUser() {
		t.Owner = OwnerA
	}
}
