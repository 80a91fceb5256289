package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtSummary is a borrowed amount and how much of it was repaid.
// It is derived from the ledger and never stored.
type DebtSummary struct {
	// ID is the ID of the originating debt transaction.
	ID          string
	Date        time.Time
	Description string

	OriginalAmount  decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal // negative when overpaid

	Owner     Owner
	IsCleared bool
}

// PeriodSummary aggregates income and expense over a set of transactions.
type PeriodSummary struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Savings      decimal.Decimal // Income - Expense
	Transactions []*Transaction
}

// UserSummary is a PeriodSummary for one named user.
type UserSummary struct {
	Name string
	PeriodSummary
}

// MonthlyReport is the per-user and combined summary of one calendar month.
type MonthlyReport struct {
	// Month is the display label, e.g. "January 2025".
	Month    string
	Start    time.Time
	End      time.Time
	UserA    UserSummary
	UserB    UserSummary
	Combined PeriodSummary
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Percent  int // share of total expense, rounded
}

// DashboardSummary is the wealth overview of one view.
type DashboardSummary struct {
	View            ViewMode
	Since           time.Time // zero means all time
	NetWorth        decimal.Decimal
	TotalCash       decimal.Decimal
	TotalInvested   decimal.Decimal
	LiquidPercent   int
	InvestedPercent int
	Income          decimal.Decimal
	Expense         decimal.Decimal
	Savings         decimal.Decimal
	SavingsRate     int
	TopCategories   []CategoryTotal
}
