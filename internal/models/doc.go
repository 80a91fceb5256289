// Package models defines the core domain models for OurFinance.
//
// # Models
//
// Stored records:
//   - Account: a cash account owned by user A, user B or both (Shared)
//   - Transaction: one entry of the append-only ledger
//   - Asset: the cumulative holding card for one metal and one owner
//   - Setting: a key/value display setting
//
// Derived (never stored):
//   - DebtSummary: a borrowed amount and its repayments
//   - MonthlyReport, DashboardSummary: aggregations over the ledger
//
// # Design Principles
//
//  1. Money and quantities are decimal.Decimal, never float64.
//  2. Relationships are ID strings (Transaction.AccountID, Transaction.DebtID).
//  3. Viewing as A, B or Combined is a request parameter (ViewMode), not ambient state.
package models
