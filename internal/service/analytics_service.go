package service

import (
	"context"
	"time"

	"github.com/mmynk/ourfinance/internal/ledger"
	"github.com/mmynk/ourfinance/internal/models"
)

// AnalyticsService derives debts, monthly reports and the dashboard.
type AnalyticsService struct {
	transactions *TransactionService
	accounts     *AccountService
	assets       *AssetService
	settings     *SettingsService
	// loc is the time zone months are cut in.
	loc *time.Location
}

// NewAnalyticsService creates a new AnalyticsService. A nil loc means time.Local.
func NewAnalyticsService(txns *TransactionService, accounts *AccountService, assets *AssetService, settings *SettingsService, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{
		transactions: txns,
		accounts:     accounts,
		assets:       assets,
		settings:     settings,
		loc:          loc,
	}
}

// Debts lists every debt visible in view, cleared ones included.
func (s *AnalyticsService) Debts(ctx context.Context, view models.ViewMode) ([]models.DebtSummary, error) {
	txns, err := s.transactions.ListForView(ctx, view, time.Time{})
	if err != nil {
		return nil, err
	}
	return ledger.ListDebts(txns), nil
}

// PendingDebts lists the debts in view that are not cleared.
func (s *AnalyticsService) PendingDebts(ctx context.Context, view models.ViewMode) ([]models.DebtSummary, error) {
	debts, err := s.Debts(ctx, view)
	if err != nil {
		return nil, err
	}
	return ledger.PendingDebts(debts), nil
}

// MonthlyReport summarizes one calendar month per user and combined.
func (s *AnalyticsService) MonthlyReport(ctx context.Context, month time.Month, year int) (models.MonthlyReport, error) {
	if month < time.January || month > time.December {
		return models.MonthlyReport{}, invalidf("month must be 1-12, got %d", month)
	}
	if year < 1 {
		return models.MonthlyReport{}, invalidf("invalid year %d", year)
	}

	txns, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return models.MonthlyReport{}, err
	}
	nameA, nameB, err := s.settings.DisplayNames(ctx)
	if err != nil {
		return models.MonthlyReport{}, err
	}
	return ledger.MonthlyReport(txns, month, year, s.loc, nameA, nameB), nil
}

// Dashboard is the wealth overview of view; flows count from since (zero: all time).
func (s *AnalyticsService) Dashboard(ctx context.Context, view models.ViewMode, since time.Time) (models.DashboardSummary, error) {
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	assets, err := s.assets.ListAssets(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	txns, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	return ledger.Dashboard(view, since, accounts, assets, txns), nil
}
