package api

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ourfinance/internal/ledger"
	"github.com/mmynk/ourfinance/internal/middleware"
	"github.com/mmynk/ourfinance/internal/models"
	"github.com/mmynk/ourfinance/internal/service"
)

var errOwnerRequired = errors.New("owner is required")

// viewFor parses the requested view. An empty view falls back to the signed-in
// owner's view, or Combined without a session.
func viewFor(ctx context.Context, view string) (models.ViewMode, error) {
	if view == "" {
		return models.ViewFor(middleware.GetOwner(ctx)), nil
	}
	v, err := models.ParseViewMode(view)
	if err != nil {
		return "", invalidArgument(err)
	}
	return v, nil
}

// userFor parses the owner of a transaction or asset, defaulting to the signed-in owner.
func userFor(ctx context.Context, owner string) (models.Owner, error) {
	if owner == "" {
		if o := middleware.GetOwner(ctx); o.IsUser() {
			return o, nil
		}
		return "", invalidArgument(errOwnerRequired)
	}
	o, err := models.ParseUser(owner)
	if err != nil {
		return "", invalidArgument(err)
	}
	return o, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// ListAccounts returns every account, inactive ones included.
func (s *Server) ListAccounts(ctx context.Context, _ *ListAccountsRequest) (*ListAccountsResponse, error) {
	accounts, err := s.ledger.Accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	res := &ListAccountsResponse{Accounts: make([]Account, 0, len(accounts))}
	for _, a := range accounts {
		res.Accounts = append(res.Accounts, toAccount(a))
	}
	return res, nil
}

func (s *Server) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*AccountResponse, error) {
	owner := models.Owner(req.Owner)
	if req.Owner == "" {
		owner = middleware.GetOwner(ctx)
	}
	if _, err := models.ParseOwner(string(owner)); err != nil {
		return nil, invalidArgument(err)
	}
	account, err := s.ledger.Accounts.CreateAccount(ctx, req.Name, req.Type, owner, req.InitialBalance)
	if err != nil {
		return nil, err
	}
	return &AccountResponse{Account: toAccount(account)}, nil
}

func (s *Server) SetAccountActive(ctx context.Context, req *SetAccountActiveRequest) (*AccountResponse, error) {
	account, err := s.ledger.Accounts.SetActive(ctx, req.AccountID, req.Active)
	if err != nil {
		return nil, err
	}
	return &AccountResponse{Account: toAccount(account)}, nil
}

func (s *Server) CorrectBalance(ctx context.Context, req *CorrectBalanceRequest) (*CorrectBalanceResponse, error) {
	adjustment, err := s.ledger.Accounts.CorrectBalance(ctx, req.AccountID, req.NewBalance)
	if err != nil {
		return nil, err
	}
	res := &CorrectBalanceResponse{}
	if adjustment != nil {
		t := toTransaction(adjustment)
		res.Adjustment = &t
	}
	return res, nil
}

// ListTransactions returns the transactions visible in the view, newest first.
func (s *Server) ListTransactions(ctx context.Context, req *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	view, err := viewFor(ctx, req.View)
	if err != nil {
		return nil, err
	}
	txns, err := s.ledger.Transactions.ListForView(ctx, view, timeOrZero(req.Since))
	if err != nil {
		return nil, err
	}
	return &ListTransactionsResponse{Transactions: toTransactions(txns)}, nil
}

func (s *Server) AddTransaction(ctx context.Context, req *AddTransactionRequest) (*TransactionResponse, error) {
	owner, err := userFor(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	txn, err := s.ledger.Transactions.AddTransaction(ctx, service.TransactionInput{
		Kind:        models.TransactionKind(req.Kind),
		Amount:      req.Amount,
		Category:    req.Category,
		AccountID:   req.AccountID,
		Owner:       owner,
		Description: req.Description,
		Date:        timeOrZero(req.Date),
		TaxAmount:   req.TaxAmount,
		IsDebt:      req.IsDebt,
		DebtID:      req.DebtID,
	})
	if err != nil {
		return nil, err
	}
	return &TransactionResponse{Transaction: toTransaction(txn)}, nil
}

func (s *Server) TransferFunds(ctx context.Context, req *TransferFundsRequest) (*TransactionResponse, error) {
	owner, err := userFor(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	txn, err := s.ledger.Transactions.TransferFunds(ctx, req.FromAccountID, req.ToAccountID, req.Amount, owner, req.Description)
	if err != nil {
		return nil, err
	}
	return &TransactionResponse{Transaction: toTransaction(txn)}, nil
}

func (s *Server) RepayDebt(ctx context.Context, req *RepayDebtRequest) (*TransactionResponse, error) {
	owner, err := userFor(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	txn, err := s.ledger.Transactions.RepayDebt(ctx, req.DebtID, req.Amount, req.AccountID, owner, req.Description)
	if err != nil {
		return nil, err
	}
	return &TransactionResponse{Transaction: toTransaction(txn)}, nil
}

// ListAssets returns the asset cards visible in the view.
func (s *Server) ListAssets(ctx context.Context, req *ListAssetsRequest) (*ListAssetsResponse, error) {
	view, err := viewFor(ctx, req.View)
	if err != nil {
		return nil, err
	}
	assets, err := s.ledger.Assets.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	res := &ListAssetsResponse{Assets: []Asset{}}
	for _, a := range assets {
		if view.Includes(a.Owner) {
			res.Assets = append(res.Assets, toAsset(a))
		}
	}
	return res, nil
}

// AddAsset records a new purchase; 3% of the cash paid is purchase tax.
func (s *Server) AddAsset(ctx context.Context, req *AddAssetRequest) (*AssetResponse, error) {
	return s.addAsset(ctx, req, s.ledger.Assets.AddAsset)
}

// AddExistingAsset records a holding bought before tracking began, at its net value.
func (s *Server) AddExistingAsset(ctx context.Context, req *AddAssetRequest) (*AssetResponse, error) {
	return s.addAsset(ctx, req, s.ledger.Assets.AddExistingAsset)
}

type addAssetFunc func(ctx context.Context, owner models.Owner, metal models.MetalType, amount, grams decimal.Decimal) (*models.Asset, error)

func (s *Server) addAsset(ctx context.Context, req *AddAssetRequest, add addAssetFunc) (*AssetResponse, error) {
	owner, err := userFor(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	metal, err := models.ParseMetalType(req.MetalType)
	if err != nil {
		return nil, invalidArgument(err)
	}
	asset, err := add(ctx, owner, metal, req.Amount, req.Grams)
	if err != nil {
		return nil, err
	}
	return &AssetResponse{Asset: toAsset(asset)}, nil
}

// ListDebts returns the debts visible in the view and what is left to repay.
func (s *Server) ListDebts(ctx context.Context, req *ListDebtsRequest) (*ListDebtsResponse, error) {
	view, err := viewFor(ctx, req.View)
	if err != nil {
		return nil, err
	}
	list := s.ledger.Analytics.Debts
	if req.PendingOnly {
		list = s.ledger.Analytics.PendingDebts
	}
	debts, err := list(ctx, view)
	if err != nil {
		return nil, err
	}
	res := &ListDebtsResponse{
		Debts:          make([]Debt, 0, len(debts)),
		TotalRemaining: ledger.TotalRemaining(debts),
	}
	for _, d := range debts {
		res.Debts = append(res.Debts, toDebt(d))
	}
	return res, nil
}

func (s *Server) MonthlyReport(ctx context.Context, req *MonthlyReportRequest) (*MonthlyReportResponse, error) {
	report, err := s.ledger.Analytics.MonthlyReport(ctx, time.Month(req.Month), req.Year)
	if err != nil {
		return nil, err
	}
	return &MonthlyReportResponse{Report: toMonthlyReport(report)}, nil
}

func (s *Server) Dashboard(ctx context.Context, req *DashboardRequest) (*DashboardResponse, error) {
	view, err := viewFor(ctx, req.View)
	if err != nil {
		return nil, err
	}
	summary, err := s.ledger.Analytics.Dashboard(ctx, view, timeOrZero(req.Since))
	if err != nil {
		return nil, err
	}
	return &DashboardResponse{Dashboard: toDashboard(summary)}, nil
}

func (s *Server) ListSettings(ctx context.Context, _ *ListSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.ledger.Settings.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{Settings: toSettings(settings)}, nil
}

// UpdateDisplayName renames a user and returns the updated settings.
func (s *Server) UpdateDisplayName(ctx context.Context, req *UpdateDisplayNameRequest) (*SettingsResponse, error) {
	if err := s.ledger.Settings.UpdateDisplayName(ctx, req.Key, req.Name); err != nil {
		return nil, err
	}
	return s.ListSettings(ctx, &ListSettingsRequest{})
}
